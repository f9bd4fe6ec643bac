// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downscales uploaded design previews into thumbnails.
// Decoding covers JPEG and PNG; output is always JPEG, which is what the
// design grid serves.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	// ThumbMaxWidth is the target width of design-grid thumbnails.
	ThumbMaxWidth = 640

	// thumbQuality is the JPEG quality for thumbnails.
	thumbQuality = 80
)

// Thumbnail decodes src and scales it down so its width is at most
// maxWidth, preserving aspect ratio. Images already narrower than
// maxWidth are re-encoded without scaling. Returns JPEG bytes.
func Thumbnail(src []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = ThumbMaxWidth
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth {
		targetH := h * maxWidth / w
		if targetH < 1 {
			targetH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, targetH))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("imaging encode: %w", err)
	}
	return out.Bytes(), nil
}
