// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"fmt"
	"strings"

	"pixyo/internal/models"
)

// GenerateLLMContext renders the brand tokens as a multi-section text
// summary used as grounding context for downstream AI prompts. The
// output is deterministic for identical input; optional sections are
// emitted only when present.
func GenerateLLMContext(t *models.BrandTokens, brandName string) string {
	var b strings.Builder

	if brandName != "" {
		fmt.Fprintf(&b, "# Brand: %s\n\n", brandName)
	} else {
		b.WriteString("# Brand Style Guide\n\n")
	}

	b.WriteString("## Colors\n")
	fmt.Fprintf(&b, "- Dark: %s\n", t.Colors.Dark)
	fmt.Fprintf(&b, "- Light: %s\n", t.Colors.Light)
	fmt.Fprintf(&b, "- Accent: %s\n", t.Colors.Accent)
	for _, k := range sortedKeys(t.Colors.Palette) {
		fmt.Fprintf(&b, "- %s: %s\n", titleCase(k), t.Colors.Palette[k])
	}
	b.WriteString("\n")

	b.WriteString("## Typography\n")
	fmt.Fprintf(&b, "- Headlines: %s, weight %d\n", t.Typography.Headline.Family, t.Typography.Headline.Weight)
	fmt.Fprintf(&b, "- Body: %s, weight %d\n", t.Typography.Body.Family, t.Typography.Body.Weight)
	b.WriteString("\n")

	if len(t.Spacing) > 0 {
		b.WriteString("## Spacing\n")
		for _, k := range sortedKeys(t.Spacing) {
			fmt.Fprintf(&b, "- %s: %s\n", k, t.Spacing[k])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Shape & Shadow\n")
	for _, k := range sortedKeys(t.Radius) {
		fmt.Fprintf(&b, "- Radius %s: %s\n", k, t.Radius[k])
	}
	fmt.Fprintf(&b, "- Shadows: sm %s / md %s / lg %s / xl %s\n\n",
		t.Shadows.SM, t.Shadows.MD, t.Shadows.LG, t.Shadows.XL)

	fmt.Fprintf(&b, "## Buttons\n- Shape: %s\n", t.Button.Shape)
	if t.Button.Background != "" {
		fmt.Fprintf(&b, "- Background: %s\n", t.Button.Background)
	}
	if t.Button.Text != "" {
		fmt.Fprintf(&b, "- Text color: %s\n", t.Button.Text)
	}
	b.WriteString("\n")

	if t.Media != nil {
		b.WriteString("## Imagery\n")
		if t.Media.Style != "" {
			fmt.Fprintf(&b, "- Style: %s\n", t.Media.Style)
		}
		if t.Media.Subjects != "" {
			fmt.Fprintf(&b, "- Subjects: %s\n", t.Media.Subjects)
		}
		b.WriteString("\n")
	}

	if t.Voice != nil {
		b.WriteString("## Voice\n")
		if t.Voice.Tone != "" {
			fmt.Fprintf(&b, "- Tone: %s\n", t.Voice.Tone)
		}
		if len(t.Voice.Keywords) > 0 {
			fmt.Fprintf(&b, "- Keywords: %s\n", strings.Join(t.Voice.Keywords, ", "))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// titleCase upper-cases the first letter of a token key for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
