// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"fmt"
	"sort"
	"strings"

	"pixyo/internal/models"
)

// GenerateTailwindConfig emits a Tailwind theme-extension snippet for
// the brand: palette colors, font families, spacing scale, radius scale,
// and the four shadow tiers. Map-backed scales are emitted in sorted key
// order so identical input always produces identical output.
//
// The synthetic "default" radius alias is excluded: Tailwind's own
// `rounded` utility already covers it and a duplicate key would shadow
// the scale entry.
func GenerateTailwindConfig(t *models.BrandTokens) string {
	var b strings.Builder

	b.WriteString("module.exports = {\n  theme: {\n    extend: {\n")

	// Colors: core triple first, then the extended palette.
	b.WriteString("      colors: {\n")
	fmt.Fprintf(&b, "        'brand-dark': '%s',\n", t.Colors.Dark)
	fmt.Fprintf(&b, "        'brand-light': '%s',\n", t.Colors.Light)
	fmt.Fprintf(&b, "        'brand-accent': '%s',\n", t.Colors.Accent)
	for _, k := range sortedKeys(t.Colors.Palette) {
		fmt.Fprintf(&b, "        '%s': '%s',\n", k, t.Colors.Palette[k])
	}
	b.WriteString("      },\n")

	b.WriteString("      fontFamily: {\n")
	fmt.Fprintf(&b, "        headline: ['%s', 'sans-serif'],\n", t.Typography.Headline.Family)
	fmt.Fprintf(&b, "        body: ['%s', 'sans-serif'],\n", t.Typography.Body.Family)
	b.WriteString("      },\n")

	if len(t.Spacing) > 0 {
		b.WriteString("      spacing: {\n")
		for _, k := range sortedKeys(t.Spacing) {
			fmt.Fprintf(&b, "        '%s': '%s',\n", k, t.Spacing[k])
		}
		b.WriteString("      },\n")
	}

	if len(t.Radius) > 0 {
		b.WriteString("      borderRadius: {\n")
		for _, k := range sortedKeys(t.Radius) {
			if k == "default" {
				continue
			}
			fmt.Fprintf(&b, "        '%s': '%s',\n", k, t.Radius[k])
		}
		b.WriteString("      },\n")
	}

	b.WriteString("      boxShadow: {\n")
	fmt.Fprintf(&b, "        sm: '%s',\n", t.Shadows.SM)
	fmt.Fprintf(&b, "        md: '%s',\n", t.Shadows.MD)
	fmt.Fprintf(&b, "        lg: '%s',\n", t.Shadows.LG)
	fmt.Fprintf(&b, "        xl: '%s',\n", t.Shadows.XL)
	b.WriteString("      },\n")

	b.WriteString("    },\n  },\n};\n")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
