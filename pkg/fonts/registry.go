// Package fonts resolves logical (family, weight, style) requests to
// concrete font assets for the renderer backends.
//
// Resolution is registry-driven: known families map to downloadable
// variants, cached in memory for the process lifetime and on disk across
// restarts. Unknown families resolve through a fixed fallback table to a
// generic serif or sans substitute so resolution always terminates, even
// offline. A fetch failure for a registered family surfaces as
// FONT_UNAVAILABLE rather than silently downgrading the styling.
package fonts

import (
	"fmt"
	"sort"
	"strings"
)

// Variant identifies one concrete face of a family.
type Variant struct {
	Weight int  // 100-900
	Italic bool
}

func (v Variant) String() string {
	style := "normal"
	if v.Italic {
		style = "italic"
	}
	return fmt.Sprintf("%d-%s", v.Weight, style)
}

// Family is a registered font family with one download URL per variant.
type Family struct {
	Name     string // canonical display name
	Serif    bool
	Variants map[Variant]string // variant -> asset URL
}

// builtinFamilies is the static registry of families the CMS offers in its
// text editor. One URL per weight x style combination that exists; numeric
// weights snap to the nearest registered variant.
var builtinFamilies = []Family{
	{
		Name: "Inter",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/inter/v13/UcCO3FwrK3iLTeHuS_fvQtMwCp50KnMw2boKoduKmMEVuLyfAZ9hiA.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/inter/v13/UcCO3FwrK3iLTeHuS_fvQtMwCp50KnMw2boKoduKmMEVuFuYAZ9hiA.ttf",
			{Weight: 400, Italic: true}: "https://fonts.gstatic.com/s/inter/v13/UcCM3FwrK3iLTcvneQg7Ca725JhhKnNqk4j1ebLhAm8SrXTc2dphjQ.ttf",
			{Weight: 700, Italic: true}: "https://fonts.gstatic.com/s/inter/v13/UcCM3FwrK3iLTcvneQg7Ca725JhhKnNqk4j1ebLhAm8SrXTcBNxhjQ.ttf",
		},
	},
	{
		Name: "Roboto",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/roboto/v30/KFOmCnqEu92Fr1Mu4mxP.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/roboto/v30/KFOlCnqEu92Fr1MmWUlfBBc9.ttf",
			{Weight: 400, Italic: true}: "https://fonts.gstatic.com/s/roboto/v30/KFOkCnqEu92Fr1Mu51xIIzc.ttf",
			{Weight: 700, Italic: true}: "https://fonts.gstatic.com/s/roboto/v30/KFOjCnqEu92Fr1Mu51TzBic6CsE.ttf",
		},
	},
	{
		Name: "Open Sans",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/opensans/v36/memSYaGs126MiZpBA-UvWbX2vVnXBbObj2OVZyOOSr4dVJWUgsjZ0B4gaVc.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/opensans/v36/memSYaGs126MiZpBA-UvWbX2vVnXBbObj2OVZyOOSr4dVJWUgsg-1x4gaVc.ttf",
		},
	},
	{
		Name: "Montserrat",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/montserrat/v26/JTUHjIg1_i6t8kCHKm4532VJOt5-QNFgpCtr6Hw5aXo.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/montserrat/v26/JTUHjIg1_i6t8kCHKm4532VJOt5-QNFgpCuM73w5aXo.ttf",
		},
	},
	{
		Name: "Poppins",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/poppins/v21/pxiEyp8kv8JHgFVrJJfecg.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/poppins/v21/pxiByp8kv8JHgFVrLCz7Z1xlFQ.ttf",
			{Weight: 400, Italic: true}: "https://fonts.gstatic.com/s/poppins/v21/pxiGyp8kv8JHgFVrJJLucHtA.ttf",
		},
	},
	{
		Name: "Lato",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/lato/v24/S6uyw4BMUTPHjx4wXg.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/lato/v24/S6u9w4BMUTPHh6UVSwiPGQ.ttf",
		},
	},
	{
		Name: "Oswald",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/oswald/v53/TK3_WkUHHAIjg75cFRf3bXL8LICs1_FvsUZiZQ.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/oswald/v53/TK3_WkUHHAIjg75cFRf3bXL8LICs1xZosUZiZQ.ttf",
		},
	},
	{
		Name:  "Playfair Display",
		Serif: true,
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/playfairdisplay/v37/nuFvD-vYSZviVYUb_rj3ij__anPXJzDwcbmjWBN2PKdFvXDXbtXK-F2qC0s.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/playfairdisplay/v37/nuFvD-vYSZviVYUb_rj3ij__anPXJzDwcbmjWBN2PKeiukDXbtXK-F2qC0s.ttf",
			{Weight: 400, Italic: true}: "https://fonts.gstatic.com/s/playfairdisplay/v37/nuFRD-vYSZviVYUb_rj3ij__anPXDTnCjmHKM4nYO7KN_qiTbtbK-F2rA0s.ttf",
		},
	},
	{
		Name:  "Merriweather",
		Serif: true,
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/merriweather/v30/u-440qyriQwlOrhSvowK_l5OeyxNV-bnrw.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/merriweather/v30/u-4n0qyriQwlOrhSvowK_l52xwNZWMf6hPvhPQ.ttf",
		},
	},
	{
		Name:  "Lora",
		Serif: true,
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/lora/v32/0QI6MX1D_JOuGQbT0gvTJPa787weuyJGmKxemMeZ.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/lora/v32/0QI6MX1D_JOuGQbT0gvTJPa787z5vCJGmKxemMeZ.ttf",
		},
	},
	{
		Name: "DM Sans",
		Variants: map[Variant]string{
			{Weight: 400}: "https://fonts.gstatic.com/s/dmsans/v15/rP2tp2ywxg089UriI5-g4vlH9VoD8CmcqZG40F9JadbnoEwAopxRR232VGM.ttf",
			{Weight: 700}: "https://fonts.gstatic.com/s/dmsans/v15/rP2tp2ywxg089UriI5-g4vlH9VoD8CmcqZG40F9JadbnoEwAEZ1RR232VGM.ttf",
		},
	},
}

// Registry holds the known families, keyed case-insensitively.
type Registry struct {
	families map[string]Family
}

// NewRegistry builds the built-in registry, optionally extended with extra
// families (config-file overrides win over built-ins on name collision).
func NewRegistry(extra ...Family) *Registry {
	r := &Registry{families: make(map[string]Family, len(builtinFamilies)+len(extra))}
	for _, f := range builtinFamilies {
		r.families[normalizeFamily(f.Name)] = f
	}
	for _, f := range extra {
		if len(f.Variants) > 0 {
			r.families[normalizeFamily(f.Name)] = f
		}
	}
	return r
}

// Lookup returns the registered family for a free-form name.
func (r *Registry) Lookup(name string) (Family, bool) {
	f, ok := r.families[normalizeFamily(name)]
	return f, ok
}

// Families returns all registered family names, sorted lexically.
func (r *Registry) Families() []Family {
	out := make([]Family, 0, len(r.families))
	for _, f := range r.families {
		out = append(out, f)
	}
	sortFamilies(out)
	return out
}

// ResolveVariant snaps a requested (weight, italic) to the nearest
// registered variant of the family. Italic falls back to upright when the
// family has no italic faces at all.
func (f Family) ResolveVariant(weight int, italic bool) (Variant, string, bool) {
	best := Variant{}
	bestURL := ""
	bestDist := -1

	for v, url := range f.Variants {
		if v.Italic != italic {
			continue
		}
		d := abs(v.Weight - weight)
		if bestDist < 0 || d < bestDist {
			best, bestURL, bestDist = v, url, d
		}
	}
	if bestDist < 0 && italic {
		// No italic faces registered; snap to the upright variant.
		return f.ResolveVariant(weight, false)
	}
	if bestDist < 0 {
		return Variant{}, "", false
	}
	return best, bestURL, true
}

func normalizeFamily(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sortFamilies(fs []Family) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Name < fs[j].Name })
}
