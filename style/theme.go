package style

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tsawler/tabledit/model"
)

// ThemeStyle holds the defaults a theme contributes to composition
type ThemeStyle struct {
	BorderColor      model.Color
	HeaderBackground model.Color
	HeaderText       model.Color
	ZebraBackground  model.Color // Used for odd body rows when zebra striping is on
	Zebra            bool        // Theme stripes rows regardless of AlternatingRows
	Padding          model.CellPadding
}

var themes = map[model.Theme]ThemeStyle{
	model.ThemeLight: {
		BorderColor:      model.MustColor("#DDDDDD"),
		HeaderBackground: model.MustColor("#F5F5F5"),
		HeaderText:       model.MustColor("#333333"),
		Padding:          model.PaddingNormal,
	},
	model.ThemeData: {
		BorderColor:      model.MustColor("#CBD5E1"),
		HeaderBackground: model.MustColor("#1E293B"),
		HeaderText:       model.MustColor("#FFFFFF"),
		ZebraBackground:  model.MustColor("#F1F5F9"),
		Zebra:            true,
		Padding:          model.PaddingCompact,
	},
	model.ThemeMinimal: {
		BorderColor: model.MustColor("#E5E7EB"),
		HeaderText:  model.MustColor("#111827"),
		Padding:     model.PaddingSpacious,
	},
	model.ThemeCustom: {
		BorderColor: model.MustColor("#999999"),
		Padding:     model.PaddingNormal,
	},
}

// ThemeDefaults returns the default style of a theme. Unknown themes get the light
// theme.
func ThemeDefaults(theme model.Theme) ThemeStyle {
	if def, ok := themes[theme]; ok {
		return def
	}
	return themes[model.ThemeLight]
}

// ZebraEnabled reports whether body rows of the table are striped
func ZebraEnabled(t model.TableAttrs) bool {
	return t.AlternatingRows || ThemeDefaults(t.Theme).Zebra
}

// zebraBackground returns the stripe color for the table. Themes without a
// stripe color derive one from the effective border color.
func zebraBackground(t model.TableAttrs) model.Color {
	def := ThemeDefaults(t.Theme)
	if def.ZebraBackground.IsSet() {
		return def.ZebraBackground
	}
	return Tint(t.BorderColor.Or(def.BorderColor), 0.85)
}

// Tint blends c toward white by amount (0-1)
func Tint(c model.Color, amount float64) model.Color {
	base, err := colorful.Hex(c.Hex())
	if err != nil {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := base.BlendRgb(white, amount).Clamped().RGB255()
	return model.RGB(r, g, b)
}

var paddings = map[model.CellPadding][2]model.Length{
	model.PaddingCompact:  {model.Px(4), model.Px(8)},
	model.PaddingNormal:   {model.Px(8), model.Px(12)},
	model.PaddingSpacious: {model.Px(12), model.Px(16)},
}

// PaddingFor returns the vertical and horizontal cell padding
func PaddingFor(p model.CellPadding) [2]model.Length {
	if v, ok := paddings[p]; ok {
		return v
	}
	return paddings[model.PaddingNormal]
}
