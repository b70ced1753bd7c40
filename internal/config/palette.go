package config

// Theme selects one of the built-in color palettes.
type Theme int

const (
	ThemeDefault Theme = iota
	ThemeSunset
	ThemeOcean
	ThemeFire
	ThemeForest
	ThemeGalaxy
	ThemeMonochrome
	ThemeWarm
	ThemeCool
)

var themeNames = map[Theme]string{
	ThemeDefault:    "default",
	ThemeSunset:     "sunset",
	ThemeOcean:      "ocean",
	ThemeFire:       "fire",
	ThemeForest:     "forest",
	ThemeGalaxy:     "galaxy",
	ThemeMonochrome: "monochrome",
	ThemeWarm:       "warm",
	ThemeCool:       "cool",
}

func (t Theme) String() string {
	if s, ok := themeNames[t]; ok {
		return s
	}
	return "default"
}

// ParseTheme maps a theme name to its Theme value. Unknown names return
// ThemeDefault and false.
func ParseTheme(name string) (Theme, bool) {
	for t, s := range themeNames {
		if s == name {
			return t, true
		}
	}
	return ThemeDefault, false
}

// Themes lists every theme in a stable order.
func Themes() []Theme {
	return []Theme{
		ThemeDefault, ThemeSunset, ThemeOcean, ThemeFire, ThemeForest,
		ThemeGalaxy, ThemeMonochrome, ThemeWarm, ThemeCool,
	}
}

// SmoothPalette is the default wide-hue palette used for color cycling.
var SmoothPalette = []RGB{
	{255, 0, 0}, {255, 64, 0}, {255, 128, 0}, {255, 192, 0},
	{255, 255, 0}, {192, 255, 0}, {0, 255, 0}, {0, 255, 128},
	{0, 255, 255}, {0, 128, 255}, {0, 0, 255}, {128, 0, 255},
	{255, 0, 255}, {255, 0, 128},
}

// WarmPalette covers reds, oranges and yellows.
var WarmPalette = []RGB{
	{255, 0, 0}, {255, 32, 0}, {255, 64, 0}, {255, 96, 0},
	{255, 128, 0}, {255, 160, 0}, {255, 192, 0}, {255, 224, 0},
	{255, 255, 0}, {255, 255, 64}, {255, 192, 128}, {255, 128, 64},
}

// CoolPalette covers blues, purples and cyans.
var CoolPalette = []RGB{
	{0, 0, 255}, {0, 64, 255}, {0, 128, 255}, {0, 192, 255},
	{0, 255, 255}, {0, 255, 192}, {0, 255, 128}, {64, 128, 255},
	{128, 0, 255}, {192, 0, 255}, {255, 0, 255}, {255, 0, 192},
}

var themePalettes = map[Theme][]RGB{
	ThemeDefault: SmoothPalette,
	ThemeSunset: {
		{128, 0, 128}, {192, 0, 128}, {255, 0, 128}, {255, 64, 128},
		{255, 128, 64}, {255, 192, 0}, {255, 128, 0}, {255, 64, 0},
		{255, 0, 0}, {192, 0, 0},
	},
	ThemeOcean: {
		{0, 0, 64}, {0, 0, 128}, {0, 64, 192}, {0, 128, 255},
		{0, 192, 255}, {0, 255, 255}, {64, 255, 192}, {128, 255, 128},
		{0, 255, 128}, {0, 192, 128},
	},
	ThemeFire: {
		{64, 0, 0}, {128, 0, 0}, {192, 0, 0}, {255, 0, 0},
		{255, 64, 0}, {255, 128, 0}, {255, 192, 0}, {255, 255, 0},
		{255, 255, 128}, {255, 255, 255},
	},
	ThemeForest: {
		{0, 64, 0}, {0, 96, 0}, {0, 128, 0}, {0, 192, 0},
		{64, 255, 0}, {128, 255, 0}, {192, 255, 0}, {255, 255, 0},
		{192, 192, 0}, {128, 128, 0},
	},
	ThemeGalaxy: {
		{64, 0, 128}, {96, 0, 192}, {128, 0, 255}, {64, 64, 255},
		{0, 128, 255}, {0, 192, 255}, {0, 255, 255}, {128, 255, 255},
		{192, 192, 255}, {255, 255, 255},
	},
	ThemeMonochrome: {
		{255, 255, 255}, {224, 224, 224}, {192, 192, 192}, {160, 160, 160},
		{128, 128, 128}, {96, 96, 96}, {64, 64, 64}, {32, 32, 32},
		{64, 64, 64}, {128, 128, 128},
	},
	ThemeWarm: WarmPalette,
	ThemeCool: CoolPalette,
}

// Palette returns the palette for a theme. An unknown theme or an empty
// palette yields the default palette so callers always get at least one
// color.
func Palette(t Theme) []RGB {
	p, ok := themePalettes[t]
	if !ok || len(p) == 0 {
		return SmoothPalette
	}
	return p
}

// ProgramPalette is the full-spectrum palette used by the preset programs.
var ProgramPalette = []RGB{
	{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0},
	{255, 0, 255}, {0, 255, 255}, {255, 128, 0}, {128, 0, 255},
	{255, 64, 128}, {0, 255, 128}, {255, 255, 255},
}

// ProgramPaletteCool is the cool-colors-only variant for the preset programs.
var ProgramPaletteCool = []RGB{
	{0, 255, 0}, {0, 0, 255}, {0, 255, 255}, {128, 0, 255},
	{0, 255, 128}, {64, 128, 255}, {255, 255, 255}, {200, 255, 200},
	{200, 200, 255}, {255, 255, 0},
}
