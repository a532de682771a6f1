package themecolor

// Theme color tokens used by the source format.
const (
	TokenDark1     = "DARK1"
	TokenLight1    = "LIGHT1"
	TokenDark2     = "DARK2"
	TokenLight2    = "LIGHT2"
	TokenAccent1   = "ACCENT1"
	TokenAccent2   = "ACCENT2"
	TokenAccent3   = "ACCENT3"
	TokenAccent4   = "ACCENT4"
	TokenAccent5   = "ACCENT5"
	TokenAccent6   = "ACCENT6"
	TokenHyperlink = "HYPERLINK"
	TokenFollowed  = "FOLLOWED_HYPERLINK"
)

// Sentinel color values that pass through resolution unchanged.
const (
	Transparent = "transparent"
	None        = "none"
)

// defaultPalette is the hardcoded last-resort palette, matching the
// renderer's stock theme.
var defaultPalette = map[string]string{
	TokenDark1:     "#000000",
	TokenLight1:    "#ffffff",
	TokenDark2:     "#595959",
	TokenLight2:    "#eeeeee",
	TokenAccent1:   "#4a86e8",
	TokenAccent2:   "#ff6d01",
	TokenAccent3:   "#34a853",
	TokenAccent4:   "#fbbc04",
	TokenAccent5:   "#9c27b0",
	TokenAccent6:   "#00acc1",
	TokenHyperlink: "#1155cc",
	TokenFollowed:  "#674ea7",
}

// builtinPalettes maps recognized builtin theme names to their color
// schemes. Used when a deck references a stock theme by name without
// carrying an explicit scheme.
var builtinPalettes = map[string]map[string]string{
	"SIMPLE_LIGHT": {
		TokenDark1:     "#000000",
		TokenLight1:    "#ffffff",
		TokenDark2:     "#595959",
		TokenLight2:    "#eeeeee",
		TokenAccent1:   "#4a86e8",
		TokenAccent2:   "#ff6d01",
		TokenAccent3:   "#34a853",
		TokenAccent4:   "#fbbc04",
		TokenAccent5:   "#9c27b0",
		TokenAccent6:   "#00acc1",
		TokenHyperlink: "#1155cc",
		TokenFollowed:  "#674ea7",
	},
	"SIMPLE_DARK": {
		TokenDark1:     "#ffffff",
		TokenLight1:    "#212121",
		TokenDark2:     "#e0e0e0",
		TokenLight2:    "#424242",
		TokenAccent1:   "#ffab40",
		TokenAccent2:   "#00bcd4",
		TokenAccent3:   "#8bc34a",
		TokenAccent4:   "#ff5252",
		TokenAccent5:   "#b388ff",
		TokenAccent6:   "#ffd740",
		TokenHyperlink: "#8ab4f8",
		TokenFollowed:  "#c58af9",
	},
	"STREAMLINE": {
		TokenDark1:     "#333333",
		TokenLight1:    "#ffffff",
		TokenDark2:     "#0b5394",
		TokenLight2:    "#f3f3f3",
		TokenAccent1:   "#26a4d3",
		TokenAccent2:   "#f5b400",
		TokenAccent3:   "#58b957",
		TokenAccent4:   "#d93025",
		TokenAccent5:   "#6d9eeb",
		TokenAccent6:   "#e69138",
		TokenHyperlink: "#26a4d3",
		TokenFollowed:  "#674ea7",
	},
	"CORAL": {
		TokenDark1:     "#252a31",
		TokenLight1:    "#ffffff",
		TokenDark2:     "#4a5056",
		TokenLight2:    "#fceae6",
		TokenAccent1:   "#ff7043",
		TokenAccent2:   "#ffb300",
		TokenAccent3:   "#26c6da",
		TokenAccent4:   "#9ccc65",
		TokenAccent5:   "#5c6bc0",
		TokenAccent6:   "#ec407a",
		TokenHyperlink: "#ff7043",
		TokenFollowed:  "#8d6e63",
	},
	"FOCUS": {
		TokenDark1:     "#212121",
		TokenLight1:    "#ffffff",
		TokenDark2:     "#535353",
		TokenLight2:    "#eeeeee",
		TokenAccent1:   "#00796b",
		TokenAccent2:   "#afb42b",
		TokenAccent3:   "#0288d1",
		TokenAccent4:   "#f57c00",
		TokenAccent5:   "#7b1fa2",
		TokenAccent6:   "#c2185b",
		TokenHyperlink: "#00796b",
		TokenFollowed:  "#5e35b1",
	},
}

// Default styling applied when the whole inheritance chain is silent.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSize   = 14.0
	DefaultTextColor  = "#000000"
)
