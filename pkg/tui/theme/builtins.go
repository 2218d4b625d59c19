// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

var builtins = map[string]*Theme{
	"default": {
		Name:    "default",
		Palette: DefaultPalette(),
	},
	"dark": {
		Name: "dark",
		Palette: Palette{
			Marker:   "240",
			StatusFg: "255",
			StatusBg: "236",
			Bold:     true,
		},
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Marker:   "249",
			StatusFg: "235",
			StatusBg: "254",
		},
	},
	"monochrome": {
		Name: "monochrome",
		Palette: Palette{
			Reverse: true,
			Bold:    true,
		},
	},
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"dark", "default", "light", "monochrome"}
}
