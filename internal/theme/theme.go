package theme

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	AddColor     string `json:"addColor"`
	DelColor     string `json:"delColor"`
	MetaColor    string `json:"metaColor"`
	DividerColor string `json:"dividerColor"`
	// Backgrounds for the changed words within a line.
	WordAddBgColor string `json:"wordAddBgColor"`
	WordDelBgColor string `json:"wordDelBgColor"`
	// Chroma style name for syntax highlighting.
	SyntaxStyle string `json:"syntaxStyle"`
}

func darkTheme() Theme {
	return Theme{
		AddColor:       "34",
		DelColor:       "196",
		MetaColor:      "63",
		DividerColor:   "240",
		WordAddBgColor: "22",
		WordDelBgColor: "52",
		SyntaxStyle:    "monokai",
	}
}

func lightTheme() Theme {
	return Theme{
		AddColor:       "22",
		DelColor:       "9",
		MetaColor:      "27",
		DividerColor:   "244",
		WordAddBgColor: "194",
		WordDelBgColor: "224",
		SyntaxStyle:    "github",
	}
}

// DefaultTheme is the theme used before any preference is known.
func DefaultTheme() Theme {
	return darkTheme()
}

// Get returns the requested base theme. Unknown names fall back to dark.
func Get(name string) Theme {
	switch name {
	case "light":
		return lightTheme()
	default:
		return darkTheme()
	}
}

// Load returns the base theme overridden by .diffscope/theme.json at
// repoRoot, when present. Empty fields keep their base values.
func Load(repoRoot, baseTheme string) Theme {
	t := Get(baseTheme)
	path := filepath.Join(repoRoot, ".diffscope", "theme.json")
	b, err := os.ReadFile(path)
	if err != nil {
		return t
	}
	var u Theme
	if err := json.Unmarshal(b, &u); err != nil {
		return t
	}
	override(&t.AddColor, u.AddColor)
	override(&t.DelColor, u.DelColor)
	override(&t.MetaColor, u.MetaColor)
	override(&t.DividerColor, u.DividerColor)
	override(&t.WordAddBgColor, u.WordAddBgColor)
	override(&t.WordDelBgColor, u.WordDelBgColor)
	override(&t.SyntaxStyle, u.SyntaxStyle)
	return t
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (t Theme) AddText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.AddColor)).Render(s)
}

func (t Theme) DelText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DelColor)).Render(s)
}

func (t Theme) MetaText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.MetaColor)).Render(s)
}

func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DividerColor)).Render(s)
}

// AddWord and DelWord emphasize the changed tokens within a line.

func (t Theme) AddWord(s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.AddColor)).
		Background(lipgloss.Color(t.WordAddBgColor)).
		Render(s)
}

func (t Theme) DelWord(s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DelColor)).
		Background(lipgloss.Color(t.WordDelBgColor)).
		Render(s)
}
