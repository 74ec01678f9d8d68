package svgtext

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FontConfig maps SVG font attributes to LaTeX commands.
// The tables are plain data, so that alternate mappings may be
// loaded from a configuration file.
type FontConfig struct {
	// Families maps a font-family value to a family
	// abbreviation (rm, sf, tt).
	Families map[string]string `toml:"families"`
	// Sizes maps a font-size value to a size command.
	Sizes map[string]string `toml:"sizes"`
}

// DefaultFonts returns the mapping used by Inkscape drawings
// typeset with the Computer Modern fonts.
func DefaultFonts() FontConfig {
	return FontConfig{
		Families: map[string]string{
			"CMU Serif":           "rm",
			"CMU Sans Serif":      "sf",
			"CMU Typewriter Text": "tt",
			"Calibri":             "rm",
		},
		Sizes: map[string]string{
			"9px":  `\scriptsize`,
			"10px": `\footnotesize`,
			"11px": `\small`,
			"12px": `\normalsize`,
			"13px": `\large`,
		},
	}
}

// LoadFonts reads a font mapping from a TOML file.
// Tables absent from the file keep their default entries.
func LoadFonts(filename string) (FontConfig, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return FontConfig{}, fmt.Errorf("loading font configuration: %w", err)
	}
	config := DefaultFonts()
	if err := toml.Unmarshal(content, &config); err != nil {
		return FontConfig{}, fmt.Errorf("invalid font configuration %s: %w", filename, err)
	}
	return config, nil
}
