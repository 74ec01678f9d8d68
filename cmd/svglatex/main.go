// Command svglatex converts Inkscape SVG files to TeX input:
// a PDF, EPS or PNG background, optionally with a `.pdf_tex`
// overlay carrying the text.
//
// Conversion is skipped when the target is newer than the
// SVG source.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benoitkugler/svglatex/inkscape"
	"github.com/benoitkugler/svglatex/svgrender"
	"github.com/benoitkugler/svglatex/svgtex"
	"github.com/benoitkugler/svglatex/svgtext"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const imgDir = "./img"

var (
	inputName string
	method    string
	fontsPath string
	useNative bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "svglatex",
		Short: "Convert Inkscape SVG files to TeX input",
		Long: "Convert Inkscape SVG files to TeX input.\n\n" +
			"The latex-pdf and latex-eps methods also produce a *.pdf_tex\n" +
			"file containing the text of the SVG, typeset by LaTeX.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run()
		},
	}
	cmd.Flags().StringVarP(&inputName, "input-file", "i", "",
		"name (w/o extension) of the SVG file, searched under "+imgDir+", "+
			"or a path starting with "+imgDir)
	cmd.Flags().StringVarP(&method, "method", "m", "latex-pdf",
		"export method: latex-pdf, pdf, latex-eps, eps or png")
	cmd.Flags().StringVar(&fontsPath, "fonts", "",
		"TOML file mapping SVG fonts to LaTeX commands")
	cmd.Flags().BoolVar(&useNative, "native", false,
		"render with the built-in engine instead of Inkscape")
	_ = cmd.MarkFlagRequired("input-file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	switch method {
	case "latex-pdf", "pdf", "latex-eps", "eps", "png":
	default:
		return fmt.Errorf("unknown method %q", method)
	}

	fonts := svgtext.DefaultFonts()
	if fontsPath != "" {
		var err error
		if fonts, err = svgtext.LoadFonts(fontsPath); err != nil {
			return err
		}
	}

	var renderer svgtex.Renderer
	if useNative {
		renderer = svgrender.Renderer{}
	} else {
		runner, err := inkscape.NewRunner()
		if err != nil {
			return err
		}
		renderer = runner
	}
	conv := svgtex.Converter{Renderer: renderer, Fonts: fonts}

	name := inputName + ".svg"
	files, err := locate(name)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("SVG file %q not found: cannot export to %s", name, method)
	}
	for _, svg := range files {
		log.Printf("will convert SVG file %q to %s", svg, method)
		if err := convertIfNewer(conv, svg); err != nil {
			return err
		}
	}
	return nil
}

// locate resolves the input name: either an explicit path under
// the image directory, with or without a leading "./", or a file
// name to search for recursively.
func locate(name string) ([]string, error) {
	if strings.HasPrefix(filepath.ToSlash(filepath.Clean(name)), "img/") {
		return []string{name}, nil
	}
	var out []string
	err := filepath.WalkDir(imgDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// convertIfNewer converts `svg`, unless the targets are already
// newer than the source.
func convertIfNewer(conv svgtex.Converter, svg string) error {
	if _, err := os.Stat(svg); err != nil {
		return fmt.Errorf("no SVG file %q", svg)
	}
	base := strings.TrimSuffix(svg, ".svg")
	var out string
	switch {
	case strings.Contains(method, "pdf"):
		out = base + ".pdf"
	case strings.Contains(method, "eps"):
		out = base + ".eps"
	default:
		out = base + ".png"
	}
	fresh := isNewer(out, svg)
	texPath := base + ".pdf_tex"
	if strings.HasPrefix(method, "latex-") {
		fresh = fresh && isNewer(texPath, svg)
	}
	if fresh {
		log.Println("no update needed, target newer than SVG")
		return nil
	}
	log.Println("file not found or old, converting from SVG...")
	if strings.HasPrefix(method, "latex-") {
		return conv.Convert(svg, out, texPath)
	}
	return conv.Export(svg, out)
}

// isNewer reports whether the target file is newer than the
// source, logging both modification dates.
func isNewer(target, source string) bool {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return false
	}
	tgtInfo, err := os.Stat(target)
	if err != nil {
		return false
	}
	log.Printf("last modification dates:\n    source (%s): %s\n    target (%s): %s",
		source, naturalTime(srcInfo.ModTime()),
		target, naturalTime(tgtInfo.ModTime()))
	return tgtInfo.ModTime().After(srcInfo.ModTime())
}

func naturalTime(t time.Time) string { return humanize.Time(t) }
