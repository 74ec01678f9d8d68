// Package inkscape drives the Inkscape executable as a rendering
// engine: per element bounding box queries (--query-all) and
// exports to PDF, EPS or PNG.
package inkscape

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglatex/svgtex"
)

const exportDpi = 96

// Runner invokes one Inkscape executable.
// It implements svgtex.Renderer.
type Runner struct {
	// Exe is the absolute path of the executable.
	Exe string
}

var _ svgtex.Renderer = Runner{}

// NewRunner looks up `inkscape` in the PATH and resolves
// symbolic links, which is required on OS X where the command
// only works when called through its absolute path.
func NewRunner() (Runner, error) {
	exe, err := exec.LookPath("inkscape")
	if err != nil {
		return Runner{}, fmt.Errorf("inkscape executable not found: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return Runner{}, err
	}
	return Runner{Exe: exe}, nil
}

// ExitError is returned when Inkscape exits with a non zero status.
type ExitError struct {
	Exe  string
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("`%s` exited with return code %d", e.Exe, e.Code)
}

func (r Runner) run(args ...string) ([]byte, error) {
	cmd := exec.Command(r.Exe, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return nil, ExitError{Exe: r.Exe, Code: exit.ExitCode()}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// QueryBoxes returns the bounding boxes of the elements of the
// document, as reported by `--query-all`.
func (r Runner) QueryBoxes(svgPath string) (map[string]svgtex.BBox, error) {
	path, err := filepath.Abs(svgPath)
	if err != nil {
		return nil, err
	}
	out, err := r.run("--without-gui", "--query-all", "--file="+path)
	if err != nil {
		return nil, err
	}
	return parseBoxes(out)
}

// parseBoxes reads the `id,x,y,w,h` lines of --query-all.
func parseBoxes(out []byte) (map[string]svgtex.BBox, error) {
	boxes := map[string]svgtex.BBox{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		chunks := strings.Split(line, ",")
		if len(chunks) != 5 {
			return nil, fmt.Errorf("invalid bounding box line %q", line)
		}
		var coords [4]float64
		for i, c := range chunks[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid bounding box line %q: %s", line, err)
			}
			coords[i] = v
		}
		boxes[chunks[0]] = svgtex.BBox{
			X: coords[0], Y: coords[1],
			Width: coords[2], Height: coords[3],
		}
	}
	return boxes, scanner.Err()
}

// Render exports the document. The format is chosen from the
// extension of `outPath`: .pdf, .eps or .png.
func (r Runner) Render(svgPath, outPath string) error {
	svgAbs, err := filepath.Abs(svgPath)
	if err != nil {
		return err
	}
	outAbs, err := filepath.Abs(outPath)
	if err != nil {
		return err
	}
	var exportFlag string
	switch ext := filepath.Ext(outPath); ext {
	case ".pdf":
		exportFlag = "--export-pdf=" + outAbs
	case ".eps":
		exportFlag = "--export-eps=" + outAbs
	case ".png":
		exportFlag = "--export-png=" + outAbs
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
	_, err = r.run("--without-gui",
		"--export-area-drawing",
		"--export-ignore-filters",
		fmt.Sprintf("--export-dpi=%d", exportDpi),
		exportFlag,
		"--file="+svgAbs)
	return err
}
