// Package recipe replays a YAML list of editing steps against a session.
//
// A recipe looks like
//
//	name: demo
//	continue_on_error: false
//	steps:
//	  - op: open
//	    path: photo.jpg
//	  - op: resize
//	    width: 400
//	    height: 300
//	  - op: brightness
//	    factor: 1.5
//	  - op: save
//	    path: out.png
//
// Steps run in order. By default the first failing step stops the run;
// with continue_on_error the failure is recorded and the next step runs.
package recipe

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRecipe reports a recipe that cannot be run as written.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Recipe is a named sequence of steps.
type Recipe struct {
	Name            string `yaml:"name"`
	ContinueOnError bool   `yaml:"continue_on_error"`
	Steps           []Step `yaml:"steps"`
}

// Step is one operation. Op selects the operation; only the fields that
// operation reads are meaningful.
type Step struct {
	Op string `yaml:"op"`

	// open, save
	Path string `yaml:"path,omitempty"`

	// resize, thumbnail
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	// crop
	Left   int `yaml:"left,omitempty"`
	Top    int `yaml:"top,omitempty"`
	Right  int `yaml:"right,omitempty"`
	Bottom int `yaml:"bottom,omitempty"`

	Degrees   float64  `yaml:"degrees,omitempty"`
	Direction string   `yaml:"direction,omitempty"`
	Dimension string   `yaml:"dimension,omitempty"`
	Factor    *float64 `yaml:"factor,omitempty"`
	Filter    string   `yaml:"filter,omitempty"`
	Mode      string   `yaml:"mode,omitempty"`
	Format    string   `yaml:"format,omitempty"`

	// text, circle
	Text   string  `yaml:"text,omitempty"`
	X      int     `yaml:"x,omitempty"`
	Y      int     `yaml:"y,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
	Radius int     `yaml:"radius,omitempty"`

	// rectangle, line
	X1 int `yaml:"x1,omitempty"`
	Y1 int `yaml:"y1,omitempty"`
	X2 int `yaml:"x2,omitempty"`
	Y2 int `yaml:"y2,omitempty"`

	Color  string `yaml:"color,omitempty"`
	Stroke int    `yaml:"stroke,omitempty"`

	// collage
	Paths   []string `yaml:"paths,omitempty"`
	Columns int      `yaml:"columns,omitempty"`
	Padding *int     `yaml:"padding,omitempty"`
}

// Load reads and validates the recipe at path.
func Load(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe: %w", err)
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a recipe. Unknown keys are rejected so a
// misspelt parameter is not silently ignored.
func Parse(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rec Recipe
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidRecipe)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Validate checks that the recipe has steps and every op is known.
func (r *Recipe) Validate() error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidRecipe)
	}
	for i, step := range r.Steps {
		if _, ok := operations[step.Op]; !ok {
			return fmt.Errorf("%w: step %d: unknown op %q, available ops: %v",
				ErrInvalidRecipe, i+1, step.Op, Ops())
		}
	}
	return nil
}

// Ops returns the supported op names, sorted.
func Ops() []string {
	return slices.Sorted(maps.Keys(operations))
}
