// Package script replays a recorded session against the application
// controller. Scripts are YAML documents checked against an embedded JSON
// schema before any step runs.
package script

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var ErrInvalidScript = errors.New("invalid replay script")

// Script is a named list of steps run with an initial role.
type Script struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Steps []Step `yaml:"steps"`
}

// Point is an [x, y] pair, in overview units for pointer steps and in grid
// cells for cell steps.
type Point []int

func (p Point) xy() (int, int) { return p[0], p[1] }

// Step is one user action. Which fields matter depends on Action.
type Step struct {
	Action string  `yaml:"action"`
	At     Point   `yaml:"at,omitempty"`
	From   Point   `yaml:"from,omitempty"`
	To     Point   `yaml:"to,omitempty"`
	Cells  []Point `yaml:"cells,omitempty"`
	Zone   string  `yaml:"zone,omitempty"`

	Name             string `yaml:"name,omitempty"`
	Clickable        bool   `yaml:"clickable,omitempty"`
	NavigationTarget string `yaml:"navigation_target,omitempty"`
	BackgroundImage  string `yaml:"background_image,omitempty"`

	Title        string `yaml:"title,omitempty"`
	Engineer     string `yaml:"engineer,omitempty"`
	Type         string `yaml:"type,omitempty"`
	DurationDays int    `yaml:"duration_days,omitempty"`
	Description  string `yaml:"description,omitempty"`
	Priority     string `yaml:"priority,omitempty"`

	Date string `yaml:"date,omitempty"`

	ExpectError bool `yaml:"expect_error,omitempty"`
}

// InitialRole returns the role the script starts in.
func (s Script) InitialRole() domain.Role {
	if s.Role == "" {
		return domain.RoleEngineer
	}
	return domain.Role(s.Role)
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a script and validates it against the schema.
func Load(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := validate(doc); err != nil {
		return Script{}, err
	}

	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return s, nil
}

func validate(doc map[string]any) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidScript)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate script: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(msgs, "; "))
}
