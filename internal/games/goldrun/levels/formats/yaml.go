// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/goldrun/internal/games/goldrun/core"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for a file that holds neither a level nor a pack.
var ErrEmpty = errors.New("no levels in file")

// YAMLLevel represents the YAML structure for a single level.
type YAMLLevel struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Rules  string   `yaml:"rules,omitempty"`
	Hint   string   `yaml:"hint,omitempty"`
	Size   YAMLSize `yaml:"size,omitempty"`
	Layout []string `yaml:"layout"`
}

// YAMLSize represents grid dimensions. Zero values are taken from the layout.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPack is a file holding several levels. Levels without rules inherit
// the pack's.
type YAMLPack struct {
	Name   string      `yaml:"name"`
	Rules  string      `yaml:"rules,omitempty"`
	Levels []YAMLLevel `yaml:"levels"`
}

// Pack represents a parsed file ready for use.
type Pack struct {
	Name   string
	Levels []*core.Level
}

// ParseYAML parses a YAML level file. The file is either a single level
// or a pack with a levels list.
func ParseYAML(data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(yp.Levels) == 0 {
		var yl YAMLLevel
		if err := yaml.Unmarshal(data, &yl); err != nil {
			return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
		if len(yl.Layout) == 0 {
			return Pack{}, ErrEmpty
		}
		yp.Name = yl.Name
		yp.Levels = []YAMLLevel{yl}
	}

	pack := Pack{Name: yp.Name}
	for _, yl := range yp.Levels {
		rules := yl.Rules
		if rules == "" {
			rules = yp.Rules
		}
		pack.Levels = append(pack.Levels, &core.Level{
			ID:     yl.ID,
			Name:   yl.Name,
			Hint:   yl.Hint,
			Rules:  rules,
			Width:  yl.Size.W,
			Height: yl.Size.H,
			Layout: yl.Layout,
		})
	}
	return pack, nil
}

// MarshalYAML encodes a single level in the format ParseYAML reads.
func MarshalYAML(l *core.Level) ([]byte, error) {
	w, h := l.Size()
	return yaml.Marshal(YAMLLevel{
		ID:     l.ID,
		Name:   l.Name,
		Rules:  l.Rules,
		Hint:   l.Hint,
		Size:   YAMLSize{W: w, H: h},
		Layout: l.Layout,
	})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
