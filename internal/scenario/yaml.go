package scenario

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLScenario represents the YAML structure of a scenario file.
type YAMLScenario struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Minefield   string            `yaml:"minefield"`
	Script      string            `yaml:"script"`
	Expect      string            `yaml:"expect,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML scenario file. The minefield and script texts are
// kept as-is and parsed on demand.
func ParseYAML(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if ys.ID == "" {
		return Scenario{}, fmt.Errorf("missing id")
	}
	if strings.TrimSpace(ys.Minefield) == "" {
		return Scenario{}, fmt.Errorf("scenario %s: missing minefield", ys.ID)
	}

	name := ys.Name
	if name == "" {
		name = ys.ID
	}

	return Scenario{
		ID:          ys.ID,
		Name:        name,
		Description: ys.Description,
		Minefield:   ys.Minefield,
		Script:      ys.Script,
		Expect:      strings.TrimSpace(ys.Expect),
		Metadata:    ys.Metadata,
	}, nil
}

// MarshalYAML encodes a scenario back to its file form.
func MarshalYAML(s Scenario) ([]byte, error) {
	return yaml.Marshal(YAMLScenario{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Minefield:   s.Minefield,
		Script:      s.Script,
		Expect:      s.Expect,
		Metadata:    s.Metadata,
	})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
