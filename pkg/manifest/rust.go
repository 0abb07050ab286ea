package manifest

import (
	"fmt"

	toml "github.com/pelletier/go-toml"
)

// Cargo is the parsed shape of a Cargo.toml manifest.
type Cargo struct {
	Name            string
	Version         string
	Dependencies    map[string]string
	DevDependencies map[string]string
}

// ParseCargo parses a Cargo.toml document. Dependency values may be
// bare version strings or inline tables; both reduce to a version
// constraint.
func ParseCargo(data []byte) (*Cargo, error) {
	var raw struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
		Dependencies    map[string]interface{} `toml:"dependencies"`
		DevDependencies map[string]interface{} `toml:"dev-dependencies"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse Cargo.toml: %w", err)
	}

	c := &Cargo{
		Name:            raw.Package.Name,
		Version:         raw.Package.Version,
		Dependencies:    make(map[string]string, len(raw.Dependencies)),
		DevDependencies: make(map[string]string, len(raw.DevDependencies)),
	}
	for name, v := range raw.Dependencies {
		c.Dependencies[name] = tomlVersion(v)
	}
	for name, v := range raw.DevDependencies {
		c.DevDependencies[name] = tomlVersion(v)
	}
	return c, nil
}
