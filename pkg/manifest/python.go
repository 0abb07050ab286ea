package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml"
)

// Requirement is one parsed Python dependency specifier.
type Requirement struct {
	Name       string
	Constraint string
}

// ParseRequirements parses a requirements.txt document. Comment lines,
// pip flags and include directives are skipped; the parse is total.
func ParseRequirements(data []byte) []Requirement {
	var reqs []Requirement
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if i := strings.Index(line, ";"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if r, ok := parseRequirementLine(line); ok {
			reqs = append(reqs, r)
		}
	}
	return reqs
}

func parseRequirementLine(line string) (Requirement, bool) {
	name := line
	constraint := ""
	for i, r := range line {
		if strings.ContainsRune("<>=!~", r) {
			name = strings.TrimSpace(line[:i])
			constraint = strings.TrimSpace(line[i:])
			break
		}
	}
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Requirement{}, false
	}
	return Requirement{Name: strings.ToLower(name), Constraint: constraint}, true
}

// PyProject is the parsed shape of a pyproject.toml, covering both
// PEP 621 [project] metadata and poetry tool tables.
type PyProject struct {
	Name            string
	Dependencies    []Requirement
	DevDependencies []Requirement
}

// ParsePyProject parses a pyproject.toml document.
func ParsePyProject(data []byte) (*PyProject, error) {
	var raw struct {
		Project struct {
			Name                 string              `toml:"name"`
			Dependencies         []string            `toml:"dependencies"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Name         string                 `toml:"name"`
				Dependencies map[string]interface{} `toml:"dependencies"`
				Group        map[string]struct {
					Dependencies map[string]interface{} `toml:"dependencies"`
				} `toml:"group"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pyproject.toml: %w", err)
	}

	proj := &PyProject{Name: raw.Project.Name}
	for _, spec := range raw.Project.Dependencies {
		if r, ok := parseRequirementLine(spec); ok {
			proj.Dependencies = append(proj.Dependencies, r)
		}
	}
	for _, specs := range raw.Project.OptionalDependencies {
		for _, spec := range specs {
			if r, ok := parseRequirementLine(spec); ok {
				proj.DevDependencies = append(proj.DevDependencies, r)
			}
		}
	}

	if proj.Name == "" {
		proj.Name = raw.Tool.Poetry.Name
	}
	for name, v := range raw.Tool.Poetry.Dependencies {
		if strings.EqualFold(name, "python") {
			continue
		}
		proj.Dependencies = append(proj.Dependencies, Requirement{Name: strings.ToLower(name), Constraint: tomlVersion(v)})
	}
	for _, group := range raw.Tool.Poetry.Group {
		for name, v := range group.Dependencies {
			proj.DevDependencies = append(proj.DevDependencies, Requirement{Name: strings.ToLower(name), Constraint: tomlVersion(v)})
		}
	}
	return proj, nil
}

// tomlVersion extracts a version constraint from either a bare string
// or an inline table with a version key.
func tomlVersion(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		if s, ok := t["version"].(string); ok {
			return s
		}
	}
	return ""
}
