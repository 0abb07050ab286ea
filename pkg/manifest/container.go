package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dockerfile summarizes the build-relevant directives of a Dockerfile.
type Dockerfile struct {
	BaseImages []string
	Exposes    []string
}

// ParseDockerfile extracts FROM and EXPOSE directives. Stage aliases
// referenced by later FROM lines are not counted as images.
func ParseDockerfile(data []byte) *Dockerfile {
	df := &Dockerfile{}
	stages := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) < 2 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "FROM":
			args := fields[1:]
			if strings.HasPrefix(args[0], "--platform=") {
				args = args[1:]
			}
			if len(args) == 0 || stages[args[0]] {
				continue
			}
			df.BaseImages = append(df.BaseImages, args[0])
			if len(args) >= 3 && strings.EqualFold(args[1], "AS") {
				stages[args[2]] = true
			}
		case "EXPOSE":
			df.Exposes = append(df.Exposes, fields[1:]...)
		}
	}
	return df
}

// ParseCompose parses a docker-compose document into a service name to
// image mapping. Services built from a local context have an empty
// image entry.
func ParseCompose(data []byte) (map[string]string, error) {
	var raw struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse compose file: %w", err)
	}

	services := make(map[string]string, len(raw.Services))
	for name, svc := range raw.Services {
		services[name] = svc.Image
	}
	return services, nil
}

// Workflow summarizes one CI workflow definition.
type Workflow struct {
	Name string
	Uses []string
}

// ParseWorkflow parses a GitHub Actions workflow document, collecting
// the actions referenced by its steps.
func ParseWorkflow(data []byte) (*Workflow, error) {
	var raw struct {
		Name string `yaml:"name"`
		Jobs map[string]struct {
			Steps []struct {
				Uses string `yaml:"uses"`
			} `yaml:"steps"`
		} `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse workflow: %w", err)
	}

	wf := &Workflow{Name: raw.Name}
	for _, job := range raw.Jobs {
		for _, step := range job.Steps {
			if step.Uses != "" {
				wf.Uses = append(wf.Uses, step.Uses)
			}
		}
	}
	return wf, nil
}
