package manifest

import (
	"encoding/xml"
	"fmt"
)

// POMDependency is one Maven dependency declaration.
type POMDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   bool   `xml:"optional"`
}

// POM is the parsed shape of a Maven pom.xml.
type POM struct {
	XMLName      xml.Name        `xml:"project"`
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Dependencies []POMDependency `xml:"dependencies>dependency"`
}

// ParsePOM parses a pom.xml document.
func ParsePOM(data []byte) (*POM, error) {
	var pom POM
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("parse pom.xml: %w", err)
	}
	return &pom, nil
}

// IsTestScope reports whether the dependency only applies to tests.
func (d POMDependency) IsTestScope() bool {
	return d.Scope == "test"
}
