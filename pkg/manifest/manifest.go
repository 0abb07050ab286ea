// Package manifest parses dependency manifests into typed records.
// Parsers are pure functions over raw bytes: malformed structured input
// (JSON, TOML, XML, YAML) returns a zero value and an error so the
// owning analyzer can degrade to its missing-artifact path; line-based
// formats skip unparseable lines and are total.
package manifest

import "strings"

// RootManifests lists the root-level manifest filenames the snapshot
// loader fetches eagerly.
var RootManifests = []string{
	"package.json",
	"requirements.txt",
	"pyproject.toml",
	"Cargo.toml",
	"go.mod",
	"pom.xml",
	"composer.json",
	"Gemfile",
	"Dockerfile",
	"docker-compose.yml",
	"docker-compose.yaml",
}

// IsRootManifest reports whether base is one of the recognized
// root-level manifest filenames.
func IsRootManifest(base string) bool {
	for _, m := range RootManifests {
		if base == m {
			return true
		}
	}
	return false
}

// IsWorkflowPath reports whether path is a CI workflow definition.
func IsWorkflowPath(path string) bool {
	if !strings.HasPrefix(path, ".github/workflows/") {
		return false
	}
	return strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml")
}

// ImageName reduces a container image reference to its bare name for
// rule lookup: "docker.io/library/postgres:15-alpine" becomes
// "postgres".
func ImageName(ref string) string {
	name := ref
	if i := strings.LastIndex(name, "@"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, ":"); i >= 0 && !strings.Contains(name[i:], "/") {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
