package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Composer is the parsed shape of a composer.json manifest.
type Composer struct {
	Name       string            `json:"name"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// ParseComposer parses a composer.json document.
func ParseComposer(data []byte) (*Composer, error) {
	var c Composer
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse composer.json: %w", err)
	}
	return &c, nil
}

// IsPlatformPackage reports whether name is a composer platform
// requirement (php itself or an extension) rather than a package.
func IsPlatformPackage(name string) bool {
	return name == "php" || strings.HasPrefix(name, "ext-") || strings.HasPrefix(name, "lib-")
}
