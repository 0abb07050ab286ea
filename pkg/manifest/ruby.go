package manifest

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// Gem is one dependency declared in a Gemfile.
type Gem struct {
	Name       string
	Constraint string
	Group      string // empty for the default group
}

var (
	gemLine   = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)
	groupLine = regexp.MustCompile(`^\s*group\s+(.+?)\s+do\b`)
)

// ParseGemfile parses a Gemfile. Group blocks are tracked so
// development and test gems can be classified; the parse is
// line-oriented and total.
func ParseGemfile(data []byte) []Gem {
	var gems []Gem
	group := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if m := groupLine.FindStringSubmatch(line); m != nil {
			group = normalizeGemGroup(m[1])
			continue
		}
		if strings.TrimSpace(line) == "end" {
			group = ""
			continue
		}
		if m := gemLine.FindStringSubmatch(line); m != nil {
			gems = append(gems, Gem{Name: m[1], Constraint: m[2], Group: group})
		}
	}
	return gems
}

// normalizeGemGroup reduces a group list like ":development, :test" to
// a single classification label.
func normalizeGemGroup(spec string) string {
	if strings.Contains(spec, ":development") || strings.Contains(spec, ":test") {
		return "development"
	}
	return strings.Trim(strings.TrimSpace(spec), ":")
}
