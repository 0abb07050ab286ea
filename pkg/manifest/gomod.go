package manifest

import (
	"bufio"
	"bytes"
	"strings"
)

// ModuleRequire is one require directive from a go.mod file.
type ModuleRequire struct {
	Path     string
	Version  string
	Indirect bool
}

// GoMod is the parsed shape of a go.mod file.
type GoMod struct {
	Module   string
	Go       string
	Requires []ModuleRequire
}

// ParseGoMod parses a go.mod file. The parse is line-oriented and
// total; unrecognized directives are ignored.
func ParseGoMod(data []byte) *GoMod {
	mod := &GoMod{}
	inBlock := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case inBlock:
			if line == ")" {
				inBlock = false
				continue
			}
			if req, ok := parseRequireLine(line); ok {
				mod.Requires = append(mod.Requires, req)
			}
		case strings.HasPrefix(line, "module "):
			mod.Module = strings.TrimSpace(strings.TrimPrefix(line, "module "))
		case strings.HasPrefix(line, "go "):
			mod.Go = strings.TrimSpace(strings.TrimPrefix(line, "go "))
		case line == "require (":
			inBlock = true
		case strings.HasPrefix(line, "require "):
			if req, ok := parseRequireLine(strings.TrimPrefix(line, "require ")); ok {
				mod.Requires = append(mod.Requires, req)
			}
		}
	}
	return mod
}

func parseRequireLine(line string) (ModuleRequire, bool) {
	indirect := false
	if i := strings.Index(line, "//"); i >= 0 {
		indirect = strings.Contains(line[i:], "indirect")
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return ModuleRequire{}, false
	}
	return ModuleRequire{Path: fields[0], Version: fields[1], Indirect: indirect}, true
}
