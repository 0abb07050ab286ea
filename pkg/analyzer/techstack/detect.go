package techstack

import (
	"path"
	"strings"

	"assay/pkg/manifest"
	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// Signal detectors. Each is a pure function over one artifact and the
// injected rule table: it returns the matching technology items and
// never fails. Malformed input yields an empty result, not an error.

func lookup(t *rules.Table, key, version, usage string) (models.TechStackItem, bool) {
	r, ok := t.TechByKey(key)
	if !ok {
		return models.TechStackItem{}, false
	}
	return models.TechStackItem{
		Name:        r.Name,
		Category:    r.Category,
		Version:     version,
		Description: r.Description,
		Confidence:  models.ClampConfidence(r.Confidence),
		Usage:       usage,
	}, true
}

func detectNPM(data []byte, t *rules.Table) []models.TechStackItem {
	pkg, err := manifest.ParsePackageJSON(data)
	if err != nil {
		return nil
	}
	var items []models.TechStackItem
	scopes := []struct {
		deps  map[string]string
		usage string
	}{
		{pkg.Dependencies, "dependency"},
		{pkg.DevDependencies, "dev dependency"},
		{pkg.OptionalDependencies, "optional dependency"},
		{pkg.PeerDependencies, "peer dependency"},
	}
	for _, scope := range scopes {
		for name, version := range scope.deps {
			if item, ok := lookup(t, "npm:"+name, version, scope.usage); ok {
				items = append(items, item)
			}
		}
	}
	return items
}

func detectRequirements(data []byte, t *rules.Table) []models.TechStackItem {
	var items []models.TechStackItem
	for _, req := range manifest.ParseRequirements(data) {
		if item, ok := lookup(t, "py:"+req.Name, req.Constraint, "dependency"); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectPyProject(data []byte, t *rules.Table) []models.TechStackItem {
	proj, err := manifest.ParsePyProject(data)
	if err != nil {
		return nil
	}
	var items []models.TechStackItem
	for _, req := range proj.Dependencies {
		if item, ok := lookup(t, "py:"+req.Name, req.Constraint, "dependency"); ok {
			items = append(items, item)
		}
	}
	for _, req := range proj.DevDependencies {
		if item, ok := lookup(t, "py:"+req.Name, req.Constraint, "dev dependency"); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectCargo(data []byte, t *rules.Table) []models.TechStackItem {
	cargo, err := manifest.ParseCargo(data)
	if err != nil {
		return nil
	}
	var items []models.TechStackItem
	for name, version := range cargo.Dependencies {
		if item, ok := lookup(t, "cargo:"+name, version, "dependency"); ok {
			items = append(items, item)
		}
	}
	for name, version := range cargo.DevDependencies {
		if item, ok := lookup(t, "cargo:"+name, version, "dev dependency"); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectGoMod(data []byte, t *rules.Table) []models.TechStackItem {
	mod := manifest.ParseGoMod(data)
	var items []models.TechStackItem
	for _, req := range mod.Requires {
		if req.Indirect {
			continue
		}
		if item, ok := lookup(t, "go:"+req.Path, req.Version, "dependency"); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectPOM(data []byte, t *rules.Table) []models.TechStackItem {
	pom, err := manifest.ParsePOM(data)
	if err != nil {
		return nil
	}
	var items []models.TechStackItem
	for _, dep := range pom.Dependencies {
		usage := "dependency"
		if dep.IsTestScope() {
			usage = "test dependency"
		}
		if item, ok := lookup(t, "maven:"+dep.ArtifactID, dep.Version, usage); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectComposer(data []byte, t *rules.Table) []models.TechStackItem {
	c, err := manifest.ParseComposer(data)
	if err != nil {
		return nil
	}
	var items []models.TechStackItem
	for name, version := range c.Require {
		if manifest.IsPlatformPackage(name) {
			continue
		}
		if item, ok := lookup(t, "composer:"+name, version, "dependency"); ok {
			items = append(items, item)
		}
	}
	for name, version := range c.RequireDev {
		if item, ok := lookup(t, "composer:"+name, version, "dev dependency"); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectGemfile(data []byte, t *rules.Table) []models.TechStackItem {
	var items []models.TechStackItem
	for _, gem := range manifest.ParseGemfile(data) {
		usage := "dependency"
		if gem.Group == "development" {
			usage = "dev dependency"
		}
		if item, ok := lookup(t, "gem:"+gem.Name, gem.Constraint, usage); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectDockerfile(data []byte, t *rules.Table) []models.TechStackItem {
	var items []models.TechStackItem
	for _, ref := range manifest.ParseDockerfile(data).BaseImages {
		if item, ok := lookup(t, "image:"+manifest.ImageName(ref), "", "base image"); ok {
			items = append(items, item)
		}
	}
	return items
}

func detectCompose(data []byte, t *rules.Table) []models.TechStackItem {
	services, err := manifest.ParseCompose(data)
	if err != nil {
		return nil
	}
	var items []models.TechStackItem
	for _, image := range services {
		if image == "" {
			continue
		}
		if item, ok := lookup(t, "image:"+manifest.ImageName(image), "", "compose service"); ok {
			items = append(items, item)
		}
	}
	return items
}

// detectFiles matches tree paths against file-evidence rules: manifest
// filenames, CI configs and infrastructure markers.
func detectFiles(tree []snapshot.TreeEntry, t *rules.Table) []models.TechStackItem {
	var items []models.TechStackItem
	seen := make(map[string]bool)
	emit := func(key string) {
		if seen[key] {
			return
		}
		if item, ok := lookup(t, key, "", "file evidence"); ok {
			seen[key] = true
			items = append(items, item)
		}
	}
	for _, e := range tree {
		if e.Type != snapshot.EntryFile {
			continue
		}
		if strings.HasPrefix(e.Path, ".github/workflows/") {
			emit("file:.github/workflows")
			continue
		}
		emit("file:" + e.Path)
		emit("file:" + path.Base(e.Path))
	}
	return items
}
