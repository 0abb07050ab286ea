// Package deps analyzes declared dependencies: scope counts, duplicate
// declarations and missing standard scripts.
package deps

import (
	"context"
	"path"
	"sort"

	"assay/pkg/analyzer"
	"assay/pkg/manifest"
	"assay/pkg/models"
	"assay/pkg/snapshot"
)

// StandardScripts are the package.json scripts every project is
// expected to declare.
var StandardScripts = []string{"test", "build", "lint", "start"}

// Report is the dependency sub-report.
type Report struct {
	Total          int                       `json:"total" toon:"total"`
	Production     int                       `json:"production" toon:"production"`
	Development    int                       `json:"development" toon:"development"`
	Optional       int                       `json:"optional" toon:"optional"`
	Records        []models.DependencyRecord `json:"records" toon:"records"`
	Duplicates     []Duplicate               `json:"duplicates" toon:"duplicates"`
	MissingScripts []string                  `json:"missing_scripts" toon:"missing_scripts"`
	Healthy        bool                      `json:"healthy" toon:"healthy"`
}

// Duplicate is one dependency declared in more than one scope with
// conflicting version ranges.
type Duplicate struct {
	Name     string   `json:"name" toon:"name"`
	Scopes   []string `json:"scopes" toon:"scopes"`
	Versions []string `json:"versions" toon:"versions"`
}

// Default returns the degraded report used when no manifest is present:
// zero counts and the full missing-scripts list.
func Default() *Report {
	return &Report{
		Records:        []models.DependencyRecord{},
		Duplicates:     []Duplicate{},
		MissingScripts: append([]string{}, StandardScripts...),
	}
}

// Analyzer classifies declared dependencies across every recognized
// manifest.
type Analyzer struct{}

var _ analyzer.SnapshotAnalyzer[*Report] = (*Analyzer)(nil)

// New creates a dependency analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// Analyze collects dependency records from every manifest artifact and
// derives scope counts, duplicates and script coverage.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.Snapshot) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}

	report := Default()
	for _, art := range snap.ArtifactsOfKind(snapshot.KindManifest) {
		if art.Content == nil {
			continue
		}
		report.Records = append(report.Records, collect(path.Base(art.Path), art.Content)...)
	}

	sort.Slice(report.Records, func(i, j int) bool {
		if report.Records[i].Name != report.Records[j].Name {
			return report.Records[i].Name < report.Records[j].Name
		}
		return report.Records[i].Scope < report.Records[j].Scope
	})

	for _, rec := range report.Records {
		switch rec.Scope {
		case models.ScopeProduction:
			report.Production++
		case models.ScopeDevelopment:
			report.Development++
		case models.ScopeOptional:
			report.Optional++
		}
	}
	report.Total = report.Production + report.Development + report.Optional
	report.Duplicates = findDuplicates(report.Records)

	if pkg := npmManifest(snap); pkg != nil {
		report.MissingScripts = missingScripts(pkg)
	}
	report.Healthy = len(report.Duplicates) == 0 && report.Total > 0
	return report, nil
}

// collect parses one manifest into dependency records. Unrecognized or
// malformed manifests contribute nothing.
func collect(base string, data []byte) []models.DependencyRecord {
	switch base {
	case "package.json":
		pkg, err := manifest.ParsePackageJSON(data)
		if err != nil {
			return nil
		}
		var recs []models.DependencyRecord
		recs = appendScope(recs, pkg.Dependencies, models.ScopeProduction, "npm")
		recs = appendScope(recs, pkg.DevDependencies, models.ScopeDevelopment, "npm")
		recs = appendScope(recs, pkg.OptionalDependencies, models.ScopeOptional, "npm")
		return recs
	case "requirements.txt":
		var recs []models.DependencyRecord
		for _, req := range manifest.ParseRequirements(data) {
			recs = append(recs, models.DependencyRecord{Name: req.Name, Version: req.Constraint, Scope: models.ScopeProduction, Ecosystem: "python"})
		}
		return recs
	case "pyproject.toml":
		proj, err := manifest.ParsePyProject(data)
		if err != nil {
			return nil
		}
		var recs []models.DependencyRecord
		for _, req := range proj.Dependencies {
			recs = append(recs, models.DependencyRecord{Name: req.Name, Version: req.Constraint, Scope: models.ScopeProduction, Ecosystem: "python"})
		}
		for _, req := range proj.DevDependencies {
			recs = append(recs, models.DependencyRecord{Name: req.Name, Version: req.Constraint, Scope: models.ScopeDevelopment, Ecosystem: "python"})
		}
		return recs
	case "Cargo.toml":
		cargo, err := manifest.ParseCargo(data)
		if err != nil {
			return nil
		}
		var recs []models.DependencyRecord
		recs = appendScope(recs, cargo.Dependencies, models.ScopeProduction, "cargo")
		recs = appendScope(recs, cargo.DevDependencies, models.ScopeDevelopment, "cargo")
		return recs
	case "go.mod":
		var recs []models.DependencyRecord
		for _, req := range manifest.ParseGoMod(data).Requires {
			if req.Indirect {
				continue
			}
			recs = append(recs, models.DependencyRecord{Name: req.Path, Version: req.Version, Scope: models.ScopeProduction, Ecosystem: "go"})
		}
		return recs
	case "pom.xml":
		pom, err := manifest.ParsePOM(data)
		if err != nil {
			return nil
		}
		var recs []models.DependencyRecord
		for _, dep := range pom.Dependencies {
			scope := models.ScopeProduction
			switch {
			case dep.IsTestScope():
				scope = models.ScopeDevelopment
			case dep.Optional:
				scope = models.ScopeOptional
			}
			recs = append(recs, models.DependencyRecord{Name: dep.ArtifactID, Version: dep.Version, Scope: scope, Ecosystem: "maven"})
		}
		return recs
	case "composer.json":
		c, err := manifest.ParseComposer(data)
		if err != nil {
			return nil
		}
		var recs []models.DependencyRecord
		for name, version := range c.Require {
			if manifest.IsPlatformPackage(name) {
				continue
			}
			recs = append(recs, models.DependencyRecord{Name: name, Version: version, Scope: models.ScopeProduction, Ecosystem: "composer"})
		}
		for name, version := range c.RequireDev {
			recs = append(recs, models.DependencyRecord{Name: name, Version: version, Scope: models.ScopeDevelopment, Ecosystem: "composer"})
		}
		return recs
	case "Gemfile":
		var recs []models.DependencyRecord
		for _, gem := range manifest.ParseGemfile(data) {
			scope := models.ScopeProduction
			if gem.Group == "development" {
				scope = models.ScopeDevelopment
			}
			recs = append(recs, models.DependencyRecord{Name: gem.Name, Version: gem.Constraint, Scope: scope, Ecosystem: "ruby"})
		}
		return recs
	}
	return nil
}

func appendScope(recs []models.DependencyRecord, deps map[string]string, scope models.Scope, ecosystem string) []models.DependencyRecord {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		recs = append(recs, models.DependencyRecord{Name: name, Version: deps[name], Scope: scope, Ecosystem: ecosystem})
	}
	return recs
}

// findDuplicates reports dependencies declared in more than one scope
// with differing version ranges. Same-named packages from different
// ecosystems are unrelated and never count as duplicates of each
// other. Records must be sorted by name.
func findDuplicates(records []models.DependencyRecord) []Duplicate {
	dups := []Duplicate{}
	for i := 0; i < len(records); {
		j := i
		for j < len(records) && records[j].Name == records[i].Name {
			j++
		}
		group := records[i:j]
		i = j
		if len(group) < 2 {
			continue
		}

		byEco := map[string][]models.DependencyRecord{}
		for _, rec := range group {
			byEco[rec.Ecosystem] = append(byEco[rec.Ecosystem], rec)
		}
		for _, eco := range sortedGroupKeys(byEco) {
			scopes := map[string]bool{}
			versions := map[string]bool{}
			for _, rec := range byEco[eco] {
				scopes[string(rec.Scope)] = true
				versions[rec.Version] = true
			}
			if len(scopes) < 2 || len(versions) < 2 {
				continue
			}
			dups = append(dups, Duplicate{
				Name:     group[0].Name,
				Scopes:   sortedKeys(scopes),
				Versions: sortedKeys(versions),
			})
		}
	}
	return dups
}

func sortedGroupKeys(groups map[string][]models.DependencyRecord) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func npmManifest(snap *snapshot.Snapshot) *manifest.PackageJSON {
	data := snap.Artifact("package.json")
	if data == nil {
		return nil
	}
	pkg, err := manifest.ParsePackageJSON(data)
	if err != nil {
		return nil
	}
	return pkg
}

func missingScripts(pkg *manifest.PackageJSON) []string {
	missing := []string{}
	for _, name := range StandardScripts {
		if !pkg.HasScript(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
