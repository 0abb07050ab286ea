package rules

import (
	"regexp"

	"assay/pkg/models"
)

// Debt categories fed by marker rules. The debt analyzer owns the
// closed category set; markers reference it by value.
const (
	DebtCodeSmells    = "code-smells"
	DebtOutdatedDeps  = "outdated-dependencies"
	DebtMissingTests  = "missing-tests"
	DebtDocumentation = "documentation"
	DebtSecurity      = "security"
	DebtPerformance   = "performance"
)

func defaultSections() []SectionRule {
	return []SectionRule{
		{Name: "installation", Heading: regexp.MustCompile(`(?i)\b(install|installation|setup|getting started)\b`)},
		{Name: "usage", Heading: regexp.MustCompile(`(?i)\b(usage|how to use|quick ?start|running)\b`)},
		{Name: "examples", Heading: regexp.MustCompile(`(?i)\b(examples?|demo)\b`)},
		{Name: "api", Heading: regexp.MustCompile(`(?i)\b(api|reference|commands|options|configuration)\b`)},
		{Name: "contributing", Heading: regexp.MustCompile(`(?i)\bcontribut`)},
		{Name: "license", Heading: regexp.MustCompile(`(?i)\blicen[cs]e\b`)},
		{Name: "badges", Body: regexp.MustCompile(`!\[[^\]]*\]\([^)]*(?:shields\.io|badge)[^)]*\)`)},
		{Name: "screenshots", Body: regexp.MustCompile(`(?i)!\[[^\]]*\]\([^)]+\.(?:png|gif|jpe?g|webp)\)|\bscreenshots?\b`)},
	}
}

func defaultMarkers() []MarkerRule {
	return []MarkerRule{
		{Marker: "TODO", Category: DebtCodeSmells, Severity: models.SeverityLow},
		{Marker: "FIXME", Category: DebtCodeSmells, Severity: models.SeverityMedium},
		{Marker: "HACK", Category: DebtCodeSmells, Severity: models.SeverityMedium},
		{Marker: "XXX", Category: DebtCodeSmells, Severity: models.SeverityMedium},
		{Marker: "BUG", Category: DebtCodeSmells, Severity: models.SeverityHigh},
		{Marker: "KLUDGE", Category: DebtCodeSmells, Severity: models.SeverityMedium},
		{Marker: "WORKAROUND", Category: DebtCodeSmells, Severity: models.SeverityMedium},
		{Marker: "DEPRECATED", Category: DebtOutdatedDeps, Severity: models.SeverityMedium},
		{Marker: "SECURITY", Category: DebtSecurity, Severity: models.SeverityHigh},
		{Marker: "VULN", Category: DebtSecurity, Severity: models.SeverityHigh},
		{Marker: "OPTIMIZE", Category: DebtPerformance, Severity: models.SeverityLow},
		{Marker: "SLOW", Category: DebtPerformance, Severity: models.SeverityLow},
	}
}

func defaultLayout() LayoutRules {
	return LayoutRules{
		SourceDirs: []string{"src", "lib", "app", "source", "pkg", "cmd", "internal"},
		TestDirs:   []string{"test", "tests", "__tests__", "spec", "e2e", "cypress"},
		DocsDirs:   []string{"docs", "doc", "documentation", "wiki"},
	}
}

func defaultPatterns() []ArchRule {
	return []ArchRule{
		{Name: "component-based", Dirs: []string{"components"}, MinMatches: 1, Confidence: 80, Description: "UI organized around reusable components"},
		{Name: "mvc", Dirs: []string{"models", "views", "controllers"}, MinMatches: 2, Confidence: 75, Description: "model-view-controller separation"},
		{Name: "layered", Dirs: []string{"controllers", "services", "repositories", "middleware"}, MinMatches: 2, Confidence: 70, Description: "layered service architecture"},
		{Name: "hexagonal", Dirs: []string{"domain", "adapters", "ports"}, MinMatches: 2, Confidence: 70, Description: "ports-and-adapters boundaries"},
		{Name: "monorepo", Dirs: []string{"packages", "apps"}, MinMatches: 1, Confidence: 70, Description: "multiple projects in one repository"},
		{Name: "jamstack", Dirs: []string{"static", "content", "public"}, MinMatches: 2, Confidence: 60, Description: "pre-rendered content with client-side scripts"},
		{Name: "api-first", Dirs: []string{"routes", "api", "endpoints"}, MinMatches: 1, Confidence: 65, Description: "HTTP API surface as the primary interface"},
		{Name: "microservices", Dirs: []string{"services"}, MinMatches: 1, Confidence: 55, Description: "independently deployable services"},
	}
}

func defaultStyles() StyleRules {
	return StyleRules{
		Fullstack: []string{"Next.js", "Nuxt", "Remix", "Gatsby", "Django", "Ruby on Rails", "Laravel", "Spring Boot", "Symfony"},
		SPA:       []string{"React", "Vue.js", "Angular", "Svelte", "Solid", "Astro"},
		API:       []string{"Express", "Fastify", "Koa", "NestJS", "FastAPI", "Flask", "Gin", "Echo", "Fiber", "Actix Web", "Axum", "Rocket", "Sinatra"},
	}
}
