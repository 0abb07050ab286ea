package manifest

import (
	"testing"
)

func TestParsePackageJSON(t *testing.T) {
	data := []byte(`{
		"name": "webapp",
		"version": "1.2.3",
		"dependencies": {"react": "^18.2.0", "next": "^13.5.0"},
		"devDependencies": {"jest": "^29.6.0"},
		"optionalDependencies": {"fsevents": "^2.3.0"},
		"scripts": {"test": "jest", "build": "next build"}
	}`)

	pkg, err := ParsePackageJSON(data)
	if err != nil {
		t.Fatalf("ParsePackageJSON() error = %v", err)
	}
	if pkg.Name != "webapp" {
		t.Errorf("Name = %q, want webapp", pkg.Name)
	}
	if len(pkg.Dependencies) != 2 || pkg.Dependencies["react"] != "^18.2.0" {
		t.Errorf("Dependencies = %v", pkg.Dependencies)
	}
	if len(pkg.DevDependencies) != 1 {
		t.Errorf("DevDependencies = %v", pkg.DevDependencies)
	}
	if len(pkg.OptionalDependencies) != 1 {
		t.Errorf("OptionalDependencies = %v", pkg.OptionalDependencies)
	}
	if !pkg.HasScript("test") || pkg.HasScript("lint") {
		t.Error("HasScript misreported declared scripts")
	}
}

func TestParsePackageJSONMalformed(t *testing.T) {
	if _, err := ParsePackageJSON([]byte(`{"name": `)); err == nil {
		t.Fatal("ParsePackageJSON() accepted malformed JSON")
	}
}

func TestParseRequirements(t *testing.T) {
	data := []byte(`# web deps
Django==4.2.1
flask>=2.0, <3
requests[security]~=2.31
-r base.txt
--no-binary :all:

pytest  # test only
`)

	reqs := ParseRequirements(data)
	want := []Requirement{
		{Name: "django", Constraint: "==4.2.1"},
		{Name: "flask", Constraint: ">=2.0, <3"},
		{Name: "requests", Constraint: "~=2.31"},
		{Name: "pytest", Constraint: ""},
	}
	if len(reqs) != len(want) {
		t.Fatalf("got %d requirements, want %d: %v", len(reqs), len(want), reqs)
	}
	for i, w := range want {
		if reqs[i] != w {
			t.Errorf("requirement[%d] = %+v, want %+v", i, reqs[i], w)
		}
	}
}

func TestParsePyProject(t *testing.T) {
	data := []byte(`
[project]
name = "svc"
dependencies = ["fastapi>=0.100", "uvicorn"]

[project.optional-dependencies]
dev = ["pytest>=7"]
`)

	proj, err := ParsePyProject(data)
	if err != nil {
		t.Fatalf("ParsePyProject() error = %v", err)
	}
	if proj.Name != "svc" {
		t.Errorf("Name = %q, want svc", proj.Name)
	}
	if len(proj.Dependencies) != 2 || proj.Dependencies[0].Name != "fastapi" {
		t.Errorf("Dependencies = %v", proj.Dependencies)
	}
	if len(proj.DevDependencies) != 1 || proj.DevDependencies[0].Name != "pytest" {
		t.Errorf("DevDependencies = %v", proj.DevDependencies)
	}
}

func TestParsePyProjectPoetry(t *testing.T) {
	data := []byte(`
[tool.poetry]
name = "legacy"

[tool.poetry.dependencies]
python = "^3.11"
django = "^4.2"
celery = { version = "^5.3", extras = ["redis"] }

[tool.poetry.group.dev.dependencies]
pytest = "^7.4"
`)

	proj, err := ParsePyProject(data)
	if err != nil {
		t.Fatalf("ParsePyProject() error = %v", err)
	}
	if proj.Name != "legacy" {
		t.Errorf("Name = %q, want legacy", proj.Name)
	}
	deps := make(map[string]string)
	for _, r := range proj.Dependencies {
		deps[r.Name] = r.Constraint
	}
	if _, ok := deps["python"]; ok {
		t.Error("python interpreter constraint should be skipped")
	}
	if deps["django"] != "^4.2" {
		t.Errorf("django constraint = %q, want ^4.2", deps["django"])
	}
	if deps["celery"] != "^5.3" {
		t.Errorf("celery constraint = %q, want ^5.3 from inline table", deps["celery"])
	}
	if len(proj.DevDependencies) != 1 {
		t.Errorf("DevDependencies = %v", proj.DevDependencies)
	}
}

func TestParseCargo(t *testing.T) {
	data := []byte(`
[package]
name = "engine"
version = "0.3.0"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1.32"

[dev-dependencies]
criterion = "0.5"
`)

	c, err := ParseCargo(data)
	if err != nil {
		t.Fatalf("ParseCargo() error = %v", err)
	}
	if c.Name != "engine" || c.Version != "0.3.0" {
		t.Errorf("package = %s@%s", c.Name, c.Version)
	}
	if c.Dependencies["serde"] != "1.0" {
		t.Errorf("serde constraint = %q, want 1.0 from inline table", c.Dependencies["serde"])
	}
	if c.Dependencies["tokio"] != "1.32" {
		t.Errorf("tokio constraint = %q", c.Dependencies["tokio"])
	}
	if c.DevDependencies["criterion"] != "0.5" {
		t.Errorf("criterion constraint = %q", c.DevDependencies["criterion"])
	}
}

func TestParseCargoMalformed(t *testing.T) {
	if _, err := ParseCargo([]byte("[package\nname=")); err == nil {
		t.Fatal("ParseCargo() accepted malformed TOML")
	}
}

func TestParseGoMod(t *testing.T) {
	data := []byte(`module example.com/svc

go 1.22.0

require (
	github.com/gin-gonic/gin v1.9.1
	github.com/stretchr/testify v1.8.4
	golang.org/x/sys v0.12.0 // indirect
)

require gorm.io/gorm v1.25.4
`)

	mod := ParseGoMod(data)
	if mod.Module != "example.com/svc" {
		t.Errorf("Module = %q", mod.Module)
	}
	if mod.Go != "1.22.0" {
		t.Errorf("Go = %q", mod.Go)
	}
	if len(mod.Requires) != 4 {
		t.Fatalf("Requires = %d entries, want 4", len(mod.Requires))
	}
	if !mod.Requires[2].Indirect {
		t.Error("x/sys should be flagged indirect")
	}
	if mod.Requires[3].Path != "gorm.io/gorm" {
		t.Errorf("inline require = %+v", mod.Requires[3])
	}
}

func TestParsePOM(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>svc</artifactId>
  <version>1.0.0</version>
  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
      <version>3.1.0</version>
    </dependency>
    <dependency>
      <groupId>org.junit.jupiter</groupId>
      <artifactId>junit-jupiter</artifactId>
      <version>5.9.0</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
</project>`)

	pom, err := ParsePOM(data)
	if err != nil {
		t.Fatalf("ParsePOM() error = %v", err)
	}
	if pom.ArtifactID != "svc" {
		t.Errorf("ArtifactID = %q", pom.ArtifactID)
	}
	if len(pom.Dependencies) != 2 {
		t.Fatalf("Dependencies = %d, want 2", len(pom.Dependencies))
	}
	if pom.Dependencies[0].IsTestScope() {
		t.Error("spring-boot-starter-web misclassified as test scope")
	}
	if !pom.Dependencies[1].IsTestScope() {
		t.Error("junit-jupiter should be test scope")
	}
}

func TestParseComposer(t *testing.T) {
	data := []byte(`{
		"name": "acme/shop",
		"require": {"php": "^8.1", "laravel/framework": "^10.0"},
		"require-dev": {"phpunit/phpunit": "^10.0"}
	}`)

	c, err := ParseComposer(data)
	if err != nil {
		t.Fatalf("ParseComposer() error = %v", err)
	}
	if c.Require["laravel/framework"] != "^10.0" {
		t.Errorf("Require = %v", c.Require)
	}
	if !IsPlatformPackage("php") || !IsPlatformPackage("ext-json") || IsPlatformPackage("laravel/framework") {
		t.Error("IsPlatformPackage misclassified")
	}
}

func TestParseGemfile(t *testing.T) {
	data := []byte(`source "https://rubygems.org"

gem "rails", "~> 7.0.4"
gem "puma"

group :development, :test do
  gem "rspec", "~> 3.12"
end
`)

	gems := ParseGemfile(data)
	if len(gems) != 3 {
		t.Fatalf("got %d gems, want 3: %v", len(gems), gems)
	}
	if gems[0].Name != "rails" || gems[0].Constraint != "~> 7.0.4" || gems[0].Group != "" {
		t.Errorf("rails = %+v", gems[0])
	}
	if gems[2].Name != "rspec" || gems[2].Group != "development" {
		t.Errorf("rspec = %+v", gems[2])
	}
}

func TestParseDockerfile(t *testing.T) {
	data := []byte(`FROM --platform=linux/amd64 node:18-alpine AS build
RUN npm ci
FROM nginx:1.25
COPY --from=build /app/dist /usr/share/nginx/html
EXPOSE 80 443
FROM build AS test
`)

	df := ParseDockerfile(data)
	if len(df.BaseImages) != 2 {
		t.Fatalf("BaseImages = %v, want 2 entries", df.BaseImages)
	}
	if df.BaseImages[0] != "node:18-alpine" || df.BaseImages[1] != "nginx:1.25" {
		t.Errorf("BaseImages = %v", df.BaseImages)
	}
	if len(df.Exposes) != 2 {
		t.Errorf("Exposes = %v", df.Exposes)
	}
}

func TestImageName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"node:18-alpine", "node"},
		{"docker.io/library/postgres:15", "postgres"},
		{"ghcr.io/acme/api@sha256:abcd", "api"},
		{"redis", "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := ImageName(tt.ref); got != tt.want {
				t.Errorf("ImageName(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestParseCompose(t *testing.T) {
	data := []byte(`
services:
  db:
    image: postgres:15
  cache:
    image: redis:7-alpine
  app:
    build: .
`)

	services, err := ParseCompose(data)
	if err != nil {
		t.Fatalf("ParseCompose() error = %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("services = %v", services)
	}
	if services["db"] != "postgres:15" {
		t.Errorf("db image = %q", services["db"])
	}
	if services["app"] != "" {
		t.Errorf("locally built service should have empty image, got %q", services["app"])
	}
}

func TestParseComposeMalformed(t *testing.T) {
	if _, err := ParseCompose([]byte("services: [")); err == nil {
		t.Fatal("ParseCompose() accepted malformed YAML")
	}
}

func TestParseWorkflow(t *testing.T) {
	data := []byte(`
name: ci
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-node@v4
      - run: npm test
`)

	wf, err := ParseWorkflow(data)
	if err != nil {
		t.Fatalf("ParseWorkflow() error = %v", err)
	}
	if wf.Name != "ci" {
		t.Errorf("Name = %q", wf.Name)
	}
	if len(wf.Uses) != 2 {
		t.Errorf("Uses = %v", wf.Uses)
	}
}

func TestIsRootManifest(t *testing.T) {
	if !IsRootManifest("package.json") || !IsRootManifest("Gemfile") {
		t.Error("known manifests not recognized")
	}
	if IsRootManifest("index.js") {
		t.Error("index.js misrecognized as manifest")
	}
}

func TestIsWorkflowPath(t *testing.T) {
	if !IsWorkflowPath(".github/workflows/ci.yml") {
		t.Error("workflow path not recognized")
	}
	if IsWorkflowPath(".github/workflows/README.md") || IsWorkflowPath("ci.yml") {
		t.Error("non-workflow path recognized")
	}
}
