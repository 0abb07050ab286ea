package rules

import "assay/pkg/models"

// defaultTech maps ecosystem-qualified dependency keys to technology
// descriptors. Key prefixes: npm, py, go, cargo, maven, composer, gem,
// image (container base images), file (path evidence).
func defaultTech() map[string]TechRule {
	return map[string]TechRule{
		// npm
		"npm:react":             {Name: "React", Category: models.CategoryFramework, Description: "declarative UI framework", Confidence: 0.98},
		"npm:react-dom":         {Name: "React", Category: models.CategoryFramework, Description: "declarative UI framework", Confidence: 0.98},
		"npm:next":              {Name: "Next.js", Category: models.CategoryFramework, Description: "React fullstack framework", Confidence: 0.98},
		"npm:vue":               {Name: "Vue.js", Category: models.CategoryFramework, Description: "progressive UI framework", Confidence: 0.98},
		"npm:nuxt":              {Name: "Nuxt", Category: models.CategoryFramework, Description: "Vue fullstack framework", Confidence: 0.98},
		"npm:@angular/core":     {Name: "Angular", Category: models.CategoryFramework, Description: "TypeScript application framework", Confidence: 0.98},
		"npm:svelte":            {Name: "Svelte", Category: models.CategoryFramework, Description: "compiled UI framework", Confidence: 0.98},
		"npm:solid-js":          {Name: "Solid", Category: models.CategoryFramework, Description: "reactive UI framework", Confidence: 0.95},
		"npm:astro":             {Name: "Astro", Category: models.CategoryFramework, Description: "content-site framework", Confidence: 0.95},
		"npm:gatsby":            {Name: "Gatsby", Category: models.CategoryFramework, Description: "React static-site framework", Confidence: 0.95},
		"npm:@remix-run/react":  {Name: "Remix", Category: models.CategoryFramework, Description: "React fullstack framework", Confidence: 0.95},
		"npm:express":           {Name: "Express", Category: models.CategoryFramework, Description: "Node.js HTTP framework", Confidence: 0.95},
		"npm:fastify":           {Name: "Fastify", Category: models.CategoryFramework, Description: "Node.js HTTP framework", Confidence: 0.95},
		"npm:koa":               {Name: "Koa", Category: models.CategoryFramework, Description: "Node.js middleware framework", Confidence: 0.95},
		"npm:@nestjs/core":      {Name: "NestJS", Category: models.CategoryFramework, Description: "Node.js application framework", Confidence: 0.95},
		"npm:electron":          {Name: "Electron", Category: models.CategoryFramework, Description: "desktop application shell", Confidence: 0.95},
		"npm:jest":              {Name: "Jest", Category: models.CategoryTesting, Description: "JavaScript test runner", Confidence: 0.95},
		"npm:mocha":             {Name: "Mocha", Category: models.CategoryTesting, Description: "JavaScript test runner", Confidence: 0.9},
		"npm:vitest":            {Name: "Vitest", Category: models.CategoryTesting, Description: "Vite-native test runner", Confidence: 0.95},
		"npm:cypress":           {Name: "Cypress", Category: models.CategoryTesting, Description: "end-to-end browser testing", Confidence: 0.95},
		"npm:@playwright/test":  {Name: "Playwright", Category: models.CategoryTesting, Description: "end-to-end browser testing", Confidence: 0.95},
		"npm:typescript":        {Name: "TypeScript", Category: models.CategoryLanguage, Description: "typed JavaScript", Confidence: 0.95},
		"npm:webpack":           {Name: "Webpack", Category: models.CategoryBuild, Description: "module bundler", Confidence: 0.9},
		"npm:vite":              {Name: "Vite", Category: models.CategoryBuild, Description: "dev server and bundler", Confidence: 0.95},
		"npm:rollup":            {Name: "Rollup", Category: models.CategoryBuild, Description: "module bundler", Confidence: 0.9},
		"npm:esbuild":           {Name: "esbuild", Category: models.CategoryBuild, Description: "bundler and minifier", Confidence: 0.9},
		"npm:@babel/core":       {Name: "Babel", Category: models.CategoryBuild, Description: "JavaScript compiler", Confidence: 0.85},
		"npm:eslint":            {Name: "ESLint", Category: models.CategoryTool, Description: "JavaScript linter", Confidence: 0.9},
		"npm:prettier":          {Name: "Prettier", Category: models.CategoryTool, Description: "code formatter", Confidence: 0.9},
		"npm:storybook":         {Name: "Storybook", Category: models.CategoryTool, Description: "component workshop", Confidence: 0.9},
		"npm:tailwindcss":       {Name: "Tailwind CSS", Category: models.CategoryStyling, Description: "utility-first CSS", Confidence: 0.95},
		"npm:styled-components": {Name: "styled-components", Category: models.CategoryStyling, Description: "CSS-in-JS styling", Confidence: 0.9},
		"npm:sass":              {Name: "Sass", Category: models.CategoryStyling, Description: "CSS preprocessor", Confidence: 0.9},
		"npm:less":              {Name: "Less", Category: models.CategoryStyling, Description: "CSS preprocessor", Confidence: 0.85},
		"npm:bootstrap":         {Name: "Bootstrap", Category: models.CategoryStyling, Description: "CSS component kit", Confidence: 0.9},
		"npm:redux":             {Name: "Redux", Category: models.CategoryLibrary, Description: "state container", Confidence: 0.9},
		"npm:@reduxjs/toolkit":  {Name: "Redux", Category: models.CategoryLibrary, Description: "state container", Confidence: 0.9},
		"npm:zustand":           {Name: "Zustand", Category: models.CategoryLibrary, Description: "state container", Confidence: 0.85},
		"npm:axios":             {Name: "Axios", Category: models.CategoryLibrary, Description: "HTTP client", Confidence: 0.85},
		"npm:graphql":           {Name: "GraphQL", Category: models.CategoryLibrary, Description: "query language runtime", Confidence: 0.9},
		"npm:@apollo/client":    {Name: "Apollo", Category: models.CategoryLibrary, Description: "GraphQL client", Confidence: 0.9},
		"npm:lodash":            {Name: "Lodash", Category: models.CategoryLibrary, Description: "utility library", Confidence: 0.8},
		"npm:rxjs":              {Name: "RxJS", Category: models.CategoryLibrary, Description: "reactive streams", Confidence: 0.85},
		"npm:three":             {Name: "Three.js", Category: models.CategoryLibrary, Description: "WebGL 3D graphics", Confidence: 0.9},
		"npm:d3":                {Name: "D3", Category: models.CategoryLibrary, Description: "data visualization", Confidence: 0.9},
		"npm:socket.io":         {Name: "Socket.IO", Category: models.CategoryLibrary, Description: "realtime messaging", Confidence: 0.9},
		"npm:@prisma/client":    {Name: "Prisma", Category: models.CategoryDatabase, Description: "type-safe ORM", Confidence: 0.95},
		"npm:mongoose":          {Name: "MongoDB", Category: models.CategoryDatabase, Description: "MongoDB ODM", Confidence: 0.9},
		"npm:pg":                {Name: "PostgreSQL", Category: models.CategoryDatabase, Description: "PostgreSQL client", Confidence: 0.9},
		"npm:mysql2":            {Name: "MySQL", Category: models.CategoryDatabase, Description: "MySQL client", Confidence: 0.9},
		"npm:sqlite3":           {Name: "SQLite", Category: models.CategoryDatabase, Description: "embedded SQL database", Confidence: 0.9},
		"npm:ioredis":           {Name: "Redis", Category: models.CategoryDatabase, Description: "Redis client", Confidence: 0.9},
		"npm:redis":             {Name: "Redis", Category: models.CategoryDatabase, Description: "Redis client", Confidence: 0.9},

		// python
		"py:django":       {Name: "Django", Category: models.CategoryFramework, Description: "batteries-included web framework", Confidence: 0.98},
		"py:flask":        {Name: "Flask", Category: models.CategoryFramework, Description: "micro web framework", Confidence: 0.95},
		"py:fastapi":      {Name: "FastAPI", Category: models.CategoryFramework, Description: "async API framework", Confidence: 0.95},
		"py:pytest":       {Name: "pytest", Category: models.CategoryTesting, Description: "Python test framework", Confidence: 0.95},
		"py:numpy":        {Name: "NumPy", Category: models.CategoryLibrary, Description: "numerical arrays", Confidence: 0.9},
		"py:pandas":       {Name: "pandas", Category: models.CategoryLibrary, Description: "dataframe analytics", Confidence: 0.9},
		"py:scikit-learn": {Name: "scikit-learn", Category: models.CategoryLibrary, Description: "machine learning toolkit", Confidence: 0.9},
		"py:tensorflow":   {Name: "TensorFlow", Category: models.CategoryLibrary, Description: "deep learning framework", Confidence: 0.95},
		"py:torch":        {Name: "PyTorch", Category: models.CategoryLibrary, Description: "deep learning framework", Confidence: 0.95},
		"py:sqlalchemy":   {Name: "SQLAlchemy", Category: models.CategoryDatabase, Description: "SQL toolkit and ORM", Confidence: 0.9},
		"py:alembic":      {Name: "Alembic", Category: models.CategoryDatabase, Description: "schema migrations", Confidence: 0.85},
		"py:celery":       {Name: "Celery", Category: models.CategoryService, Description: "task queue", Confidence: 0.9},
		"py:requests":     {Name: "Requests", Category: models.CategoryLibrary, Description: "HTTP client", Confidence: 0.8},
		"py:uvicorn":      {Name: "Uvicorn", Category: models.CategoryService, Description: "ASGI server", Confidence: 0.85},
		"py:gunicorn":     {Name: "Gunicorn", Category: models.CategoryService, Description: "WSGI server", Confidence: 0.85},
		"py:black":        {Name: "Black", Category: models.CategoryTool, Description: "code formatter", Confidence: 0.85},
		"py:mypy":         {Name: "mypy", Category: models.CategoryTool, Description: "static type checker", Confidence: 0.85},

		// go
		"go:github.com/gin-gonic/gin":      {Name: "Gin", Category: models.CategoryFramework, Description: "Go HTTP framework", Confidence: 0.95},
		"go:github.com/labstack/echo/v4":   {Name: "Echo", Category: models.CategoryFramework, Description: "Go HTTP framework", Confidence: 0.95},
		"go:github.com/gofiber/fiber/v2":   {Name: "Fiber", Category: models.CategoryFramework, Description: "Go HTTP framework", Confidence: 0.95},
		"go:github.com/gorilla/mux":        {Name: "Gorilla Mux", Category: models.CategoryLibrary, Description: "HTTP router", Confidence: 0.9},
		"go:google.golang.org/grpc":        {Name: "gRPC", Category: models.CategoryLibrary, Description: "RPC framework", Confidence: 0.95},
		"go:gorm.io/gorm":                  {Name: "GORM", Category: models.CategoryDatabase, Description: "Go ORM", Confidence: 0.95},
		"go:github.com/spf13/cobra":        {Name: "Cobra", Category: models.CategoryLibrary, Description: "CLI framework", Confidence: 0.9},
		"go:github.com/urfave/cli/v2":      {Name: "urfave/cli", Category: models.CategoryLibrary, Description: "CLI framework", Confidence: 0.9},
		"go:github.com/stretchr/testify":   {Name: "Testify", Category: models.CategoryTesting, Description: "test assertions", Confidence: 0.9},
		"go:github.com/go-redis/redis/v8":  {Name: "Redis", Category: models.CategoryDatabase, Description: "Redis client", Confidence: 0.9},
		"go:github.com/redis/go-redis/v9":  {Name: "Redis", Category: models.CategoryDatabase, Description: "Redis client", Confidence: 0.9},
		"go:go.mongodb.org/mongo-driver":   {Name: "MongoDB", Category: models.CategoryDatabase, Description: "MongoDB driver", Confidence: 0.9},
		"go:github.com/jackc/pgx/v5":       {Name: "PostgreSQL", Category: models.CategoryDatabase, Description: "PostgreSQL driver", Confidence: 0.9},
		"go:github.com/prometheus/client_golang": {Name: "Prometheus", Category: models.CategoryService, Description: "metrics instrumentation", Confidence: 0.9},

		// cargo
		"cargo:serde":     {Name: "Serde", Category: models.CategoryLibrary, Description: "serialization framework", Confidence: 0.9},
		"cargo:tokio":     {Name: "Tokio", Category: models.CategoryLibrary, Description: "async runtime", Confidence: 0.95},
		"cargo:actix-web": {Name: "Actix Web", Category: models.CategoryFramework, Description: "Rust HTTP framework", Confidence: 0.95},
		"cargo:axum":      {Name: "Axum", Category: models.CategoryFramework, Description: "Rust HTTP framework", Confidence: 0.95},
		"cargo:rocket":    {Name: "Rocket", Category: models.CategoryFramework, Description: "Rust web framework", Confidence: 0.95},
		"cargo:clap":      {Name: "Clap", Category: models.CategoryLibrary, Description: "argument parser", Confidence: 0.9},
		"cargo:diesel":    {Name: "Diesel", Category: models.CategoryDatabase, Description: "Rust ORM", Confidence: 0.9},
		"cargo:sqlx":      {Name: "SQLx", Category: models.CategoryDatabase, Description: "async SQL toolkit", Confidence: 0.9},
		"cargo:rayon":     {Name: "Rayon", Category: models.CategoryLibrary, Description: "data parallelism", Confidence: 0.85},

		// maven
		"maven:spring-boot-starter-web": {Name: "Spring Boot", Category: models.CategoryFramework, Description: "Java application framework", Confidence: 0.98},
		"maven:spring-core":             {Name: "Spring", Category: models.CategoryFramework, Description: "Java application framework", Confidence: 0.95},
		"maven:junit":                   {Name: "JUnit", Category: models.CategoryTesting, Description: "Java test framework", Confidence: 0.95},
		"maven:junit-jupiter":           {Name: "JUnit", Category: models.CategoryTesting, Description: "Java test framework", Confidence: 0.95},
		"maven:hibernate-core":          {Name: "Hibernate", Category: models.CategoryDatabase, Description: "Java ORM", Confidence: 0.95},
		"maven:lombok":                  {Name: "Lombok", Category: models.CategoryTool, Description: "boilerplate generation", Confidence: 0.85},

		// composer
		"composer:laravel/framework":       {Name: "Laravel", Category: models.CategoryFramework, Description: "PHP web framework", Confidence: 0.98},
		"composer:symfony/framework-bundle": {Name: "Symfony", Category: models.CategoryFramework, Description: "PHP web framework", Confidence: 0.95},
		"composer:phpunit/phpunit":         {Name: "PHPUnit", Category: models.CategoryTesting, Description: "PHP test framework", Confidence: 0.95},
		"composer:guzzlehttp/guzzle":       {Name: "Guzzle", Category: models.CategoryLibrary, Description: "HTTP client", Confidence: 0.85},

		// gem
		"gem:rails":   {Name: "Ruby on Rails", Category: models.CategoryFramework, Description: "Ruby web framework", Confidence: 0.98},
		"gem:sinatra": {Name: "Sinatra", Category: models.CategoryFramework, Description: "Ruby micro framework", Confidence: 0.95},
		"gem:rspec":   {Name: "RSpec", Category: models.CategoryTesting, Description: "Ruby test framework", Confidence: 0.95},
		"gem:puma":    {Name: "Puma", Category: models.CategoryService, Description: "Ruby HTTP server", Confidence: 0.85},
		"gem:sidekiq": {Name: "Sidekiq", Category: models.CategoryService, Description: "background jobs", Confidence: 0.9},
		"gem:devise":  {Name: "Devise", Category: models.CategoryLibrary, Description: "authentication", Confidence: 0.9},

		// container base images
		"image:postgres":      {Name: "PostgreSQL", Category: models.CategoryDatabase, Description: "relational database", Confidence: 0.95},
		"image:mysql":         {Name: "MySQL", Category: models.CategoryDatabase, Description: "relational database", Confidence: 0.95},
		"image:mariadb":       {Name: "MariaDB", Category: models.CategoryDatabase, Description: "relational database", Confidence: 0.95},
		"image:redis":         {Name: "Redis", Category: models.CategoryDatabase, Description: "in-memory data store", Confidence: 0.95},
		"image:mongo":         {Name: "MongoDB", Category: models.CategoryDatabase, Description: "document database", Confidence: 0.95},
		"image:nginx":         {Name: "NGINX", Category: models.CategoryInfrastructure, Description: "reverse proxy", Confidence: 0.95},
		"image:rabbitmq":      {Name: "RabbitMQ", Category: models.CategoryService, Description: "message broker", Confidence: 0.95},
		"image:elasticsearch": {Name: "Elasticsearch", Category: models.CategoryDatabase, Description: "search engine", Confidence: 0.95},
		"image:kafka":         {Name: "Kafka", Category: models.CategoryService, Description: "event streaming", Confidence: 0.95},
		"image:node":          {Name: "Node.js", Category: models.CategoryLanguage, Description: "JavaScript runtime", Confidence: 0.9},
		"image:python":        {Name: "Python", Category: models.CategoryLanguage, Description: "Python runtime", Confidence: 0.9},
		"image:golang":        {Name: "Go", Category: models.CategoryLanguage, Description: "Go toolchain image", Confidence: 0.9},

		// path evidence
		"file:package.json":       {Name: "Node.js", Category: models.CategoryLanguage, Description: "JavaScript runtime", Confidence: 0.9},
		"file:tsconfig.json":      {Name: "TypeScript", Category: models.CategoryLanguage, Description: "typed JavaScript", Confidence: 0.95},
		"file:go.mod":             {Name: "Go", Category: models.CategoryLanguage, Description: "Go module", Confidence: 0.98},
		"file:Cargo.toml":         {Name: "Rust", Category: models.CategoryLanguage, Description: "Rust crate", Confidence: 0.98},
		"file:requirements.txt":   {Name: "Python", Category: models.CategoryLanguage, Description: "Python project", Confidence: 0.95},
		"file:pyproject.toml":     {Name: "Python", Category: models.CategoryLanguage, Description: "Python project", Confidence: 0.95},
		"file:Gemfile":            {Name: "Ruby", Category: models.CategoryLanguage, Description: "Ruby project", Confidence: 0.95},
		"file:pom.xml":            {Name: "Java", Category: models.CategoryLanguage, Description: "Maven project", Confidence: 0.95},
		"file:build.gradle":       {Name: "Java", Category: models.CategoryLanguage, Description: "Gradle project", Confidence: 0.9},
		"file:composer.json":      {Name: "PHP", Category: models.CategoryLanguage, Description: "PHP project", Confidence: 0.95},
		"file:Dockerfile":         {Name: "Docker", Category: models.CategoryInfrastructure, Description: "container build", Confidence: 0.98},
		"file:docker-compose.yml":  {Name: "Docker Compose", Category: models.CategoryInfrastructure, Description: "multi-container orchestration", Confidence: 0.98},
		"file:docker-compose.yaml": {Name: "Docker Compose", Category: models.CategoryInfrastructure, Description: "multi-container orchestration", Confidence: 0.98},
		"file:.github/workflows":  {Name: "GitHub Actions", Category: models.CategoryCICD, Description: "CI workflows", Confidence: 0.95},
		"file:.gitlab-ci.yml":     {Name: "GitLab CI", Category: models.CategoryCICD, Description: "CI pipelines", Confidence: 0.95},
		"file:Jenkinsfile":        {Name: "Jenkins", Category: models.CategoryCICD, Description: "CI pipelines", Confidence: 0.95},
		"file:.circleci/config.yml": {Name: "CircleCI", Category: models.CategoryCICD, Description: "CI pipelines", Confidence: 0.95},
		"file:Chart.yaml":         {Name: "Helm", Category: models.CategoryInfrastructure, Description: "Kubernetes packaging", Confidence: 0.95},
		"file:main.tf":            {Name: "Terraform", Category: models.CategoryInfrastructure, Description: "infrastructure as code", Confidence: 0.95},
		"file:vercel.json":        {Name: "Vercel", Category: models.CategoryService, Description: "deployment platform", Confidence: 0.9},
		"file:netlify.toml":       {Name: "Netlify", Category: models.CategoryService, Description: "deployment platform", Confidence: 0.9},
		"file:Makefile":           {Name: "Make", Category: models.CategoryBuild, Description: "build automation", Confidence: 0.8},
	}
}
