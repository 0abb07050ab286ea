package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key thresholds.

func describeRepository() string {
	return `Runs the full repository analysis: tech stack, dependencies, README quality, structure, security, performance, technical debt, insights and a composite 0-100 score.

USE WHEN:
- Getting a first overview of an unfamiliar repository
- Producing a health report before a review or handover
- Comparing overall state across repositories
- Deciding which focused tool to run next

INTERPRETING RESULTS:
- Overall score: A >= 90, B >= 80, C >= 70, D >= 60, F below
- signal_coverage near 0 means little evidence was found, not bad code
- Every category score is 0-100 with a component breakdown
- Degraded analyzers report documented defaults, never missing sections

METRICS RETURNED:
- tech_stack, dependencies, readme, structure sub-reports
- security and performance findings with severities
- debt categories, maintenance score, overall debt level
- insights: architecture style, assessments, recommendations
- score: overall value, grade, weights, components`
}

func describeTechStack() string {
	return `Detects frameworks, languages, tools and services from manifests and tree evidence (package.json, go.mod, Cargo.toml, Dockerfile, CI workflows and more).

USE WHEN:
- Identifying what a repository is built with
- Checking whether a specific framework or tool is in use
- Grouping repositories by technology
- Seeding documentation or onboarding material

INTERPRETING RESULTS:
- Confidence is 0.0-1.0 per detection; manifest evidence scores higher than file evidence
- The same technology detected from several sources is merged at max confidence
- usage distinguishes production, development and optional declarations
- languages lists only items in the language category

METRICS RETURNED:
- items: name, category, version, confidence, usage per technology
- languages: detected programming languages
- summary: total count and per-category counts`
}

func describeDependencies() string {
	return `Classifies declared dependencies across every recognized manifest and flags duplicates and missing standard scripts.

USE WHEN:
- Auditing dependency health before an upgrade
- Finding packages declared in several scopes with different versions
- Checking that standard npm scripts (test, build, lint, start) exist
- Counting production vs development surface

INTERPRETING RESULTS:
- total always equals production + development + optional
- A duplicate needs both multiple scopes AND multiple versions
- missing_scripts is only populated when a package.json is present
- healthy is true when there are dependencies and no duplicates

METRICS RETURNED:
- records: name, version, scope, ecosystem per dependency
- duplicates: name with conflicting scopes and versions
- missing_scripts and the healthy flag`
}

func describeReadme() string {
	return `Scores README quality from section coverage, length and document structure.

USE WHEN:
- Assessing onboarding friendliness of a repository
- Finding which standard sections a README lacks
- Prioritizing documentation work across projects

INTERPRETING RESULTS:
- quality tiers: excellent >= 80, good >= 60, basic >= 30, poor below, missing without a README
- structure_score rewards headings, list items and code blocks, capped at 100
- sections maps standard section names (installation, usage, api, ...) to presence
- Code block content never counts toward words or headings

METRICS RETURNED:
- present, path, quality tier and 0-100 score
- sections presence map
- word_count, headings, list_items, code_blocks, structure_score`
}

func describeSecurity() string {
	return `Scans source samples for unsafe patterns: injection sinks, committed credentials, weak transport and weak cryptography.

USE WHEN:
- A quick security pass before publishing or deploying
- Finding hardcoded secrets in application code
- Locating eval, raw SQL concatenation or insecure HTTP usage

INTERPRETING RESULTS:
- Severity levels: critical > high > medium > low
- score starts at 100 and deducts 25/15/10/5 per critical/high/medium/low finding
- Findings carry file and line plus a remediation hint
- Pattern-based: treat results as leads, not proof of exploitability

METRICS RETURNED:
- findings: id, type, severity, location, description, remediation
- summary: totals by type and severity
- score: 0-100 with per-severity deductions as components`
}

func describeDebt() string {
	return `Aggregates technical debt: comment markers (TODO, FIXME, HACK), security and performance findings, duplicate dependencies, documentation gaps and missing tests.

USE WHEN:
- Auditing accumulated debt before planning a cleanup
- Ranking repositories by maintenance burden
- Tracking whether debt categories shrink over time

INTERPRETING RESULTS:
- overall_level: critical if any category is critical, else high with >2 high categories, else medium with >3 categories, else low
- maintenance_score: 100 minus 30/20/10/5 per critical/high/medium/low category
- Each category carries the highest severity of its findings
- distinct_lines counts unique flagged lines per file, so overlapping findings are not double counted

METRICS RETURNED:
- categories: name, severity, count and findings per debt class
- markers: every debt comment with location
- maintenance_score with per-category penalty components
- overall_level and distinct_lines`
}
