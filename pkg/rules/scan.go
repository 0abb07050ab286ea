package rules

import (
	"regexp"

	"assay/pkg/models"
)

var (
	jsExts     = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue", ".svelte", ".html"}
	scriptExts = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".py", ".rb", ".php"}
)

func defaultSecurity() []ScanRule {
	return []ScanRule{
		{
			Type:        "eval-usage",
			Pattern:     regexp.MustCompile(`\beval\s*\(`),
			Severity:    models.SeverityCritical,
			Description: "dynamic code evaluation",
			Remediation: "replace eval with explicit parsing or dispatch",
			Exts:        scriptExts,
		},
		{
			Type:        "html-injection",
			Pattern:     regexp.MustCompile(`(?:innerHTML|outerHTML)\s*=|dangerouslySetInnerHTML`),
			Severity:    models.SeverityHigh,
			Description: "direct HTML injection sink",
			Remediation: "sanitize markup or use text node APIs",
			Exts:        jsExts,
		},
		{
			Type:        "new-function",
			Pattern:     regexp.MustCompile(`new\s+Function\s*\(`),
			Severity:    models.SeverityHigh,
			Description: "code construction from strings",
			Remediation: "avoid runtime code generation",
			Exts:        jsExts,
		},
		{
			Type:        "document-write",
			Pattern:     regexp.MustCompile(`document\.write\s*\(`),
			Severity:    models.SeverityMedium,
			Description: "document.write blocks parsing and enables injection",
			Remediation: "use DOM insertion APIs",
			Exts:        jsExts,
		},
		{
			Type:        "hardcoded-secret",
			Pattern:     regexp.MustCompile(`(?i)(api[_-]?key|secret|passwd|password|auth[_-]?token)\s*[:=]\s*["'][A-Za-z0-9_\-/+]{8,}["']`),
			Allow:       regexp.MustCompile(`(?i)(example|sample|placeholder|changeme|xxx+|your[_-])`),
			Severity:    models.SeverityCritical,
			Description: "credential committed to the repository",
			Remediation: "move secrets to environment or a vault",
		},
		{
			Type:        "insecure-http",
			Pattern:     regexp.MustCompile(`["']http://[^"']+["']`),
			Allow:       regexp.MustCompile(`localhost|127\.0\.0\.1|0\.0\.0\.0|example\.(?:com|org)|\.local\b|schemas?\.|w3\.org|xmlns`),
			Severity:    models.SeverityMedium,
			Description: "unencrypted HTTP endpoint",
			Remediation: "use https",
		},
		{
			Type:        "tls-verify-disabled",
			Pattern:     regexp.MustCompile(`verify\s*=\s*False|InsecureSkipVerify\s*:\s*true|rejectUnauthorized\s*:\s*false`),
			Severity:    models.SeverityCritical,
			Description: "TLS certificate verification disabled",
			Remediation: "re-enable certificate verification",
		},
		{
			Type:        "weak-hash",
			Pattern:     regexp.MustCompile(`(?i)\b(?:md5|sha1)\s*\(|crypto/md5|crypto/sha1|createHash\(["'](?:md5|sha1)["']\)`),
			Severity:    models.SeverityMedium,
			Description: "weak hash algorithm",
			Remediation: "use SHA-256 or stronger",
		},
		{
			Type:        "sql-concat",
			Pattern:     regexp.MustCompile(`(?i)["'](?:SELECT|INSERT|UPDATE|DELETE)\b[^"']*["']\s*\+`),
			Severity:    models.SeverityHigh,
			Description: "SQL assembled by string concatenation",
			Remediation: "use parameterized queries",
		},
		{
			Type:        "command-exec",
			Pattern:     regexp.MustCompile(`child_process|os\.system\s*\(|subprocess\.(?:call|Popen|run)\s*\([^)]*shell\s*=\s*True`),
			Severity:    models.SeverityMedium,
			Description: "shell command execution",
			Remediation: "validate inputs, avoid shell interpolation",
			Exts:        scriptExts,
		},
	}
}

func defaultPerformance() []ScanRule {
	return []ScanRule{
		{
			Type:        "sync-io",
			Pattern:     regexp.MustCompile(`\b(?:readFileSync|writeFileSync|readdirSync|execSync)\s*\(`),
			Severity:    models.SeverityHigh,
			Description: "synchronous blocking I/O",
			Remediation: "use the async variants",
			Exts:        jsExts,
		},
		{
			Type:        "sync-xhr",
			Pattern:     regexp.MustCompile(`async\s*:\s*false`),
			Severity:    models.SeverityMedium,
			Description: "synchronous network request",
			Remediation: "use asynchronous requests",
			Exts:        jsExts,
		},
		{
			Type:        "await-in-loop",
			Pattern:     regexp.MustCompile(`for\s*\([^)]*\)\s*{?\s*await\b|\.forEach\s*\(\s*async`),
			Severity:    models.SeverityMedium,
			Description: "sequential awaits inside a loop",
			Remediation: "batch with Promise.all where order permits",
			Exts:        jsExts,
		},
		{
			Type:        "busy-loop",
			Pattern:     regexp.MustCompile(`while\s*\(\s*(?:true|1)\s*\)`),
			Severity:    models.SeverityLow,
			Description: "unbounded busy loop",
			Remediation: "add backoff or a blocking wait",
		},
		{
			Type:        "select-star",
			Pattern:     regexp.MustCompile(`(?i)SELECT\s+\*\s+FROM`),
			Severity:    models.SeverityLow,
			Description: "unbounded column selection",
			Remediation: "select only needed columns",
		},
		{
			Type:        "unbounded-read",
			Pattern:     regexp.MustCompile(`io\.ReadAll\s*\(|ioutil\.ReadAll\s*\(`),
			Severity:    models.SeverityLow,
			Description: "whole-stream read without a limit",
			Remediation: "bound reads with io.LimitReader",
			Exts:        []string{".go"},
		},
		{
			Type:        "tight-poll",
			Pattern:     regexp.MustCompile(`setInterval\s*\([^,]+,\s*(?:[0-9]|[1-9][0-9])\s*\)`),
			Severity:    models.SeverityMedium,
			Description: "sub-100ms polling interval",
			Remediation: "poll less often or push events",
			Exts:        jsExts,
		},
		{
			Type:        "full-lodash-import",
			Pattern:     regexp.MustCompile(`from\s+["']lodash["']|require\(\s*["']lodash["']\s*\)`),
			Severity:    models.SeverityLow,
			Description: "whole-library import inflates bundles",
			Remediation: "import individual lodash modules",
			Exts:        jsExts,
		},
	}
}
