// Package score – curated vocabularies.
//
// The scorer treats keyword tables as data, not control flow: all lookups go
// through the tables below so new terms can be added without touching scoring
// logic. Matching is case-insensitive substring containment throughout.
package score

import "strings"

// techCategory identifies one of the four stack categories counted by the
// technical diversity criterion.
type techCategory string

const (
	catFrontend techCategory = "Frontend"
	catBackend  techCategory = "Backend"
	catDatabase techCategory = "Database"
	catDevOps   techCategory = "DevOps"
)

// techCategoryKeywords maps each stack category to the lowercase keywords
// that place a technology name in it. A technology matches a category when
// its lowercase name contains any keyword.
var techCategoryKeywords = map[techCategory][]string{
	catFrontend: {
		"react", "vue", "angular", "svelte", "next", "nuxt",
		"javascript", "typescript", "html", "css", "tailwind",
		"jquery", "redux", "webpack", "vite",
	},
	catBackend: {
		"spring", "django", "flask", "fastapi", "express", "node",
		"nest", "rails", "laravel", "golang", "gin", "fiber", "echo",
		"ktor", "java", "kotlin", "python", "php",
	},
	catDatabase: {
		"mysql", "postgres", "postgresql", "mariadb", "mongodb",
		"redis", "oracle", "sqlite", "dynamodb", "elasticsearch",
		"mssql", "cassandra",
	},
	catDevOps: {
		"docker", "kubernetes", "k8s", "aws", "gcp", "azure",
		"jenkins", "terraform", "ansible", "nginx", "linux",
		"github actions", "ci/cd", "prometheus", "grafana",
	},
}

// specificityWords are reflective/technical terms whose presence marks an
// introduction as specific rather than generic. The expression scorer
// requires at least three distinct matches.
var specificityWords = []string{
	"improve", "improving", "optimize", "optimization", "design",
	"architecture", "performance", "refactor", "collaborat",
	"challenge", "solve", "solving", "implement", "migrat",
	"scal", "test", "deploy", "debug", "review", "learn",
}

// errorTerms mark troubleshooting text as describing a concrete failure.
var errorTerms = []string{
	"error", "exception", "bug", "fail", "crash", "timeout",
	"deadlock", "memory leak", "race condition", "null", "panic",
	"stack trace", "out of memory", "oom", "500", "404",
}

// techTerms mark troubleshooting text as technically grounded.
var techTerms = []string{
	"api", "database", "query", "index", "cache", "transaction",
	"thread", "goroutine", "server", "network", "http", "tcp",
	"docker", "kubernetes", "jvm", "gc", "connection pool",
	"migration", "latency", "throughput",
}

// containsAnyTerm reports whether the lowercase form of text contains any of
// the given lowercase terms.
func containsAnyTerm(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// countDistinctTerms returns how many of the given terms occur in text
// (case-insensitive).
func countDistinctTerms(text string, terms []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

// matchCategories returns the distinct stack categories covered by the given
// technology names.
func matchCategories(techs []string) map[techCategory]struct{} {
	hit := make(map[techCategory]struct{}, len(techCategoryKeywords))
	for _, raw := range techs {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		for cat, keywords := range techCategoryKeywords {
			if _, ok := hit[cat]; ok {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(name, kw) {
					hit[cat] = struct{}{}
					break
				}
			}
		}
	}
	return hit
}
