package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	lineCommentRegex  = regexp.MustCompile(`--.*`)
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Statements that may start a read-only query
	allowedPrefixes = []string{"select", "with", "explain"}

	// PRAGMA forms that only read
	allowedPragmas = []string{
		"pragma table_info(",
		"pragma index_list(",
		"pragma index_info(",
		"pragma foreign_key_list(",
		"pragma foreign_key_check",
		"pragma schema_version",
		"pragma user_version",
		"pragma database_list",
		"pragma compile_options",
	}

	// Whole words that indicate a write anywhere in the statement
	// replace is left out: replace() is a string function, and a REPLACE
	// statement is already caught by the prefix check
	forbiddenKeywords = []string{
		"insert", "update", "delete", "drop", "create", "alter",
		"truncate", "merge", "upsert",
		"attach", "detach", "vacuum", "reindex",
		"begin", "commit", "rollback", "savepoint",
	}
	forbiddenRegexes = compileKeywords(forbiddenKeywords)
)

func compileKeywords(keywords []string) map[string]*regexp.Regexp {
	compiled := make(map[string]*regexp.Regexp, len(keywords))
	for _, keyword := range keywords {
		compiled[keyword] = regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	}
	return compiled
}

// newQueryCommand creates the 'query' command for ad-hoc read-only SQL
// Usage: mlog query --sql "SELECT ..."
func newQueryCommand(a *app) *cobra.Command {
	var sqlQuery string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a read-only SQL query against the log database",
		Long: `Run a read-only SQL query against the log database and print the rows as JSON.

Tables: artist(name), release(id, name, artistname, year), log(id, release_id, date).
Dates are stored as RFC 3339 text, so date(log.date) gives the calendar day.

Only SELECT, WITH, EXPLAIN and read-only PRAGMA statements are accepted.

Examples:
  mlog query --sql "SELECT artistname, COUNT(*) AS listens FROM log JOIN release ON release.id = log.release_id GROUP BY artistname"
  mlog query --sql "SELECT substr(date, 1, 7) AS month, COUNT(*) AS listens FROM log GROUP BY month"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handler.Query(sqlQuery)
		},
	}

	cmd.Flags().StringVarP(&sqlQuery, "sql", "s", "", "SQL query to execute (required)")
	cmd.MarkFlagRequired("sql")

	return cmd
}

// ValidateReadOnlyQuery ensures the SQL query is a single read-only statement
func ValidateReadOnlyQuery(query string) error {
	normalized := strings.ToLower(query)
	normalized = lineCommentRegex.ReplaceAllString(normalized, "")
	normalized = blockCommentRegex.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(normalized)

	if normalized == "" {
		return fmt.Errorf("empty query")
	}

	if strings.HasPrefix(normalized, "pragma") {
		if !hasAnyPrefix(normalized, allowedPragmas) {
			return fmt.Errorf("PRAGMA statement not allowed. Only read-only PRAGMA statements are permitted")
		}
	} else if !hasAnyPrefix(normalized, allowedPrefixes) {
		return fmt.Errorf("only read-only queries are allowed (SELECT, WITH, EXPLAIN, and read-only PRAGMA)")
	}

	for _, keyword := range forbiddenKeywords {
		if forbiddenRegexes[keyword].MatchString(normalized) {
			return fmt.Errorf("forbidden keyword '%s' detected. Only read-only operations are allowed", strings.ToUpper(keyword))
		}
	}

	// One statement plus an optional trailing semicolon
	if len(strings.Split(normalized, ";")) > 2 {
		return fmt.Errorf("multiple statements not allowed. Please execute one query at a time")
	}

	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
