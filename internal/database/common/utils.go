package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regex patterns for SQL parsing
var (
	commentRegex    = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex     = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
	validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

var ErrInvalidIdentifier = errors.New("invalid SQL identifier")

// IDRange is the inclusive [Min, Max] span of a table's id column.
// An empty table yields the zero value.
type IDRange struct {
	Min int64
	Max int64
}

func (r IDRange) Empty() bool {
	return r.Max < r.Min || r.Max == 0
}

func (r IDRange) Len() int64 {
	if r.Empty() {
		return 0
	}
	return r.Max - r.Min + 1
}

func (r IDRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// ValidateIdentifier rejects anything that is not a bare table or column name.
func ValidateIdentifier(name string) error {
	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// ParseSQLStatements splits a script on semicolons that are not inside
// string literals, dropping line comments and empty statements.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	estimatedStmts := strings.Count(sql, ";") + 1
	statements := make([]string, 0, estimatedStmts)

	var currentStatement strings.Builder
	currentStatement.Grow(len(sql) / estimatedStmts)

	flush := func() {
		stmt := strings.TrimSpace(currentStatement.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
		currentStatement.Reset()
	}

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			flush()
		} else {
			currentStatement.WriteRune(char)
		}
	}
	flush()

	return statements
}
