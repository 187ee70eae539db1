package rls

import (
	"regexp"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// Compose merges an independently built WHERE clause with an RLS predicate.
// The RLS clause's placeholders, numbered from $1, are shifted by
// len(baseArgs) so the returned argument list is baseArgs followed by the
// RLS arguments with placeholder numbers matching 1:1. The WHERE keyword is
// materialized exactly once, and the RLS predicate is always ANDed. A base
// carrying a top-level OR is grouped in parentheses first; without that, AND
// binding tighter than OR would let a disjunct escape the predicate, so a
// permissive base clause can never defeat a denial.
func Compose(baseWhere string, baseArgs []any, res PredicateResult) (string, []any) {
	base := strings.TrimSpace(baseWhere)
	bare := base
	if hasWherePrefix(base) {
		bare = strings.TrimSpace(base[len("WHERE"):])
	}

	if res.Clause == "" {
		if bare == "" {
			return "", baseArgs
		}
		return "WHERE " + bare, baseArgs
	}

	shifted := shiftPlaceholders(res.Clause, len(baseArgs))
	args := make([]any, 0, len(baseArgs)+len(res.Args))
	args = append(args, baseArgs...)
	args = append(args, res.Args...)

	if bare == "" {
		return "WHERE " + shifted, args
	}
	if hasTopLevelOr(bare) {
		bare = "(" + bare + ")"
	}
	return "WHERE " + bare + " AND " + shifted, args
}

// hasTopLevelOr reports whether clause contains an OR operator outside
// parentheses and string literals.
func hasTopLevelOr(clause string) bool {
	depth := 0
	inString := false
	for i := 0; i < len(clause); i++ {
		c := clause[i]
		if inString {
			if c == '\'' {
				inString = false
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case 'o', 'O':
			if depth > 0 {
				continue
			}
			if i+1 < len(clause) && (clause[i+1] == 'r' || clause[i+1] == 'R') &&
				(i == 0 || !isIdentByte(clause[i-1])) &&
				(i+2 >= len(clause) || !isIdentByte(clause[i+2])) {
				return true
			}
		}
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func hasWherePrefix(clause string) bool {
	if len(clause) < 5 || !strings.EqualFold(clause[:5], "WHERE") {
		return false
	}
	return len(clause) == 5 || clause[5] == ' ' || clause[5] == '\t'
}

func shiftPlaceholders(clause string, by int) string {
	if by == 0 {
		return clause
	}
	return placeholderPattern.ReplaceAllStringFunc(clause, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil {
			return m
		}
		return "$" + strconv.Itoa(n+by)
	})
}
