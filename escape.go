package sqlgen

import "strings"

// EscapeComment rewrites comment delimiters inside s so a value echoed in a
// debug comment can never terminate the comment early or smuggle executable
// SQL through the annotation. The substitution is part of the observable
// contract of debug mode.
func EscapeComment(s string) string {
	s = strings.ReplaceAll(s, "/*", `\slash \star`)
	s = strings.ReplaceAll(s, "*/", `\star \slash`)
	s = strings.ReplaceAll(s, "--", `\minus \minus`)
	return s
}

// EscapeString doubles single quotes for embedding in a string literal.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeLike escapes s for use in a LIKE pattern: quotes are doubled and
// the escape character, "%" and "_" are prefixed with escapeChar.
func EscapeLike(s string, escapeChar byte) string {
	res := EscapeString(s)
	esc := string(escapeChar)
	res = strings.ReplaceAll(res, esc, esc+esc)
	res = strings.ReplaceAll(res, "%", esc+"%")
	res = strings.ReplaceAll(res, "_", esc+"_")
	return res
}

// ToLiteral returns s as a quoted SQL string literal.
func ToLiteral(s string) string {
	return "'" + EscapeString(s) + "'"
}

// chunk splits n placeholder slots into groups of at most size, returning
// the size of each group. The last group may be smaller.
func chunk(n, size int) []int {
	var res []int
	for n > 0 {
		c := min(n, size)
		res = append(res, c)
		n -= c
	}
	return res
}
