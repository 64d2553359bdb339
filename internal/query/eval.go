package query

import "strings"

// Evaluate reports whether haystack satisfies tree. An invalid regex (which
// Parse accepts, since it doesn't compile regexes; Validate reports it) is
// treated as a non-match rather than a panic.
func Evaluate(tree Node, haystack string) bool {
	switch n := tree.(type) {
	case Literal:
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(n.Text))
	case Regex:
		re, err := compile(n.Pattern, n.Flags)
		if err != nil {
			return false
		}
		return re.MatchString(haystack)
	case And:
		return Evaluate(n.Left, haystack) && Evaluate(n.Right, haystack)
	case Or:
		return Evaluate(n.Left, haystack) || Evaluate(n.Right, haystack)
	case Not:
		return !Evaluate(n.Operand, haystack)
	default:
		return false
	}
}

// Validate compiles every regex literal in tree against the shared cache so
// a malformed pattern surfaces as an error before a search runs, rather
// than silently evaluating to false on every message.
func Validate(tree Node) error {
	switch n := tree.(type) {
	case Regex:
		_, err := compile(n.Pattern, n.Flags)
		return err
	case And:
		if err := Validate(n.Left); err != nil {
			return err
		}
		return Validate(n.Right)
	case Or:
		if err := Validate(n.Left); err != nil {
			return err
		}
		return Validate(n.Right)
	case Not:
		return Validate(n.Operand)
	default:
		return nil
	}
}
