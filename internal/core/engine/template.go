package engine

// ReplacerFunc computes the replacement for one matched substring
type ReplacerFunc func(match string) string

// TemplateKind tags the variant held by a Template
type TemplateKind int

const (
	// LiteralTemplate is a replacement string that may reference capture groups
	LiteralTemplate TemplateKind = iota
	// FuncTemplate is a function of the matched substring
	FuncTemplate
)

// Template is a validated replacer: either a literal or a function
type Template struct {
	kind    TemplateKind
	literal string
	fn      ReplacerFunc
}

// Literal returns a string template. "$&", "$1", "${name}", "$`", "$'" and
// "$$" are expanded against the match.
func Literal(s string) Template {
	return Template{kind: LiteralTemplate, literal: s}
}

// Func returns a function template
func Func(fn func(match string) string) Template {
	return Template{kind: FuncTemplate, fn: fn}
}

// Kind returns the template variant
func (t Template) Kind() TemplateKind {
	return t.kind
}

// String returns the literal text, or "<func>" for function templates
func (t Template) String() string {
	if t.kind == FuncTemplate {
		return "<func>"
	}
	return t.literal
}

// isZero reports a Template that was never built through Literal or Func
func (t Template) isZero() bool {
	return t.kind == LiteralTemplate && t.literal == "" && t.fn == nil
}
