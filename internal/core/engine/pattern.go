package engine

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled regular expression with JavaScript semantics:
// ECMAScript character classes (\d, \w and \s are ASCII/ECMA sets) and
// ECMAScript replacement references ("$10" falls back to "$1" followed by
// "0" when there is no group 10).
//
// Test and Replace never keep a match position between calls: every
// application scans the input from its start, so a global pattern behaves
// the same on the first and on the hundredth import it sees.
type Pattern struct {
	source string
	flags  string
	global bool
	re     *regexp2.Regexp
}

// Compile compiles source with the given flags. Supported flags are
// g (replace every match), i, m, s and u.
func Compile(source, flags string) (*Pattern, error) {
	if source == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	global := false
	dotAll := false
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		if seen[f] {
			return nil, fmt.Errorf("duplicate flag %q in /%s/%s", f, source, flags)
		}
		seen[f] = true

		switch f {
		case 'g':
			global = true
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			// ECMAScript mode ignores Singleline, so "." is rewritten below
			dotAll = true
		case 'u':
			opts |= regexp2.Unicode
		default:
			return nil, fmt.Errorf("unsupported flag %q in /%s/%s", f, source, flags)
		}
	}

	expr := source
	if dotAll {
		expr = expandDotAll(source)
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern /%s/%s: %w", source, flags, err)
	}

	return &Pattern{
		source: source,
		flags:  flags,
		global: global,
		re:     re,
	}, nil
}

// expandDotAll replaces every unescaped "." outside a character class
// with [\s\S], which is what the s flag means.
func expandDotAll(source string) string {
	var b strings.Builder
	b.Grow(len(source))

	inClass := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case c == '\\' && i+1 < len(source):
			b.WriteByte(c)
			i++
			b.WriteByte(source[i])
			continue
		case c == '[' && !inClass:
			inClass = true
		case c == ']' && inClass:
			inClass = false
		case c == '.' && !inClass:
			b.WriteString(`[\s\S]`)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// MustCompile is like Compile but panics on error
func MustCompile(source, flags string) *Pattern {
	p, err := Compile(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseLiteral compiles a pattern written as a literal, e.g. `/\.styl$/i`
func ParseLiteral(lit string) (*Pattern, error) {
	if len(lit) < 2 || lit[0] != '/' {
		return nil, fmt.Errorf("pattern literal %q must look like /source/flags", lit)
	}
	end := strings.LastIndexByte(lit, '/')
	if end == 0 {
		return nil, fmt.Errorf("pattern literal %q is not terminated", lit)
	}
	return Compile(lit[1:end], lit[end+1:])
}

// Source returns the pattern text without delimiters
func (p *Pattern) Source() string {
	return p.source
}

// Flags returns the flags the pattern was compiled with
func (p *Pattern) Flags() string {
	return p.flags
}

// Global reports whether Replace substitutes every match
func (p *Pattern) Global() bool {
	return p.global
}

// String returns the literal form /source/flags
func (p *Pattern) String() string {
	return "/" + p.source + "/" + p.flags
}

// Test reports whether the pattern matches anywhere in s
func (p *Pattern) Test(s string) (bool, error) {
	ok, err := p.re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("match %s: %w", p, err)
	}
	return ok, nil
}

// Replace substitutes the first match of the pattern in s (every match for
// a global pattern) with the template's output.
func (p *Pattern) Replace(s string, t Template) (string, error) {
	count := 1
	if p.global {
		count = -1
	}

	var (
		out string
		err error
	)
	switch t.kind {
	case FuncTemplate:
		out, err = p.re.ReplaceFunc(s, func(m regexp2.Match) string {
			return t.fn(m.String())
		}, -1, count)
	default:
		out, err = p.re.Replace(s, t.literal, -1, count)
	}
	if err != nil {
		return "", fmt.Errorf("replace %s: %w", p, err)
	}
	return out, nil
}
