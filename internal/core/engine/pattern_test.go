package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	testCases := []struct {
		lit     string
		source  string
		flags   string
		global  bool
		wantErr bool
	}{
		{`/\/stylus\//`, `\/stylus\/`, "", false, false},
		{`/\.styl/i`, `\.styl`, "i", false, false},
		{`/.+/g`, `.+`, "g", true, false},
		{`/a/gims`, `a`, "gims", true, false},
		{`abc`, "", "", false, true},
		{`/abc`, "", "", false, true},
		{`//`, "", "", false, true},
		{`/a/x`, "", "", false, true},
		{`/a/gg`, "", "", false, true},
		{`/(/`, "", "", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.lit, func(t *testing.T) {
			p, err := ParseLiteral(tc.lit)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.source, p.Source())
			assert.Equal(t, tc.flags, p.Flags())
			assert.Equal(t, tc.global, p.Global())
			assert.Equal(t, tc.lit, p.String())
		})
	}
}

func TestPatternTestHasNoState(t *testing.T) {
	p := MustCompile("a", "g")
	for i := 0; i < 3; i++ {
		ok, err := p.Test("a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestPatternReplace(t *testing.T) {
	testCases := []struct {
		name   string
		p      *Pattern
		input  string
		tmpl   Template
		output string
	}{
		{"first only", MustCompile("o", ""), "foo", Literal("0"), "f0o"},
		{"global", MustCompile("o", "g"), "foo", Literal("0"), "f00"},
		{"whole match", MustCompile(`\.styl$`, ""), "a.styl", Literal("$&?x"), "a.styl?x"},
		{"dollar escape", MustCompile("a", ""), "a", Literal("$$"), "$"},
		{"ignore case", MustCompile("FOO", "i"), "foo/bar", Literal("baz"), "baz/bar"},
		{"func gets match", MustCompile(`[a-z]+`, "g"), "ab/cd", Func(func(m string) string { return "<" + m + ">" }), "<ab>/<cd>"},
		{"no match", MustCompile("zzz", ""), "foo", Literal("x"), "foo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.p.Replace(tc.input, tc.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tc.output, out)
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("", "") })
	assert.Panics(t, func() { MustCompile("a", "q") })
}

func TestPatternUsesJavaScriptSemantics(t *testing.T) {
	// "$10" without a tenth group is group 1 followed by "0"
	out, err := MustCompile(`(a)`, "").Replace("abc", Literal("$10"))
	require.NoError(t, err)
	assert.Equal(t, "a0bc", out)

	// \d only covers ASCII digits
	ok, err := MustCompile(`\d+`, "").Test("٣")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = MustCompile(`^\d+$`, "").Test("42")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPatternDotAllFlag(t *testing.T) {
	ok, err := MustCompile(`a.b`, "").Test("a\nb")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = MustCompile(`a.b`, "s").Test("a\nb")
	require.NoError(t, err)
	assert.True(t, ok)

	// escaped dots and dots in classes stay literal
	ok, err = MustCompile(`a\.[.]b`, "s").Test("a\n\nb")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpandDotAll(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{`.`, `[\s\S]`},
		{`a.b`, `a[\s\S]b`},
		{`\.`, `\.`},
		{`[.]`, `[.]`},
		{`[\].].`, `[\].][\s\S]`},
		{`\\.`, `\\[\s\S]`},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, expandDotAll(tc.in))
		})
	}
}
