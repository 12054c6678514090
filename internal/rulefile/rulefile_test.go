package rulefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reimport/internal/core"
	"reimport/internal/core/engine"
)

const yamlRules = `
- test: !regexp '/\/stylus\//'
  replacer: /sass/
- test: !regexp '/\.styl/i'
  replacer:
    - $&?theme-red
    - $&?theme-blue
`

const jsonDoc = `{
  "name": "web",
  "plugins": {
    "reimport": [
      {"test": {"$regexp": "\\/stylus\\/"}, "replacer": "/sass/"},
      {"test": {"$regexp": "\\.styl", "flags": "i"}, "replacer": ["$&?theme-red"]}
    ]
  }
}`

func TestParseYAML(t *testing.T) {
	rules, err := ParseYAML([]byte(yamlRules), "")
	require.NoError(t, err)

	list, ok := rules.([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)

	first := list[0].(map[string]interface{})
	p, ok := first["test"].(*engine.Pattern)
	require.True(t, ok)
	assert.Equal(t, `/\/stylus\//`, p.String())
	assert.Equal(t, "/sass/", first["replacer"])

	second := list[1].(map[string]interface{})
	assert.Equal(t, "i", second["test"].(*engine.Pattern).Flags())
	assert.Equal(t, []interface{}{"$&?theme-red", "$&?theme-blue"}, second["replacer"])
}

func TestParseYAMLFeedsEngine(t *testing.T) {
	rules, err := ParseYAML([]byte(yamlRules), "")
	require.NoError(t, err)

	nodes, err := engine.Evaluate(&core.ImportNode{Source: "../stylus/common.styl"}, rules)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "../sass/common.styl", nodes[0].Source)

	nodes, err = engine.Evaluate(&core.ImportNode{Source: "./theme.styl"}, rules)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "./theme.styl?theme-red", nodes[0].Source)
	assert.Equal(t, "./theme.styl?theme-blue", nodes[1].Source)
}

func TestUntaggedPatternStaysString(t *testing.T) {
	rules, err := ParseYAML([]byte("test: '/stylus/'\nreplacer: x\n"), "")
	require.NoError(t, err)

	_, err = engine.Evaluate(&core.ImportNode{Source: "stylus"}, rules)
	assert.ErrorIs(t, err, engine.ErrPatternType)
}

func TestParseYAMLScalarsKeepTheirType(t *testing.T) {
	rules, err := ParseYAML([]byte("- true\n- 123\n- []\n- {}\n- ~\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{true, 123, []interface{}{}, map[string]interface{}{}, nil}, rules)
}

func TestParseYAMLSelector(t *testing.T) {
	doc := "tool:\n  reimport:\n    test: !regexp /a/\n    replacer: b\n"
	rules, err := ParseYAML([]byte(doc), "tool.reimport")
	require.NoError(t, err)
	_, ok := rules.(map[string]interface{})["test"].(*engine.Pattern)
	assert.True(t, ok)

	_, err = ParseYAML([]byte(doc), "tool.missing")
	assert.ErrorContains(t, err, "matched nothing")

	_, err = ParseYAML([]byte(doc), "tool.reimport.test.deeper")
	assert.ErrorContains(t, err, "not inside a mapping")
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML([]byte("test: !regexp 'no-slashes'\n"), "")
	assert.ErrorContains(t, err, "line 1")

	_, err = ParseYAML([]byte("test: [unclosed\n"), "")
	assert.ErrorContains(t, err, "invalid YAML")
}

func TestParseYAMLEmpty(t *testing.T) {
	rules, err := ParseYAML(nil, "")
	require.NoError(t, err)
	assert.Nil(t, rules)

	_, err = engine.Evaluate(&core.ImportNode{Source: "x"}, rules)
	assert.ErrorIs(t, err, engine.ErrMissingOptions)
}

func TestParseJSONWithSelector(t *testing.T) {
	rules, err := ParseJSON([]byte(jsonDoc), "plugins.reimport")
	require.NoError(t, err)

	nodes, err := engine.Evaluate(&core.ImportNode{Source: "./a.STYL"}, rules)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "./a.STYL?theme-red", nodes[0].Source)

	_, err = ParseJSON([]byte(jsonDoc), "plugins.other")
	assert.ErrorContains(t, err, "matched nothing")
}

func TestParseJSONPatternErrors(t *testing.T) {
	testCases := map[string]string{
		"non-string source": `{"test": {"$regexp": 1}}`,
		"non-string flags":  `{"test": {"$regexp": "a", "flags": 1}}`,
		"bad flag":          `{"test": {"$regexp": "a", "flags": "z"}}`,
		"bad pattern":       `{"test": {"$regexp": "("}}`,
		"invalid JSON":      `{"test": `,
	}
	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(doc), "")
			assert.Error(t, err)
		})
	}
}

func TestParseJSONPlainValuesReachEngine(t *testing.T) {
	rules, err := ParseJSON([]byte(`[{"test": "plain", "replacer": "x"}]`), "")
	require.NoError(t, err)

	_, err = engine.Evaluate(&core.ImportNode{Source: "plain"}, rules)
	assert.ErrorIs(t, err, engine.ErrPatternType)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRules), 0o644))
	rules, err := Load(yamlPath, "")
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	jsonPath := filepath.Join(dir, "tool.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonDoc), 0o644))
	rules, err = Load(jsonPath, "plugins.reimport")
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"), "")
	assert.ErrorContains(t, err, "failed to read rules file")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("a/b.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("rules.yml"))
	assert.Equal(t, FormatYAML, DetectFormat("rules"))

	_, err := Parse(nil, Format("toml"), "")
	assert.Error(t, err)
}
