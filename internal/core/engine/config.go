package engine

// PluginName prefixes every diagnostic raised by the engine
const PluginName = "reimport"

// Option labels quoted in error messages; they are also the record keys
const (
	LabelTest     = "test"
	LabelReplacer = "replacer"
)

// Rule is the typed form of one rewrite rule.
//
// Test must hold a *Pattern. Replacer holds a string, a func(string) string,
// a Template, or a slice of those. Map values with "test" and "replacer"
// keys are accepted interchangeably with Rule.
type Rule struct {
	Test     interface{} `mapstructure:"test" yaml:"test" json:"test"`
	Replacer interface{} `mapstructure:"replacer" yaml:"replacer" json:"replacer"`
}

// NewRule builds a Rule from a pattern and its replacers
func NewRule(test *Pattern, replacers ...interface{}) Rule {
	r := Rule{Test: test}
	switch len(replacers) {
	case 0:
	case 1:
		r.Replacer = replacers[0]
	default:
		r.Replacer = replacers
	}
	return r
}
