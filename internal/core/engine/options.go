package engine

import "reflect"

// RuleView is a validated rule candidate whose fields can be read by key
type RuleView struct {
	fields map[string]interface{}
}

// Field returns the raw value stored under key, nil when absent
func (r RuleView) Field(key string) interface{} {
	return r.fields[key]
}

// NormalizeOptions turns the raw configuration into a non-empty rule list.
// A configuration that is not a sequence is wrapped into one.
func NormalizeOptions(opts interface{}) ([]interface{}, error) {
	if IsStructurallyEmpty(opts) {
		return nil, newError("", MissingOptions, "")
	}
	if !isSequence(opts) {
		return []interface{}{opts}, nil
	}
	return toSequence(opts), nil
}

// GetOption checks that a rule candidate is a plain record: a map with
// string keys or a Rule, never a pattern nor a sequence.
func GetOption(option interface{}) (RuleView, error) {
	switch o := option.(type) {
	case Rule:
		return ruleFields(o), nil
	case *Rule:
		if o != nil {
			return ruleFields(*o), nil
		}
	case map[string]interface{}:
		return RuleView{fields: o}, nil
	case *Pattern:
		return RuleView{}, newError("", InvalidRuleShape, "")
	}

	if option != nil {
		rv := reflect.ValueOf(option)
		if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
			fields := make(map[string]interface{}, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				fields[iter.Key().String()] = iter.Value().Interface()
			}
			return RuleView{fields: fields}, nil
		}
	}
	return RuleView{}, newError("", InvalidRuleShape, "")
}

func ruleFields(r Rule) RuleView {
	return RuleView{fields: map[string]interface{}{
		LabelTest:     r.Test,
		LabelReplacer: r.Replacer,
	}}
}

// GetTestOption validates the "test" field of a rule
func GetTestOption(option interface{}) (*Pattern, error) {
	p, ok := option.(*Pattern)
	if ok && p != nil {
		return p, nil
	}
	if IsStructurallyEmpty(option) {
		return nil, newError("", MissingPattern, LabelTest)
	}
	return nil, newError("", PatternTypeError, LabelTest)
}

// GetReplacerListOption validates the "replacer" field of a rule and
// returns it as a list. A function is accepted as is; anything else must
// be non-empty.
func GetReplacerListOption(option interface{}) ([]interface{}, error) {
	if isFunc(option) {
		return []interface{}{option}, nil
	}
	if IsStructurallyEmpty(option) {
		return nil, newError("", MissingReplacer, LabelReplacer)
	}
	if isSequence(option) {
		return toSequence(option), nil
	}
	return []interface{}{option}, nil
}

// GetReplacerOption validates one element of a replacer list
func GetReplacerOption(option interface{}) (Template, error) {
	switch o := option.(type) {
	case string:
		return Literal(o), nil
	case Template:
		if o.kind == FuncTemplate && o.fn == nil {
			break
		}
		return o, nil
	case func(string) string:
		if o != nil {
			return Func(o), nil
		}
	case ReplacerFunc:
		if o != nil {
			return Func(o), nil
		}
	}

	if option != nil {
		rv := reflect.ValueOf(option)
		fnType := reflect.TypeOf(func(string) string { return "" })
		switch {
		case rv.Kind() == reflect.String:
			return Literal(rv.String()), nil
		case rv.Kind() == reflect.Func && !rv.IsNil() && rv.Type().ConvertibleTo(fnType):
			fn := rv.Convert(fnType).Interface().(func(string) string)
			return Func(fn), nil
		}
	}
	return Template{}, newError("", ReplacerTypeError, LabelReplacer)
}

// ValidateRules checks every rule and every replacer up front, without
// matching. It is meant for linting a rule set; Evaluate itself validates
// replacers lazily, only for the rule that matches.
func ValidateRules(opts interface{}) error {
	rules, err := NormalizeOptions(opts)
	if err != nil {
		return err
	}
	for _, option := range rules {
		rule, err := GetOption(option)
		if err != nil {
			return err
		}
		if _, err := GetTestOption(rule.Field(LabelTest)); err != nil {
			return err
		}
		replacers, err := GetReplacerListOption(rule.Field(LabelReplacer))
		if err != nil {
			return err
		}
		for _, r := range replacers {
			if _, err := GetReplacerOption(r); err != nil {
				return err
			}
		}
	}
	return nil
}
