package engine

import (
	"errors"

	"go.uber.org/zap"

	"reimport/internal/core"
)

// Engine evaluates rewrite rules against import nodes.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	name string
	log  *zap.Logger
}

// NewEngine creates a new engine; a nil logger disables logging
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		name: PluginName,
		log:  log,
	}
}

// WithName returns a copy of the engine that reports errors under name
func (e *Engine) WithName(name string) *Engine {
	c := *e
	c.name = name
	return &c
}

// Name returns the plugin name used in diagnostics
func (e *Engine) Name() string {
	return e.name
}

var defaultEngine = NewEngine(nil)

// Evaluate runs the default engine, see (*Engine).Evaluate
func Evaluate(node *core.ImportNode, opts interface{}) ([]*core.ImportNode, error) {
	return defaultEngine.Evaluate(node, opts)
}

// Evaluate computes the replacement nodes for one import.
//
// A node that already carries the processed marker yields nothing, whatever
// the options. Otherwise the first rule whose pattern matches the import
// source produces one node per replacer; later rules are not looked at.
// A nil result means the import stays as it is.
func (e *Engine) Evaluate(node *core.ImportNode, opts interface{}) ([]*core.ImportNode, error) {
	if node == nil || node.Processed {
		return nil, nil
	}

	paths, err := e.Rewrite(node.Source, opts)
	if err != nil {
		return nil, err
	}
	return BuildReplacements(node, paths), nil
}

// Rewrite returns the new module paths for source, nil when no rule matches
func (e *Engine) Rewrite(source string, opts interface{}) ([]string, error) {
	rules, err := NormalizeOptions(opts)
	if err != nil {
		return nil, e.stamp(err)
	}

	// Iterate through rules in order
	for i, option := range rules {
		rule, err := GetOption(option)
		if err != nil {
			return nil, e.stamp(err)
		}

		pattern, err := GetTestOption(rule.Field(LabelTest))
		if err != nil {
			return nil, e.stamp(err)
		}

		matched, err := pattern.Test(source)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		// Replacers are only checked once their rule has matched
		replacers, err := GetReplacerListOption(rule.Field(LabelReplacer))
		if err != nil {
			return nil, e.stamp(err)
		}

		paths := make([]string, 0, len(replacers))
		for _, replacer := range replacers {
			tmpl, err := GetReplacerOption(replacer)
			if err != nil {
				return nil, e.stamp(err)
			}
			path, err := pattern.Replace(source, tmpl)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}

		e.log.Debug("Rule Matched",
			zap.Int("rule", i),
			zap.Stringer("pattern", pattern),
			zap.String("source", source),
			zap.Strings("outputs", paths),
		)
		return paths, nil
	}

	return nil, nil
}

// stamp sets the engine's plugin name on configuration errors
func (e *Engine) stamp(err error) error {
	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		cfgErr.Plugin = e.name
	}
	return err
}
