package processors

import (
	"go.uber.org/zap"

	"reimport/internal/core"
	"reimport/internal/core/engine"
)

// ReplaceImports processor rewrites import sources with the configured rules
type ReplaceImports struct {
	engine  *engine.Engine
	options interface{}
}

// NewReplaceImports creates a new replace-imports processor.
// options is handed to the engine unchanged for every import it visits.
func NewReplaceImports(options interface{}, log *zap.Logger) *ReplaceImports {
	return &ReplaceImports{
		engine:  engine.NewEngine(log),
		options: options,
	}
}

// Name returns the processor name
func (p *ReplaceImports) Name() string {
	return p.engine.Name()
}

// Priority returns the execution priority
func (p *ReplaceImports) Priority() int {
	return 100
}

// OnImport evaluates the rules against one import
func (p *ReplaceImports) OnImport(ctx *core.RewriteContext, node *core.ImportNode) ([]*core.ImportNode, error) {
	nodes, err := p.engine.Evaluate(node, p.options)
	if err != nil {
		return nil, err
	}

	if len(nodes) > 0 {
		targets := make([]string, len(nodes))
		for i, n := range nodes {
			targets[i] = n.Source
		}
		ctx.Log.Debug("Import Rewritten",
			zap.String("from", node.Source),
			zap.Strings("to", targets),
		)
	}
	return nodes, nil
}

// OnComplete has nothing to flush
func (p *ReplaceImports) OnComplete(ctx *core.RewriteContext) error {
	return nil
}
