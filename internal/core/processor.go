package core

// Processor is the plugin interface for the import rewrite pipeline
type Processor interface {
	// Name returns the processor name
	Name() string
	// Priority returns the execution priority (lower = earlier)
	Priority() int
	// OnImport is called once per visited import node. A non-empty result
	// replaces the node with the returned nodes, in order.
	OnImport(ctx *RewriteContext, node *ImportNode) ([]*ImportNode, error)
	// OnComplete is called after every import of the file has been visited
	OnComplete(ctx *RewriteContext) error
}
