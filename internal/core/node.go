package core

// Specifier is one binding introduced by an import statement
type Specifier struct {
	// Imported is the name exported by the loaded module
	Imported string
	// Local is the name bound in the importing file
	Local string
}

// ImportNode is the host-neutral view of one import statement
type ImportNode struct {
	// Source is the module path string of the import
	Source string
	// Specifiers are the bindings of the statement, in declaration order
	Specifiers []Specifier
	// Processed marks nodes synthesized by a rewrite; they are never evaluated again
	Processed bool
	// Host carries the host's own statement so it can rebuild the tree
	Host interface{}
}

// CloneSpecifiers returns a copy of the node's specifiers
func (n *ImportNode) CloneSpecifiers() []Specifier {
	if n.Specifiers == nil {
		return nil
	}
	specs := make([]Specifier, len(n.Specifiers))
	copy(specs, n.Specifiers)
	return specs
}
