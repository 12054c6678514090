package engine

import "reimport/internal/core"

// BuildReplacements creates one processed import per path, each carrying
// the original's specifiers and host statement. The original is not
// modified. No paths means no replacement.
func BuildReplacements(original *core.ImportNode, paths []string) []*core.ImportNode {
	if len(paths) == 0 {
		return nil
	}

	nodes := make([]*core.ImportNode, 0, len(paths))
	for _, path := range paths {
		nodes = append(nodes, &core.ImportNode{
			Source:     path,
			Specifiers: original.CloneSpecifiers(),
			Processed:  true,
			Host:       original.Host,
		})
	}
	return nodes
}
