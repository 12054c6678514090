package core

import (
	"errors"
	"sort"
)

// DefaultMaxReplacements bounds how many times the nodes grown from one
// import may be replaced. A fan-out into any number of nodes costs one.
const DefaultMaxReplacements = 1000

// ErrReplaceBudget is returned when replacements keep being replaced again
var ErrReplaceBudget = errors.New("import replacement budget exhausted")

// Pipeline holds a collection of processors and manages their execution
type Pipeline struct {
	processors      []Processor
	maxReplacements int
}

// NewPipeline creates a new pipeline instance
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors:      make([]Processor, 0),
		maxReplacements: DefaultMaxReplacements,
	}
}

// AddProcessor adds a processor to the pipeline
func (p *Pipeline) AddProcessor(processor Processor) {
	p.processors = append(p.processors, processor)
}

// SetMaxReplacements changes the replacement budget of a single import;
// n <= 0 restores the default
func (p *Pipeline) SetMaxReplacements(n int) {
	if n <= 0 {
		n = DefaultMaxReplacements
	}
	p.maxReplacements = n
}

// Processors returns the processors in execution order
func (p *Pipeline) Processors() []Processor {
	// Create a copy of processors to avoid modifying the original slice
	sortedProcessors := make([]Processor, len(p.processors))
	copy(sortedProcessors, p.processors)

	// Sort processors by priority (lower number = higher priority = runs earlier)
	sort.SliceStable(sortedProcessors, func(i, j int) bool {
		return sortedProcessors[i].Priority() < sortedProcessors[j].Priority()
	})
	return sortedProcessors
}

// ExecuteImport runs all processors' OnImport methods on one import node.
//
// When a processor replaces the node, the remaining processors are skipped
// for it and every replacement is visited again from the start, the same way
// a tree walker re-queues freshly inserted nodes. The returned slice is the
// final sequence of nodes that stands where the original was; a result of
// exactly []*ImportNode{node} means the node was left untouched.
func (p *Pipeline) ExecuteImport(ctx *RewriteContext, node *ImportNode) ([]*ImportNode, error) {
	budget := p.maxReplacements
	return p.visit(ctx, p.Processors(), node, &budget)
}

func (p *Pipeline) visit(ctx *RewriteContext, processors []Processor, node *ImportNode, budget *int) ([]*ImportNode, error) {
	ctx.Incr(MetaVisited, 1)

	for _, processor := range processors {
		replacements, err := processor.OnImport(ctx, node)
		if err != nil {
			return nil, err
		}
		if len(replacements) == 0 {
			continue
		}

		if *budget <= 0 {
			return nil, ErrReplaceBudget
		}
		*budget--
		ctx.Incr(MetaReplaced, 1)
		result := make([]*ImportNode, 0, len(replacements))
		for _, r := range replacements {
			nodes, err := p.visit(ctx, processors, r, budget)
			if err != nil {
				return nil, err
			}
			result = append(result, nodes...)
		}
		return result, nil
	}

	return []*ImportNode{node}, nil
}

// ExecuteComplete executes all processors' OnComplete methods in priority order
func (p *Pipeline) ExecuteComplete(ctx *RewriteContext) error {
	for _, processor := range p.Processors() {
		if err := processor.OnComplete(ctx); err != nil {
			return err
		}
	}

	return nil
}
