// Package starlark hosts the import rewrite pipeline on Starlark files.
//
// Each load statement is handed to the pipeline as a core.ImportNode whose
// specifiers are the statement's (exported, local) name pairs. Replacement
// nodes are turned back into load statements at the original position, in
// order, and the file is printed with buildtools.
package starlark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bazelbuild/buildtools/build"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"reimport/internal/core"
)

// Change records one rewritten load statement
type Change struct {
	Line int      `json:"line"`
	From string   `json:"from"`
	To   []string `json:"to"`
}

// Result represents the outcome of rewriting one file
type Result struct {
	// Path is the file path
	Path string
	// Original is the original content
	Original []byte
	// Output is the rewritten and formatted content
	Output []byte
	// Changes lists the load statements that were replaced
	Changes []Change
	// Visited counts import nodes seen by the pipeline, replacements included
	Visited int
}

// Changed returns true if any load statement was rewritten
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// Diff returns a unified diff between the original and the output
func (r *Result) Diff() (string, error) {
	if bytes.Equal(r.Original, r.Output) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(r.Original)),
		B:        difflib.SplitLines(string(r.Output)),
		FromFile: "a/" + r.Path,
		ToFile:   "b/" + r.Path,
		Context:  3,
	})
}

// Rewriter drives a pipeline over the load statements of Starlark files
type Rewriter struct {
	pipeline *core.Pipeline
	log      *zap.Logger
}

// NewRewriter creates a rewriter; a nil logger disables logging
func NewRewriter(pipeline *core.Pipeline, log *zap.Logger) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{
		pipeline: pipeline,
		log:      log,
	}
}

// RewriteSource parses src, rewrites its load statements and formats the result.
// Any pipeline error aborts the whole file.
func (r *Rewriter) RewriteSource(ctx context.Context, runID, path string, src []byte) (*Result, error) {
	f, err := build.ParseDefault(path, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rctx := core.NewRewriteContext(ctx, r.log.With(
		zap.String("run_id", runID),
		zap.String("file", path),
	))
	rctx.RunID = runID
	rctx.File = path

	changes, err := r.RewriteFile(rctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	output := src
	if len(changes) > 0 {
		output = build.Format(f)
	}

	return &Result{
		Path:     path,
		Original: src,
		Output:   output,
		Changes:  changes,
		Visited:  rctx.Count(core.MetaVisited),
	}, nil
}

// RewriteFile rewrites the load statements of a parsed file in place.
// f is only modified when every statement was processed without error.
func (r *Rewriter) RewriteFile(ctx *core.RewriteContext, f *build.File) ([]Change, error) {
	stmts := make([]build.Expr, 0, len(f.Stmt))
	var changes []Change

	for _, stmt := range f.Stmt {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		load, ok := stmt.(*build.LoadStmt)
		if !ok {
			stmts = append(stmts, stmt)
			continue
		}

		node := FromLoad(load)
		nodes, err := r.pipeline.ExecuteImport(ctx, node)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 1 && nodes[0] == node {
			stmts = append(stmts, load)
			continue
		}

		start, _ := load.Span()
		change := Change{Line: start.Line, From: node.Source}
		for i, n := range nodes {
			stmts = append(stmts, ToLoad(n, i == 0))
			change.To = append(change.To, n.Source)
		}
		changes = append(changes, change)
	}

	if err := r.pipeline.ExecuteComplete(ctx); err != nil {
		return nil, err
	}

	f.Stmt = stmts
	return changes, nil
}

// FromLoad converts a load statement into an import node
func FromLoad(load *build.LoadStmt) *core.ImportNode {
	node := &core.ImportNode{Host: load}
	if load.Module != nil {
		node.Source = load.Module.Value
	}
	for i := range load.From {
		spec := core.Specifier{Imported: load.From[i].Name, Local: load.From[i].Name}
		if i < len(load.To) {
			spec.Local = load.To[i].Name
		}
		node.Specifiers = append(node.Specifiers, spec)
	}
	return node
}

// ToLoad converts an import node back into a load statement. Layout is
// taken from the node's host statement when it has one; comments are only
// kept when withComments is set, so a fanned-out statement carries them once.
func ToLoad(node *core.ImportNode, withComments bool) *build.LoadStmt {
	orig, _ := node.Host.(*build.LoadStmt)
	if orig == nil {
		orig = &build.LoadStmt{}
	}

	stmt := &build.LoadStmt{
		Load:         orig.Load,
		Module:       &build.StringExpr{Value: node.Source},
		Rparen:       orig.Rparen,
		ForceCompact: orig.ForceCompact,
	}
	if orig.Module != nil {
		stmt.Module.Start = orig.Module.Start
		stmt.Module.End = orig.Module.End
	}
	if withComments {
		stmt.Comments = orig.Comments
	}

	for i, spec := range node.Specifiers {
		from := &build.Ident{Name: spec.Imported}
		to := &build.Ident{Name: spec.Local}
		if i < len(orig.From) {
			from.NamePos = orig.From[i].NamePos
		}
		if i < len(orig.To) {
			to.NamePos = orig.To[i].NamePos
		}
		stmt.From = append(stmt.From, from)
		stmt.To = append(stmt.To, to)
	}
	return stmt
}
