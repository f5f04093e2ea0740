// Package codegen turns an IR tree into program text and an optional
// source map. Generation is two-pass: collaborators append fragments with
// position metadata and control markers, then a single linear emit pass
// resolves markers, tracks the output cursor and records mappings.
package codegen

import (
	"vaporgen/internal/ir"
	"vaporgen/internal/sourcemap"
)

// Result is the outcome of one generation run.
type Result struct {
	// Code is the final program text, with the import preamble prepended
	// unless inline mode is active.
	Code string
	// Preamble holds the synthesized import statements, possibly empty.
	// In inline mode it is computed but not part of Code; the host
	// supplies helpers itself.
	Preamble string
	// AST passes the IR root back to the caller.
	AST *ir.RootNode
	// Map is the finalized source map, nil when disabled.
	Map *sourcemap.Map
	// Helpers and VaporHelpers list the runtime surface the generated
	// code touches, in first-use order.
	Helpers      []string
	VaporHelpers []string
}

// Generate compiles the IR root into program text. The fragment sequence
// is built in order: wrapper opening, one delegate call per template
// descriptor, the block delegate, wrapper closing. Import synthesis runs
// after the body so it sees the complete helper sets, then the emitter
// linearizes everything in one pass.
func Generate(root *ir.RootNode, opts Options) (*Result, error) {
	opts = opts.resolved()
	cx := newContext(root, opts)

	if opts.Inline {
		cx.Push(Text("(() => {"))
	} else {
		cx.Push(Newline, Text("export function render(_ctx) {"))
	}
	cx.Push(IndentStart)

	for i, tpl := range root.Templates {
		cx.Push(opts.GenTemplate(cx, tpl, i)...)
	}
	cx.Push(opts.GenBlock(cx, &root.Block)...)

	cx.Push(IndentEnd, Newline)
	if opts.Inline {
		cx.Push(Text("})()"))
	} else {
		cx.Push(Text("}"))
	}

	preamble := synthesizeImports(cx)

	code, err := emit(cx.fragments, opts, cx.smap)
	if err != nil {
		return nil, err
	}
	if !opts.Inline {
		code = preamble + code
	}

	res := &Result{
		Code:         code,
		Preamble:     preamble,
		AST:          root,
		Helpers:      cx.Helpers(),
		VaporHelpers: cx.VaporHelpers(),
	}
	if cx.smap != nil {
		res.Map = cx.smap.Finalize()
	}
	return res, nil
}
