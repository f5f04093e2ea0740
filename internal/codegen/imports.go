package codegen

import "strings"

// synthesizeImports computes the import preamble for every registered
// helper, core set first, and returns it. In non-inline mode it also
// prepends one LineFeed marker per preamble line to the fragment sequence,
// so mapped generated lines already account for the text the caller will
// see prepended. Inline output gets no markers and no prepended preamble;
// the preamble string is still returned for hosts that want it.
func synthesizeImports(cx *Context) string {
	stmts := make([]string, 0, 2)
	if s := importStatement(cx.helpers, cx.opts.RuntimeModuleName); s != "" {
		stmts = append(stmts, s)
	}
	if s := importStatement(cx.vaporHelpers, vaporModuleName); s != "" {
		stmts = append(stmts, s)
	}
	if len(stmts) == 0 {
		return ""
	}

	preamble := "\n" + strings.Join(stmts, "\n") + "\n"

	if !cx.opts.Inline {
		pad := make([]Fragment, strings.Count(preamble, "\n"), len(cx.fragments)+strings.Count(preamble, "\n"))
		for i := range pad {
			pad[i] = LineFeed
		}
		cx.fragments = append(pad, cx.fragments...)
	}
	return preamble
}

// importStatement renders one deduplicated import covering every name in
// the set, aliased to its underscore reference form, in first-registration
// order. Empty sets produce no statement.
func importStatement(set *orderedSet, module string) string {
	if set.empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("import { ")
	for i, name := range set.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(" as _")
		b.WriteString(name)
	}
	b.WriteString(" } from '")
	b.WriteString(module)
	b.WriteString("';")
	return b.String()
}
