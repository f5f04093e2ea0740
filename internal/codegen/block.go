package codegen

import (
	"fmt"

	"vaporgen/internal/ir"
)

// Core and extension runtime helpers the built-in generators reach for.
const (
	helperToDisplayString = "toDisplayString"

	vaporHelperCreateTextNode = "createTextNode"
	vaporHelperSetText        = "setText"
	vaporHelperCreateFor      = "createFor"
)

// genBlock is the default block collaborator: one statement per operation.
func genBlock(cx *Context, block *ir.Block) []Fragment {
	var frags []Fragment
	for i := range block.Operations {
		frags = append(frags, genOperation(cx, &block.Operations[i])...)
	}
	return frags
}

func genOperation(cx *Context, op *ir.Operation) []Fragment {
	switch op.Kind {
	case ir.OpRaw:
		return append([]Fragment{Newline}, genExpression(cx, op.Expr)...)

	case ir.OpCreateText:
		frags := []Fragment{Newline, Text(fmt.Sprintf("const n%d = ", op.ID))}
		display := Call(cx.Helper(helperToDisplayString), genExpression(cx, op.Expr))
		return append(frags, Call(cx.VaporHelper(vaporHelperCreateTextNode), display)...)

	case ir.OpSetText:
		frags := []Fragment{Newline}
		display := Call(cx.Helper(helperToDisplayString), genExpression(cx, op.Expr))
		return append(frags, Call(cx.VaporHelper(vaporHelperSetText), Str(fmt.Sprintf("n%d", op.ID)), display)...)

	case ir.OpFor:
		return genFor(cx, op)

	case ir.OpReturn:
		return append([]Fragment{Newline, Text("return ")}, genExpression(cx, op.Expr)...)
	}
	return nil
}

// genFor emits const n<ID> = _createFor(<source>, (<item>) => { <body> }).
// The item identifier is registered for the body so references to it skip
// _ctx prefixing.
func genFor(cx *Context, op *ir.Operation) []Fragment {
	frags := []Fragment{Newline, Text(fmt.Sprintf("const n%d = ", op.ID))}
	ref := cx.VaporHelper(vaporHelperCreateFor)

	render := cx.WithID([]string{op.Item}, func() []Fragment {
		inner := []Fragment{Text("(" + op.Item + ") => {"), IndentStart}
		for i := range op.Body {
			inner = append(inner, genOperation(cx, &op.Body[i])...)
		}
		return append(inner, IndentEnd, Newline, Text("}"))
	})

	return append(frags, Call(ref, genExpression(cx, op.Expr), render)...)
}

// genExpression renders a user expression as a single annotated fragment.
// Bare dynamic identifiers are qualified with _ctx unless an enclosing
// binding construct shadows them.
func genExpression(cx *Context, expr *ir.Expression) []Fragment {
	if expr == nil {
		return nil
	}
	content := expr.Content
	name := ""
	if !expr.IsStatic && isSimpleIdentifier(content) {
		name = content
		if cx.opts.PrefixIdentifiers && !cx.IdentifierInUse(content) {
			content = "_ctx." + content
		}
	}
	return []Fragment{Annotated(content, DescribeNewlines(content), expr.Loc, name)}
}

func isSimpleIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
