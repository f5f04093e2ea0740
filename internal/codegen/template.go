package codegen

import (
	"fmt"
	"strings"

	"vaporgen/internal/ir"
)

const vaporHelperTemplate = "template"

// genTemplate is the default template collaborator: it hoists each
// template descriptor into a numbered constant.
func genTemplate(cx *Context, tpl ir.Template, index int) []Fragment {
	ref := cx.VaporHelper(vaporHelperTemplate)
	return []Fragment{
		Newline,
		Text(fmt.Sprintf("const t%d = %s(%s)", index, ref, quoteJS(tpl.HTML))),
	}
}

// quoteJS renders a single-quoted JavaScript string literal.
func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
