package codegen

import "vaporgen/internal/ir"

// Mode selects the shape of the generated program.
type Mode string

const (
	// ModeFunction emits a standalone exported render function.
	ModeFunction Mode = "function"
	// ModeModule emits the same wrapper but defaults identifier
	// prefixing on, for hosts that bind the output as an ES module.
	ModeModule Mode = "module"
)

// DefaultFilename names the original source when the caller supplies none.
const DefaultFilename = "template.vue.html"

// vaporModuleName is the fixed import source for extension helpers.
const vaporModuleName = "vue/vapor"

// TemplateFn generates the fragments for one top-level template
// descriptor. Collaborators receive the Context and must only append
// through it or return fragments.
type TemplateFn func(cx *Context, tpl ir.Template, index int) []Fragment

// BlockFn generates the fragments for the block body.
type BlockFn func(cx *Context, block *ir.Block) []Fragment

// Options configures one generation run. The zero value of every field
// means "use the default"; resolved() fills defaults exactly once before
// the Context is constructed.
type Options struct {
	Mode              Mode
	PrefixIdentifiers bool // forced on in module mode
	SourceMap         bool
	Filename          string
	ScopeID           string
	OptimizeImports   bool

	// RuntimeModuleName is the import source for core helpers.
	// SSRRuntimeModuleName is its streaming/server-rendering variant.
	RuntimeModuleName    string
	SSRRuntimeModuleName string

	SSR    bool
	IsTS   bool
	InSSR  bool
	Inline bool

	BindingMetadata   map[string]string
	ExpressionPlugins []string

	// DebugChecks enables the internal invariant validation of newline
	// descriptors. Meant for non-production builds.
	DebugChecks bool

	// GenTemplate and GenBlock are the per-node generation collaborators.
	// They default to the built-in generators in this package.
	GenTemplate TemplateFn
	GenBlock    BlockFn
}

func (o Options) resolved() Options {
	if o.Mode == "" {
		o.Mode = ModeFunction
	}
	if o.Mode == ModeModule {
		o.PrefixIdentifiers = true
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	if o.RuntimeModuleName == "" {
		o.RuntimeModuleName = "vue"
	}
	if o.SSRRuntimeModuleName == "" {
		o.SSRRuntimeModuleName = "vue/server-renderer"
	}
	if o.BindingMetadata == nil {
		o.BindingMetadata = map[string]string{}
	}
	if o.GenTemplate == nil {
		o.GenTemplate = genTemplate
	}
	if o.GenBlock == nil {
		o.GenBlock = genBlock
	}
	return o
}
