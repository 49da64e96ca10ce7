// Package pipeline chains the compiler's stages — type checking,
// optimization, code generation — behind one small Processor interface.
// A Pipeline holds an ordered list of Processors and threads one
// context value through all of them, continuing past a stage that
// records errors so later stages (and the CLI) can still see
// everything that went wrong rather than stopping at the first
// failure.
package pipeline

// Processor transforms a Context and returns the (possibly same)
// Context to hand to the next stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors.
type Pipeline struct {
	processors []Processor
}

// New returns a Pipeline that runs processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run threads initialCtx through every stage in order. A stage that
// appends diagnostics does not stop later stages from running — the
// CLI decides what to do with a non-empty Errors slice once the whole
// pipeline has had a chance to report everything it can.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
