package pipeline

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/checker"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/codegen"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/diagnostics"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/optimizer"
)

// codegenFailure wraps a code generation error as an internal
// diagnostic, since reaching this point means the module already
// checked clean — any failure here points at a bug in the generator
// itself rather than the user's source.
func codegenFailure(file string, err error) *diagnostics.DiagnosticError {
	d := diagnostics.NewInternal(file, 0, err.Error())
	d.File = file
	return d
}

// CheckerProcessor runs the type checker and appends any diagnostics
// it records. It never stops the pipeline itself — a failed check is
// surfaced to the caller via Context.HadError after Run returns, a
// "collect everything, decide at the end" approach.
type CheckerProcessor struct{}

func (CheckerProcessor) Process(ctx *Context) *Context {
	c := checker.New(ctx.Syms, ctx.File)
	c.Check(ctx.Module)
	ctx.Errors = append(ctx.Errors, c.Errors()...)
	return ctx
}

// OptimizerProcessor rewrites ctx.Module in place unless an earlier
// stage already recorded an error — optimizing a module that failed to
// check could fold away the very expression a diagnostic points at.
type OptimizerProcessor struct{}

func (OptimizerProcessor) Process(ctx *Context) *Context {
	if ctx.HadError() {
		return ctx
	}
	optimizer.New(ctx.Arena).Run(ctx.Module)
	return ctx
}

// CodegenProcessor lowers ctx.Module to C source, skipped entirely if
// an earlier stage recorded an error.
type CodegenProcessor struct{}

func (CodegenProcessor) Process(ctx *Context) *Context {
	if ctx.HadError() {
		return ctx
	}
	out, err := codegen.New(ctx.Arith).Generate(ctx.Module)
	if err != nil {
		ctx.Errors = append(ctx.Errors, codegenFailure(ctx.File, err))
		return ctx
	}
	ctx.Output = out
	return ctx
}
