// Package pipeline orchestrates the five-stage front-end (spec.md §4:
// parse, check, hoist, resolve, infer) as a single call, the role the
// original split across main.rs's driver and lib.rs's reset_fresh_state
// — except here every stage shares one explicit Context instead of
// reaching into process-wide globals between calls.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/checker"
	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/hoister"
	"github.com/nyxlang/nyxc/internal/infer"
	"github.com/nyxlang/nyxc/internal/lexer"
	"github.com/nyxlang/nyxc/internal/parser"
	"github.com/nyxlang/nyxc/internal/resolver"
)

// Context identifies one run of the pipeline over one source buffer. ID
// is a correlation id that internal/lspserver writes to its own log
// next to each diagnostic batch it publishes, so rapid successive
// didChange/didSave runs can be told apart there; it is not sent to the
// client. The original has no analogous concept, since it only ever ran
// once per process invocation.
type Context struct {
	ID     uuid.UUID
	Source string
	FileID int
}

// Result is everything a caller (the CLI's check subcommand, the LSP
// server, a test) might want out of a completed run.
type Result struct {
	ID     uuid.UUID
	Scope  *ast.Scope
	Engine *infer.Engine
	Diags  *diag.Bag
}

// Run lexes, parses, checks, hoists, resolves and infers source as a
// single file, in that fixed order — each stage appends to the same
// Bag and none aborts the others on error, matching spec.md's
// best-effort, no-early-exit contract.
func Run(source string, cfg *config.Config) *Result {
	ctx := &Context{ID: uuid.New(), Source: source, FileID: 0}
	diags := diag.NewBag()

	p := parser.New(lexer.New(source), ctx.FileID, diags)
	scope := p.ParseScope()

	conv := checker.Snake
	if cfg.CaseConvention == config.SnakeOrCamel {
		conv = checker.SnakeOrCamel
	}
	checker.Check(scope, diags, conv)

	hoister.Hoist(scope)
	resolver.New(diags).Resolve(scope)
	engine := infer.Infer(scope, diags)

	return &Result{ID: ctx.ID, Scope: scope, Engine: engine, Diags: diags}
}
