package lower

import (
	"github.com/koatl-lang/koatl/pkg/config"
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// TransformAST is the lowering pass's public entry point (SPEC_FULL.md
// §6 "External interfaces"): it lowers one top-level block into a
// PyAST statement sequence plus its export table. Every other
// function in this package exists to serve this one.
//
// Every mode shares the same block shaper; only ModeModule discards the
// block's own final expression, every other mode keeps it (spec.md §6
// "module discards it, interactive/prelude/script keep it").
func TransformAST(source string, block *koatlast.Block, opts config.TranspileOptions) (pyast.TransformOutput, error) {
	c := newContext(source)

	treatFinalAsExpr := opts.Mode != config.ModeModule
	result, err := c.transformBlock(block, treatFinalAsExpr, true)
	if err != nil {
		return pyast.TransformOutput{}, err
	}

	stmts := result.stmts
	if treatFinalAsExpr && result.kind == finalExprKindExpr {
		stmts = append(stmts, &pyast.SExpr{SBase: pyast.SBase{Sp: block.Span()}, X: result.expr})
	}

	return pyast.TransformOutput{
		PyBlock:           stmts,
		Exports:           c.exports,
		ModuleStarExports: c.moduleStarExports,
	}, nil
}
