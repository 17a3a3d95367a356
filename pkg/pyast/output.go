package pyast

// TransformOutput is the result of a successful lowering pass.
// Exports and ModuleStarExports are meaningful in module mode only;
// deduplication is left to the emitter.
type TransformOutput struct {
	PyBlock           []Stmt
	Exports           []string
	ModuleStarExports []string
}
