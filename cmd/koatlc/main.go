// Package main implements koatlc, a thin CLI exercising pkg/lower end
// to end. Grounded on the teacher's cmd/dingo/main.go (spf13/cobra
// root command, a styled help banner, a "build" subcommand reporting
// per-step progress). Because the lexer/parser that would normally
// produce a koatlast.Block is out of scope (spec.md §1), "build"
// reads an already-parsed block from a JSON file instead of Koatl
// source text; see pkg/koatlast.BlockFromJSON.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/koatl-lang/koatl/pkg/config"
	"github.com/koatl-lang/koatl/pkg/diag"
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lower"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
	"github.com/koatl-lang/koatl/pkg/ui"
)

var version = "0.1.0-alpha"

func main() {
	rootCmd := &cobra.Command{
		Use:          "koatlc",
		Short:        "koatlc - Koatl to PyAST lowering",
		Long:         "koatlc lowers a parsed Koatl AST into a PyAST tree ready for a host Python runtime.",
		Version:      version,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHelp(version)
		},
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		ui.PrintHelp(version)
	})
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHelp(version)
		},
	})

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var (
		output string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "build [ast.json]",
		Short: "Lower a JSON-encoded Koatl AST to a PyAST JSON document",
		Long: `Build reads a JSON-serialized koatlast.Block, lowers it with pkg/lower,
and writes the resulting PyAST tree as JSON.

Example:
  koatlc build module.ast.json
  koatlc build -o out.py.json --mode=script module.ast.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], output, mode)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: replace .ast.json with .py.json)")
	cmd.Flags().StringVar(&mode, "mode", "module", "Transpile mode: module, prelude, interactive, or script")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of koatlc",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintVersionInfo(version)
		},
	}
}

func runBuild(inputPath, outputPath, modeFlag string) error {
	buildUI := ui.NewBuildOutput()
	buildUI.PrintHeader(version)

	if outputPath == "" {
		outputPath = deriveOutputPath(inputPath)
	}
	buildUI.PrintFileStart(inputPath, outputPath)

	cfg, err := config.Load(&config.Config{Transpile: config.TranspileOptions{Mode: config.TranspileMode(modeFlag)}})
	if err != nil {
		buildUI.PrintError(err.Error())
		return err
	}

	astSrc, err := os.ReadFile(inputPath)
	if err != nil {
		buildUI.PrintError(fmt.Sprintf("failed to read %s: %v", inputPath, err))
		return err
	}

	decodeStart := time.Now()
	block, err := koatlast.BlockFromJSON(astSrc)
	decodeDuration := time.Since(decodeStart)
	if err != nil {
		buildUI.PrintStep(ui.Step{Name: "Decode", Status: ui.StepError, Duration: decodeDuration})
		buildUI.PrintError(err.Error())
		return err
	}
	buildUI.PrintStep(ui.Step{Name: "Decode", Status: ui.StepSuccess, Duration: decodeDuration})

	lowerStart := time.Now()
	out, err := lower.TransformAST(string(astSrc), block, cfg.Transpile)
	lowerDuration := time.Since(lowerStart)
	if err != nil {
		buildUI.PrintStep(ui.Step{Name: "Lower", Status: ui.StepError, Duration: lowerDuration})
		renderLoweringError(string(astSrc), inputPath, cfg, err)
		return err
	}
	buildUI.PrintStep(ui.Step{Name: "Lower", Status: ui.StepSuccess, Duration: lowerDuration})

	writeStart := time.Now()
	outJSON, err := pyast.ToJSON(out)
	if err == nil {
		err = os.WriteFile(outputPath, outJSON, 0o644)
	}
	writeDuration := time.Since(writeStart)
	if err != nil {
		buildUI.PrintStep(ui.Step{Name: "Write", Status: ui.StepError, Duration: writeDuration})
		buildUI.PrintError(err.Error())
		return err
	}
	buildUI.PrintStep(ui.Step{Name: "Write", Status: ui.StepSuccess, Duration: writeDuration, Message: fmt.Sprintf("%d bytes written", len(outJSON))})

	buildUI.PrintSummary(true, "")
	return nil
}

// renderLoweringError prints a rustc-style snippet per collected error
// when err unwraps to a *lowerr.Errors, falling back to a plain
// message for anything else (an internal Go error, not a diagnostic).
func renderLoweringError(source, filename string, cfg *config.Config, err error) {
	if errs, ok := lowerr.AsErrors(err); ok {
		r := diag.NewRenderer(source, filename, cfg.Diagnostics)
		fmt.Fprint(os.Stderr, r.RenderAll(errs))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func deriveOutputPath(inputPath string) string {
	const suffix = ".ast.json"
	if len(inputPath) > len(suffix) && inputPath[len(inputPath)-len(suffix):] == suffix {
		return inputPath[:len(inputPath)-len(suffix)] + ".py.json"
	}
	return inputPath + ".py.json"
}
