// Package ui renders cmd/koatlc's CLI output: a styled header, a
// colorful help banner, and a per-step status line for the
// read-lower-write pipeline. Adapted from the teacher's
// pkg/ui/styles.go (same lipgloss palette and BuildOutput/Step shape);
// trimmed to what koatlc's single transform pipeline actually reports
// — the teacher's Table/Box/ProgressBar helpers went with dingo's
// multi-file watch-mode build reporting, which koatlc has no
// equivalent of.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("#7D56F4")
	colorSecondary = lipgloss.Color("#56C3F4")
	colorSuccess   = lipgloss.Color("#5AF78E")
	colorWarning   = lipgloss.Color("#F7DC6F")
	colorError     = lipgloss.Color("#FF6B9D")
	colorMuted     = lipgloss.Color("#6C7086")

	colorText      = lipgloss.Color("#CDD6F4")
	colorSubtle    = lipgloss.Color("#7F849C")
	colorHighlight = lipgloss.Color("#F5E0DC")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2).
			MarginBottom(1)

	styleVersion = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Italic(true)

	styleSection = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			MarginTop(1)

	styleFilePath = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	styleStepLabel = lipgloss.NewStyle().
			Foreground(colorText).
			Width(12).
			Align(lipgloss.Left)

	styleStepTime = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Italic(true)

	styleSummary = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorMuted).
			MarginTop(1).
			PaddingTop(1)

	styleIndent = lipgloss.NewStyle().
			PaddingLeft(2)
)

// BuildOutput renders one koatlc "build" invocation's progress: a
// header, one line per pipeline step (read AST / lower / write), and
// a final summary.
type BuildOutput struct {
	startTime time.Time
}

func NewBuildOutput() *BuildOutput {
	return &BuildOutput{startTime: time.Now()}
}

// PrintHeader prints the koatlc banner.
func (b *BuildOutput) PrintHeader(version string) {
	header := styleHeader.Render("🐍 koatlc")
	versionBadge := styleVersion.Render("v" + version)
	fmt.Println(header + " " + versionBadge)
}

// PrintFileStart announces the AST input and output file about to be
// processed.
func (b *BuildOutput) PrintFileStart(inputPath, outputPath string) {
	input := styleFilePath.Render(inputPath)
	arrow := styleMuted.Render("→")
	output := styleFilePath.Render(outputPath)
	fmt.Printf("  %s %s %s\n", input, arrow, output)
	fmt.Println()
}

// StepStatus is the outcome of one pipeline step.
type StepStatus int

const (
	StepSuccess StepStatus = iota
	StepError
)

// Step is one reported pipeline stage (e.g. "Decode", "Lower", "Write").
type Step struct {
	Name     string
	Status   StepStatus
	Duration time.Duration
	Message  string
}

// PrintStep prints one pipeline step's status line.
func (b *BuildOutput) PrintStep(step Step) {
	var icon, statusStyle string
	switch step.Status {
	case StepSuccess:
		icon = "✓"
		statusStyle = styleSuccess.Render("Done")
	case StepError:
		icon = "✗"
		statusStyle = styleError.Render("Failed")
	}

	label := styleStepLabel.Render(step.Name)
	line := fmt.Sprintf("  %s %s %s", icon, label, statusStyle)
	if step.Duration > 0 {
		line += " " + styleStepTime.Render("("+formatDuration(step.Duration)+")")
	}
	fmt.Println(line)

	if step.Message != "" {
		fmt.Println(styleMuted.Render("    " + step.Message))
	}
}

// PrintSummary prints the final build summary line.
func (b *BuildOutput) PrintSummary(success bool, errorMsg string) {
	elapsed := time.Since(b.startTime)

	fmt.Println()

	var summaryLine string
	if success {
		summaryLine = fmt.Sprintf("✨ %s Lowered in %s",
			styleSuccess.Render("Success!"),
			styleStepTime.Render(formatDuration(elapsed)))
	} else {
		summaryLine = fmt.Sprintf("💥 %s", styleError.Render("Lowering failed"))
		if errorMsg != "" {
			summaryLine += "\n" + styleError.Render("   Error: ") + errorMsg
		}
	}

	fmt.Println(styleSummary.Render(summaryLine))
}

// PrintError prints a standalone error message.
func (b *BuildOutput) PrintError(msg string) {
	fmt.Println(styleIndent.Render(styleError.Render("✗ Error: ") + msg))
}

// PrintInfo prints an informational message.
func (b *BuildOutput) PrintInfo(msg string) {
	fmt.Println(styleIndent.Render(styleMuted.Render("ℹ " + msg)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// PrintVersionInfo prints `koatlc version` output.
func PrintVersionInfo(version string) {
	fmt.Println(styleHeader.Render("🐍 koatlc"))
	fmt.Println()
	fmt.Printf("  %s %s\n", styleMuted.Render("Version:"), styleSuccess.Render(version))
	fmt.Printf("  %s %s\n", styleMuted.Render("Runtime:"), styleMuted.Render("Go"))
	fmt.Println()
}

// PrintHelp prints koatlc's colorful root help banner.
func PrintHelp(version string) {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	muted := styleMuted
	desc := lipgloss.NewStyle().Foreground(colorText)
	section := styleSection
	command := lipgloss.NewStyle().Foreground(colorSuccess)
	flag := lipgloss.NewStyle().Foreground(colorHighlight)

	fmt.Println()
	fmt.Println(header.Render("🐍 koatlc") + " " + muted.Render("- Koatl -> PyAST lowering"))
	fmt.Println(muted.Render("  v" + version))
	fmt.Println()

	fmt.Println(desc.Render("Lowers a parsed Koatl AST (given as JSON) into a PyAST tree,"))
	fmt.Println(desc.Render("ready for a host Python runtime to execute or compile."))
	fmt.Println()

	fmt.Println(section.Render("Usage:"))
	fmt.Println("  koatlc [command] [flags]")
	fmt.Println()

	fmt.Println(section.Render("Available Commands:"))
	commands := []struct{ name, desc string }{
		{"build", "Lower a JSON-encoded Koatl AST to a PyAST JSON document"},
		{"version", "Print the version number of koatlc"},
		{"help", "Help about any command"},
	}
	for _, cmd := range commands {
		fmt.Printf("  %s  %s\n", command.Render(fmt.Sprintf("%-12s", cmd.name)), cmd.desc)
	}
	fmt.Println()

	fmt.Println(section.Render("Flags:"))
	fmt.Printf("  %s      help for koatlc\n", flag.Render("-h, --help"))
	fmt.Printf("  %s   version for koatlc\n", flag.Render("-v, --version"))
	fmt.Println()

	fmt.Println(muted.Render("Use \"koatlc [command] --help\" for more information about a command."))
	fmt.Println()
}
