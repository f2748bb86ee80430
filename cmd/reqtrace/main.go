// reqtrace builds a requirements-traceability report for a controller's two
// test suites.
//
// Usage:
//
//	reqtrace [-config path] [-catalog path] [-out dir] [-prefix REQ] [-v]
//
// It parses JUnit- and TRX-shaped result artifacts, recovers test-to-
// requirement associations by scanning both test source trees, joins the
// two by test name, and writes traceability_matrix.md and
// validation_report.md.
//
// The exit status reflects report generation only: 0 whenever both
// artifacts were written, regardless of how many requirements failed or are
// uncovered; 2 when nothing could be reported at all.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/reqtrace/reqtrace/internal/config"
	"github.com/reqtrace/reqtrace/internal/console"
	"github.com/reqtrace/reqtrace/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reqtrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFlag := fs.String("config", "", "Path to .reqtrace.yaml (default: search the working directory)")
	catalogFlag := fs.String("catalog", "", "Requirements catalog file (overrides config)")
	outFlag := fs.String("out", "", "Artifacts output directory (overrides config)")
	prefixFlag := fs.String("prefix", "", "Requirement identifier prefix (overrides config)")
	verbose := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "reqtrace: %v\n", err)
		return 2
	}
	if *catalogFlag != "" {
		cfg.Catalog = *catalogFlag
	}
	if *outFlag != "" {
		cfg.ArtifactsDir = *outFlag
	}
	if *prefixFlag != "" {
		cfg.Prefix = *prefixFlag
	}

	info, err := pipeline.Run(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "reqtrace: %v\n", err)
		return 2
	}

	console.Summarize(stdout, info, useColor(stdout))
	return 0
}

// useColor reports whether stdout is a terminal with color enabled.
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
