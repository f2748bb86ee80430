// Package pipeline wires discovery, parsing, scanning, joining and report
// generation into one batch run. The run either completes and writes both
// artifacts, or fails before writing either; it never publishes a partial
// report.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/reqtrace/reqtrace/internal/config"
	"github.com/reqtrace/reqtrace/pkg/catalog"
	"github.com/reqtrace/reqtrace/pkg/junitxml"
	"github.com/reqtrace/reqtrace/pkg/reportmd"
	"github.com/reqtrace/reqtrace/pkg/requirement"
	"github.com/reqtrace/reqtrace/pkg/result"
	"github.com/reqtrace/reqtrace/pkg/scan"
	"github.com/reqtrace/reqtrace/pkg/trace"
	"github.com/reqtrace/reqtrace/pkg/trxxml"
)

// Artifact file names, relative to the configured artifacts directory.
const (
	MatrixFileName = "traceability_matrix.md"
	ReportFileName = "validation_report.md"
)

// RunInfo summarizes a completed run for the console.
type RunInfo struct {
	Stats      trace.Stats
	MatrixPath string
	ReportPath string
	JUnitFiles int
	TRXFiles   int
}

// Run executes the whole pipeline once.
func Run(cfg *config.Config, log *slog.Logger) (*RunInfo, error) {
	if log == nil {
		log = slog.Default()
	}
	pat := requirement.NewPattern(cfg.Prefix)

	// Result artifacts. Zero files for one format is a warning; zero for
	// both means nothing useful can be reported.
	junitFiles := scan.Files(cfg.Results.Root, cfg.Results.JUnitGlobs)
	trxFiles := scan.Files(cfg.Results.Root, cfg.Results.TRXGlobs)
	if len(junitFiles) == 0 && len(trxFiles) == 0 {
		return nil, fmt.Errorf(
			"no result artifacts found under %s (tried junit globs [%s] and trx globs [%s])",
			cfg.Results.Root,
			strings.Join(cfg.Results.JUnitGlobs, ", "),
			strings.Join(cfg.Results.TRXGlobs, ", "),
		)
	}
	if len(junitFiles) == 0 {
		log.Warn("no junit result artifacts found", "root", cfg.Results.Root, "globs", cfg.Results.JUnitGlobs)
	}
	if len(trxFiles) == 0 {
		log.Warn("no trx result artifacts found", "root", cfg.Results.Root, "globs", cfg.Results.TRXGlobs)
	}

	var junitRecords []result.Record
	for _, f := range junitFiles {
		records := junitxml.ParseFile(f)
		if len(records) == 0 {
			log.Warn("junit artifact yielded no results", "file", f)
		}
		junitRecords = append(junitRecords, records...)
	}

	// TRX artifacts sometimes carry category tags themselves; those join
	// the compiled map alongside what source scanning recovers.
	var trxRecords []result.Record
	artifactCats := scan.Map{}
	for _, f := range trxFiles {
		doc, err := trxxml.ReadFile(f)
		if err != nil {
			log.Warn("trx artifact unparsable, skipped", "file", f, "error", err)
			continue
		}
		trxRecords = append(trxRecords, doc.Records()...)
		for name, cats := range doc.Categories() {
			for _, c := range cats {
				if id, ok := pat.Normalize(c); ok {
					artifactCats.Add(name, id)
				}
			}
		}
	}

	// Source scanning, both ecosystems.
	pyMap := scan.ScanInterpreted(cfg.Sources.Interpreted.Root, cfg.Sources.Interpreted.Globs, pat)
	csMap := scan.ScanCompiled(cfg.Sources.Compiled.Root, cfg.Sources.Compiled.Globs, pat)
	csMap.Merge(artifactCats)

	log.Debug("discovery complete",
		"junit_files", len(junitFiles), "trx_files", len(trxFiles),
		"junit_records", len(junitRecords), "trx_records", len(trxRecords),
		"interpreted_tests", len(pyMap), "compiled_tests", len(csMap))

	// Reporting universe: catalog plus everything scanning discovered.
	universe := requirement.NewSet()
	universe.Union(pyMap.Requirements())
	universe.Union(csMap.Requirements())
	if cfg.Catalog != "" {
		ids, err := catalog.Load(cfg.Catalog, pat)
		if err != nil {
			return nil, err
		}
		universe.Union(ids)
	}
	if universe.Len() == 0 {
		universe = catalog.Salvage(salvageRoots(cfg), pat)
		log.Warn("no requirements discovered by scanning; salvaged from repository text", "count", universe.Len())
	}

	entries := trace.Join(csMap, trxRecords, trace.EcosystemCompiled)
	entries = append(entries, trace.Join(pyMap, junitRecords, trace.EcosystemInterpreted)...)
	summary := trace.Aggregate(universe, entries)

	// Render both documents before writing either.
	matrix := reportmd.Matrix(summary)
	report := reportmd.Report(summary)

	if err := os.MkdirAll(cfg.ArtifactsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifacts dir %s: %w", cfg.ArtifactsDir, err)
	}
	matrixPath := filepath.Join(cfg.ArtifactsDir, MatrixFileName)
	reportPath := filepath.Join(cfg.ArtifactsDir, ReportFileName)
	if err := os.WriteFile(matrixPath, []byte(matrix), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", matrixPath, err)
	}
	if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", reportPath, err)
	}

	return &RunInfo{
		Stats:      trace.ComputeStats(summary),
		MatrixPath: matrixPath,
		ReportPath: reportPath,
		JUnitFiles: len(junitFiles),
		TRXFiles:   len(trxFiles),
	}, nil
}

// salvageRoots collects the distinct roots worth scanning for stray IDs.
func salvageRoots(cfg *config.Config) []string {
	seen := make(map[string]struct{})
	var roots []string
	for _, r := range []string{cfg.Results.Root, cfg.Sources.Interpreted.Root, cfg.Sources.Compiled.Root} {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; !dup {
			seen[r] = struct{}{}
			roots = append(roots, r)
		}
	}
	return roots
}
