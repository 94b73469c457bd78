package runner

import (
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
)

// FileOutcome is the processing result of one file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *inspect.PipelineResult

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files not written because they changed on disk.
	FilesSkipped int
	FilesErrored int

	ProblemsTotal   int
	ProblemsFixable int

	// ProblemsBySeverity maps severity levels to counts.
	ProblemsBySeverity map[string]int

	FilesWithProblems int
	FilesModified     int

	// FixesApplied is the number of fixes applied across all files.
	FixesApplied int

	// FixesFailed is the number of fixes that were attempted and failed.
	FixesFailed int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	Stats Stats

	// Errors contains errors not tied to a single file.
	Errors []error
}

// HasFailures reports whether any error-severity problem remains.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ProblemsBySeverity[string(config.SeverityError)] > 0
}

// HasProblems reports whether any problems were found.
func (r *Result) HasProblems() bool {
	if r == nil {
		return false
	}
	return r.Stats.ProblemsTotal > 0
}

func newStats() Stats {
	return Stats{ProblemsBySeverity: make(map[string]int)}
}

// accumulate folds a file outcome into the result.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written || (pr.Modified && pr.Diff != nil) {
		r.Stats.FilesModified++
	}
	r.Stats.FixesApplied += pr.FixesApplied
	r.Stats.FixesFailed += len(pr.FixFailures)

	if pr.DocumentResult == nil {
		return
	}
	count := pr.ProblemCount()
	r.Stats.ProblemsTotal += count
	r.Stats.ProblemsFixable += pr.FixableCount()
	if count > 0 {
		r.Stats.FilesWithProblems++
	}
	for _, p := range pr.Problems {
		severity := string(p.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.ProblemsBySeverity[severity]++
	}
}
