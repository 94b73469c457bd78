package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/javafix/pkg/runner"
)

// jsonSchemaVersion is the version of the JSON output layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure. Version is the layout
// version; ToolVersion is the javafix build that wrote it.
type JSONOutput struct {
	Version     string           `json:"version"`
	ToolVersion string           `json:"toolVersion,omitempty"`
	Files       []JSONFileResult `json:"files"`
	Summary     JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path         string        `json:"path"`
	Problems     []JSONProblem `json:"problems"`
	Modified     bool          `json:"modified,omitempty"`
	FixesApplied int           `json:"fixesApplied,omitempty"`
	Skipped      string        `json:"skipped,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// JSONProblem represents a single problem.
type JSONProblem struct {
	InspectionID   string   `json:"inspectionId"`
	InspectionName string   `json:"inspectionName"`
	Severity       string   `json:"severity"`
	Message        string   `json:"message"`
	StartLine      int      `json:"startLine"`
	StartColumn    int      `json:"startColumn"`
	EndLine        int      `json:"endLine"`
	EndColumn      int      `json:"endColumn"`
	StartOffset    int      `json:"startOffset"`
	EndOffset      int      `json:"endOffset"`
	Suggestion     string   `json:"suggestion,omitempty"`
	Fixable        bool     `json:"fixable"`
	Fixes          []string `json:"fixes,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int            `json:"filesChecked"`
	FilesWithProblems int            `json:"filesWithProblems"`
	FilesModified     int            `json:"filesModified"`
	FilesErrored      int            `json:"filesErrored"`
	TotalProblems     int            `json:"totalProblems"`
	FixesApplied      int            `json:"fixesApplied"`
	BySeverity        map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalProblems, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:     jsonSchemaVersion,
		ToolVersion: r.opts.Version,
		Files:       make([]JSONFileResult, 0),
		Summary:     JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     displayPath(file.Path, r.opts.WorkingDir),
			Problems: make([]JSONProblem, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if pr := file.Result; pr != nil {
			fileResult.Modified = pr.Written
			fileResult.FixesApplied = pr.FixesApplied
			fileResult.Skipped = pr.SkipReason
			output.Summary.FixesApplied += pr.FixesApplied
		}

		if doc := documentOf(file); doc != nil {
			for _, problem := range doc.Problems {
				fileResult.Problems = append(fileResult.Problems, JSONProblem{
					InspectionID:   problem.InspectionID,
					InspectionName: problem.InspectionName,
					Severity:       string(problem.Severity),
					Message:        problem.Message,
					StartLine:      problem.StartLine,
					StartColumn:    problem.StartColumn,
					EndLine:        problem.EndLine,
					EndColumn:      problem.EndColumn,
					StartOffset:    problem.Range.Start,
					EndOffset:      problem.Range.End,
					Suggestion:     problem.Suggestion,
					Fixable:        problem.HasFix(),
					Fixes:          problem.FixTexts(),
				})
				output.Summary.TotalProblems++
				output.Summary.BySeverity[string(problem.Severity)]++
			}
		}

		if len(fileResult.Problems) > 0 {
			output.Summary.FilesWithProblems++
		}
		if fileResult.Modified {
			output.Summary.FilesModified++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
