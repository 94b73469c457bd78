package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/reporter"
	"github.com/yaklabco/javafix/pkg/session"
)

// Tool names.
const (
	ToolListFixes = "javafix_list_fixes"
	ToolApplyFix  = "javafix_apply_fix"
	ToolCheck     = "javafix_check"
)

type handlers struct {
	sess    *session.Session
	version string
}

// registerTools registers the javafix tools on s.
func registerTools(s *server.MCPServer, h *handlers) {
	position := []mcplib.ToolOption{
		mcplib.WithString("file",
			mcplib.Required(),
			mcplib.Description("Java file, absolute or relative to the project root"),
		),
		mcplib.WithNumber("line", mcplib.Required(), mcplib.Description("1-based line")),
		mcplib.WithNumber("column", mcplib.Required(), mcplib.Description("1-based column")),
	}

	s.AddTool(
		mcplib.NewTool(ToolListFixes, append([]mcplib.ToolOption{
			mcplib.WithDescription("Lists the problems at a position and the quick-fixes they offer"),
		}, position...)...),
		h.listFixes,
	)

	s.AddTool(
		mcplib.NewTool(ToolApplyFix, append([]mcplib.ToolOption{
			mcplib.WithDescription("Applies a quick-fix offered at a position and returns the new caret position"),
			mcplib.WithNumber("fix", mcplib.Description("1-based index of the fix as listed by javafix_list_fixes (default 1)")),
			mcplib.WithBoolean("dry_run", mcplib.Description("Return the diff without writing the file")),
		}, position...)...),
		h.applyFix,
	)

	s.AddTool(
		mcplib.NewTool(ToolCheck,
			mcplib.WithDescription("Runs the inspections over files or directories and returns the problems as JSON"),
			mcplib.WithString("paths", mcplib.Description("Comma-separated paths relative to the project root (default: whole project)")),
		),
		h.check,
	)
}

// Position is a 1-based line and column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ProblemInfo describes a problem in tool output.
type ProblemInfo struct {
	InspectionID string   `json:"inspectionId"`
	Severity     string   `json:"severity"`
	Message      string   `json:"message"`
	Start        Position `json:"start"`
	End          Position `json:"end"`
}

// FixInfo describes an offered fix in tool output.
type FixInfo struct {
	Index        int    `json:"index"`
	Label        string `json:"label"`
	Family       string `json:"family"`
	InspectionID string `json:"inspectionId"`
}

// FixList is the output of javafix_list_fixes.
type FixList struct {
	File     string        `json:"file"`
	Problems []ProblemInfo `json:"problems"`
	Fixes    []FixInfo     `json:"fixes"`
}

// AppliedFix is the output of javafix_apply_fix.
type AppliedFix struct {
	File          string   `json:"file"`
	Label         string   `json:"label"`
	Family        string   `json:"family"`
	Caret         Position `json:"caret"`
	Written       bool     `json:"written"`
	BackupCreated bool     `json:"backupCreated"`
	Diff          string   `json:"diff,omitempty"`
}

func (h *handlers) listFixes(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	file, line, col, err := h.position(request)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	offer, err := h.sess.FixesAt(ctx, file, line, col)
	if err != nil {
		return errorResult(fmt.Sprintf("list fixes: %v", err)), nil
	}

	out := FixList{
		File:     h.display(offer.Path),
		Problems: make([]ProblemInfo, 0, len(offer.Problems)),
		Fixes:    make([]FixInfo, 0, len(offer.Fixes)),
	}
	for _, p := range offer.Problems {
		out.Problems = append(out.Problems, ProblemInfo{
			InspectionID: p.InspectionID,
			Severity:     string(p.Severity),
			Message:      p.Message,
			Start:        Position{p.StartLine, p.StartColumn},
			End:          Position{p.EndLine, p.EndColumn},
		})
	}
	for _, f := range offer.Fixes {
		out.Fixes = append(out.Fixes, FixInfo{
			Index:        f.Index,
			Label:        f.Label,
			Family:       f.Family,
			InspectionID: f.Problem.InspectionID,
		})
	}
	return jsonResult(out)
}

func (h *handlers) applyFix(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	file, line, col, err := h.position(request)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	args := request.GetArguments()
	n := 1
	if _, ok := args["fix"]; ok {
		if n, err = intArg(args, "fix"); err != nil {
			return errorResult(err.Error()), nil
		}
	}
	dryRun, _ := args["dry_run"].(bool)

	change, err := h.sess.Apply(ctx, file, line, col, n, session.ApplyOptions{DryRun: dryRun})
	if err != nil {
		logging.FromContext(ctx).Debug("apply fix failed", logging.FieldPath, file, logging.FieldError, err)
		return errorResult(fmt.Sprintf("apply fix: %v", err)), nil
	}

	out := AppliedFix{
		File:          h.display(change.Path),
		Label:         change.Label,
		Family:        change.Family,
		Caret:         Position{change.Line, change.Column},
		Written:       change.Written,
		BackupCreated: change.BackupCreated,
	}
	if change.Diff != nil && change.Diff.HasChanges() {
		out.Diff = change.Diff.String()
	}
	return jsonResult(out)
}

func (h *handlers) check(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	var paths []string
	if raw, _ := request.GetArguments()["paths"].(string); raw != "" {
		for _, p := range splitAndTrim(raw) {
			paths = append(paths, h.resolve(p))
		}
	}

	result, err := h.sess.Check(ctx, paths...)
	if err != nil {
		return errorResult(fmt.Sprintf("check: %v", err)), nil
	}

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:     &buf,
		Format:     reporter.FormatJSON,
		Registry:   h.sess.Engine.Registry,
		Version:    h.version,
		WorkingDir: h.sess.Project.Root(),
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return textResult(buf.String()), nil
}

// position reads the file, line and column arguments.
func (h *handlers) position(request mcplib.CallToolRequest) (string, int, int, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return "", 0, 0, err
	}
	args := request.GetArguments()
	line, err := intArg(args, "line")
	if err != nil {
		return "", 0, 0, err
	}
	col, err := intArg(args, "column")
	if err != nil {
		return "", 0, 0, err
	}
	return h.resolve(file), line, col, nil
}

// resolve makes a path relative to the project root absolute.
func (h *handlers) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(h.sess.Project.Root(), path)
}

// display makes path relative to the project root when it is inside it.
func (h *handlers) display(path string) string {
	if rel, ok := h.sess.Project.Rel(path); ok {
		return rel
	}
	return path
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var errMissingArgument = errors.New("missing argument")

// intArg reads a whole number argument. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("argument %q must be a whole number, got %v", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("%w: %q", errMissingArgument, key)
	default:
		return 0, fmt.Errorf("argument %q must be a number, got %T", key, v)
	}
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
