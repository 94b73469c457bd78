package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldRoot       = "root"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldGit    = "git"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldProblemsTotal   = "problems_total"
	FieldFilesModified   = "files_modified"
	FieldFixesApplied    = "fixes_applied"
	FieldPass            = "pass"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Inspection fields.
	FieldInspection  = "inspection"
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldDescription = "description"

	// Fix fields.
	FieldFixID     = "fix_id"
	FieldFamily    = "family"
	FieldLabel     = "label"
	FieldOffset    = "offset"
	FieldLine      = "line"
	FieldColumn    = "column"
	FieldTransport = "transport"
)
