package cli

import (
	"errors"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/runner"
)

// Exit codes for javafix.
const (
	// ExitSuccess indicates successful execution with no failing problems.
	ExitSuccess = 0

	// ExitProblemErrors indicates the run found error-severity problems.
	ExitProblemErrors = 1

	// ExitProblemWarnings indicates the run found warnings (strict mode).
	ExitProblemWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.ProblemsBySeverity[string(config.SeverityError)]
	warnings := result.Stats.ProblemsBySeverity[string(config.SeverityWarning)]

	if errs > 0 {
		return ExitProblemErrors
	}
	if strict && warnings > 0 {
		return ExitProblemWarnings
	}
	return ExitSuccess
}

// IsSignal reports whether err only signals an exit code and needs no
// logging.
func IsSignal(err error) bool {
	return errors.Is(err, ErrProblemsFound) || errors.Is(err, ErrWarningsFound)
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrProblemsFound):
		return ExitProblemErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitProblemWarnings
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
