// Package runner orchestrates inspecting and fixing many files of a project.
package runner

import "github.com/yaklabco/javafix/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Empty means the whole
	// project.
	Paths []string

	// Jobs bounds the number of files processed concurrently. 0 or negative
	// means runtime.NumCPU().
	Jobs int

	// Fix applies the offered fixes.
	Fix bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}
