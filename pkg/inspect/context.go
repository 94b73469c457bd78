package inspect

import (
	"context"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/project"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

// Context is everything an inspection may look at while checking one
// document. It is created per inspection run and not retained.
type Context struct {
	// Ctx carries cancellation.
	Ctx context.Context

	// Document is the document being inspected; fixes point into it.
	Document *editor.Document

	// File is the document's parsed snapshot at inspection time.
	File *javatree.File

	// Index resolves class names across the project. May be nil.
	Index *project.ClassIndex

	Config *config.Config

	// InspectionConfig is the per-inspection configuration (may be nil).
	InspectionConfig *config.InspectionConfig

	// Messages localizes fix labels.
	Messages *quickfix.Messages
}

// NewContext creates a Context for doc.
func NewContext(
	ctx context.Context,
	doc *editor.Document,
	index *project.ClassIndex,
	cfg *config.Config,
	inspCfg *config.InspectionConfig,
) *Context {
	return &Context{
		Ctx:              ctx,
		Document:         doc,
		File:             doc.File(),
		Index:            index,
		Config:           cfg,
		InspectionConfig: inspCfg,
		Messages:         quickfix.DefaultMessages(),
	}
}

// Cancelled returns true if the context has been cancelled.
func (ic *Context) Cancelled() bool {
	return ic.Ctx.Err() != nil
}

// Pointer returns an element pointer into the inspected document.
func (ic *Context) Pointer(kind string, r javatree.Range) *editor.ElementPointer {
	return ic.Document.Pointer(kind, r)
}

// Problem builds a problem over r with the given fixes. Position, severity
// and inspection metadata are filled in by the engine.
func (ic *Context) Problem(r javatree.Range, message string, fixes ...quickfix.Action) Problem {
	return Problem{
		Message: message,
		Path:    ic.File.Path,
		Range:   r,
		Fixes:   fixes,
	}
}

// Option returns an inspection option, or defaultValue if not set.
func (ic *Context) Option(key string, defaultValue any) any {
	if ic.InspectionConfig == nil || ic.InspectionConfig.Options == nil {
		return defaultValue
	}
	if v, ok := ic.InspectionConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a boolean inspection option, or defaultValue.
func (ic *Context) OptionBool(key string, defaultValue bool) bool {
	if b, ok := ic.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a string list option, or defaultValue. Lists
// decoded from YAML arrive as []any and are converted.
func (ic *Context) OptionStringSlice(key string, defaultValue []string) []string {
	switch v := ic.Option(key, defaultValue).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
