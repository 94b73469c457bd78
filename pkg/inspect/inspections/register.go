// Package inspections holds the built-in Java inspections.
package inspections

import "github.com/yaklabco/javafix/pkg/inspect"

// RegisterAll registers all built-in inspections with the given registry.
func RegisterAll(registry *inspect.Registry) {
	registry.Register(NewMissingSuperCall()) // JF001
	registry.Register(NewCallToClassName())  // JF002
}

// NewRegistry returns a registry holding the built-in inspections.
func NewRegistry() *inspect.Registry {
	registry := inspect.NewRegistry()
	RegisterAll(registry)
	return registry
}
