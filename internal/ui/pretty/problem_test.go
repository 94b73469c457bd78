package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
)

func TestFormatProblem(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	p := &inspect.Problem{
		InspectionID:   "JF001",
		InspectionName: "missing-super-call",
		Message:        "There is no default constructor available in 'Base'",
		Severity:       config.SeverityError,
		Path:           "src/Child.java",
		Suggestion:     "Insert 'super();'",
		StartLine:      4,
		StartColumn:    5,
	}

	got := styles.FormatProblem(p, true, "    Child() {", config.InspectionFormatCombined)

	assert.Contains(t, got, "src/Child.java:4:5")
	assert.Contains(t, got, "error")
	assert.Contains(t, got, "(JF001/missing-super-call)")
	assert.Contains(t, got, "        ^")
	assert.Contains(t, got, "Suggestion: Insert 'super();'")

	got = styles.FormatProblem(p, false, "    Child() {", config.InspectionFormatID)
	assert.Contains(t, got, "(JF001)")
	assert.NotContains(t, got, "Child() {")
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "fatal", styles.FormatSeverity(config.Severity("fatal")))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "A.java", styles.FormatFileHeader("A.java", 0))
	assert.Equal(t, "A.java (1 problem)", styles.FormatFileHeader("A.java", 1))
	assert.Equal(t, "A.java (3 problems)", styles.FormatFileHeader("A.java", 3))
}
