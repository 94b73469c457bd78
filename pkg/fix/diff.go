package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line present only in the modified content.
	DiffLineAdd

	// DiffLineRemove is a line present only in the original content.
	DiffLineRemove
)

// DiffLine is a single line of a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a contiguous group of changes with surrounding context.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is a unified diff between two versions of a file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff computes a line-based unified diff of original and modified.
// It returns nil when the contents are identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	dmp := diffmatchpatch.New()
	origChars, modChars, lineArray := dmp.DiffLinesToChars(string(original), string(modified))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(origChars, modChars, false), lineArray)

	lines := flattenDiffs(diffs)
	hunks := groupHunks(lines)
	if len(hunks) == 0 {
		return nil
	}

	result := &Diff{Path: path, Hunks: hunks}
	for _, line := range lines {
		switch line.Kind {
		case DiffLineAdd:
			result.Additions++
		case DiffLineRemove:
			result.Deletions++
		case DiffLineContext:
		}
	}
	return result
}

// flattenDiffs expands diffmatchpatch chunks (which may hold many lines) into
// one DiffLine per line.
func flattenDiffs(diffs []diffmatchpatch.Diff) []DiffLine {
	var out []DiffLine
	for _, d := range diffs {
		kind := DiffLineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffLineAdd
		case diffmatchpatch.DiffDelete:
			kind = DiffLineRemove
		case diffmatchpatch.DiffEqual:
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out = append(out, DiffLine{Kind: kind, Content: line})
		}
	}
	return out
}

// groupHunks cuts the flat line list into hunks, merging changes whose
// context windows touch.
func groupHunks(lines []DiffLine) []DiffHunk {
	var changes []int
	for idx, line := range lines {
		if line.Kind != DiffLineContext {
			changes = append(changes, idx)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	// origAt[i] and modAt[i] are the 1-based line numbers of lines[i] on each side.
	origAt := make([]int, len(lines)+1)
	modAt := make([]int, len(lines)+1)
	origAt[0], modAt[0] = 1, 1
	for idx, line := range lines {
		origAt[idx+1], modAt[idx+1] = origAt[idx], modAt[idx]
		if line.Kind != DiffLineAdd {
			origAt[idx+1]++
		}
		if line.Kind != DiffLineRemove {
			modAt[idx+1]++
		}
	}

	var hunks []DiffHunk
	for first := 0; first < len(changes); {
		last := first
		for last+1 < len(changes) && changes[last+1]-changes[last] <= 2*contextLines+1 {
			last++
		}

		from := max(0, changes[first]-contextLines)
		to := min(len(lines), changes[last]+contextLines+1)

		hunk := DiffHunk{
			OriginalStart: origAt[from],
			ModifiedStart: modAt[from],
			Lines:         slices.Clone(lines[from:to]),
		}
		countHunk(&hunk)
		hunks = append(hunks, hunk)

		first = last + 1
	}
	return hunks
}

func countHunk(h *DiffHunk) {
	for _, line := range h.Lines {
		switch line.Kind {
		case DiffLineContext:
			h.OriginalCount++
			h.ModifiedCount++
		case DiffLineRemove:
			h.OriginalCount++
		case DiffLineAdd:
			h.ModifiedCount++
		}
	}
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			prefix := " "
			switch line.Kind {
			case DiffLineAdd:
				prefix = "+"
			case DiffLineRemove:
				prefix = "-"
			case DiffLineContext:
			}
			builder.WriteString(prefix)
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// HasChanges reports whether the diff holds any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}
