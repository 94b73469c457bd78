package projectview

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// Matches reports whether text matches a speed search pattern. The pattern
// matches a case-insensitive prefix of text, or a sequence of camel-hump
// word prefixes: "CTCN" and "callToCl" both match "CallToClassName".
// Spaces in the pattern are ignored.
func Matches(text, pattern string) bool {
	pattern = strings.ReplaceAll(pattern, " ", "")
	if pattern == "" {
		return true
	}
	if hasFoldPrefix(text, pattern) {
		return true
	}

	words := camelcase.Split(text)
	if len(words) == 0 {
		return false
	}
	return matchHumps([]rune(pattern), words, 0, true)
}

// matchHumps matches pattern against word prefixes starting at word i. The
// first chunk must start at word i; later chunks may skip words.
func matchHumps(pattern []rune, words []string, i int, anchored bool) bool {
	if len(pattern) == 0 {
		return true
	}
	for w := i; w < len(words); w++ {
		word := []rune(words[w])
		if isSeparator(word) {
			continue
		}
		for k := min(len(pattern), len(word)); k >= 1; k-- {
			if foldEqual(pattern[:k], word[:k]) && matchHumps(pattern[k:], words, w+1, false) {
				return true
			}
		}
		if anchored {
			return false
		}
	}
	return false
}

// MatchesNode applies the speed search rules of the project view. For
// directories and packages the name is lowercased; a pattern containing
// "." must match the whole name, otherwise any dot-separated segment may
// match. Other nodes use Matches on their name.
func MatchesNode(n *Node, pattern string) bool {
	if !n.Kind.IsContainer() {
		return Matches(n.Name, pattern)
	}
	name := strings.ToLower(n.Name)
	if strings.Contains(pattern, ".") {
		return Matches(name, pattern)
	}
	for _, token := range strings.Split(name, ".") {
		if token != "" && Matches(token, pattern) {
			return true
		}
	}
	return false
}

// Search returns the nodes matching pattern in display order, expanded or
// not.
func (t *Tree) Search(pattern string) []*Node {
	var out []*Node
	t.Walk(func(n *Node, _ int) bool {
		if MatchesNode(n, pattern) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindNext returns the first visible node after the node with id that
// matches pattern, wrapping around. An empty id starts at the top.
func (t *Tree) FindNext(id, pattern string) (*Node, bool) {
	rows := t.Rows()
	start := 0
	for i, row := range rows {
		if row.Node.ID == id {
			start = i + 1
			break
		}
	}
	for i := range rows {
		row := rows[(start+i)%len(rows)]
		if MatchesNode(row.Node, pattern) {
			return row.Node, true
		}
	}
	return nil, false
}

// Reveal expands the ancestors of every node matching pattern and selects
// them. It returns the number of matches.
func (t *Tree) Reveal(pattern string) int {
	matches := t.Search(pattern)
	ids := make([]string, 0, len(matches))
	for _, n := range matches {
		if n.Parent != nil {
			t.Expand(n.Parent.ID)
		}
		ids = append(ids, n.ID)
	}
	t.Select(ids...)
	return len(matches)
}

func hasFoldPrefix(text, prefix string) bool {
	return len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix)
}

func foldEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

func isSeparator(word []rune) bool {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
