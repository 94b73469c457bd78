package lang

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by Detect.
const (
	LangJava    = "java"
	LangPython  = "python"
	LangUnknown = ""
)

//nolint:gochecknoglobals // Read-only lookup table.
var commenters = map[string]Commenter{
	LangJava:   Java,
	LangPython: Python,
}

// Detect returns the language of a file from its name and, when the name is
// not conclusive, its content.
func Detect(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if len(content) == 0 {
		return LangUnknown
	}
	return normalize(enry.GetLanguage(filepath.Base(path), content))
}

// CommenterFor returns the commenter registered for a language.
func CommenterFor(language string) (Commenter, bool) {
	c, ok := commenters[language]
	return c, ok
}

// CommenterForFile detects the file's language and returns its commenter.
func CommenterForFile(path string, content []byte) (Commenter, bool) {
	return CommenterFor(Detect(path, content))
}

// IsJava reports whether path names a Java source file.
func IsJava(path string) bool {
	return Detect(path, nil) == LangJava
}

func normalize(lang string) string {
	return strings.ToLower(lang)
}
