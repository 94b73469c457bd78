package quickfix

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for fix labels.
const (
	MsgInsertSuperText   = "quickfix.insert.super.text"
	MsgInsertSuperFamily = "quickfix.insert.super.family"
	MsgInsertNewText     = "quickfix.insert.new.text"
	MsgInsertNewFamily   = "quickfix.insert.new.family"
	MsgInsertNewWithName = "quickfix.insert.new.named"
)

// supported lists the catalog languages; the first is the fallback.
//
//nolint:gochecknoglobals // Read-only language list.
var supported = []language.Tag{language.English, language.German}

//nolint:gochecknoglobals // Read-only message table.
var translations = map[language.Tag]map[string]string{
	language.English: {
		MsgInsertSuperText:   "Insert 'super();'",
		MsgInsertSuperFamily: "Insert super constructor call",
		MsgInsertNewText:     "Insert new",
		MsgInsertNewFamily:   "Insert new",
		MsgInsertNewWithName: "Insert 'new %s'",
	},
	language.German: {
		MsgInsertSuperText:   "'super();' einfügen",
		MsgInsertSuperFamily: "Aufruf des Superkonstruktors einfügen",
		MsgInsertNewText:     "'new' einfügen",
		MsgInsertNewFamily:   "'new' einfügen",
		MsgInsertNewWithName: "'new %s' einfügen",
	},
}

// Messages looks up localized fix labels.
type Messages struct {
	printer *message.Printer
}

// NewMessages creates a message set for tag, falling back to English for
// unsupported languages.
func NewMessages(tag language.Tag) *Messages {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, table := range translations {
		for key, msg := range table {
			// SetString only fails on malformed messages; the table is static.
			_ = builder.SetString(lang, key, msg)
		}
	}

	_, idx, _ := language.NewMatcher(supported).Match(tag)
	return &Messages{printer: message.NewPrinter(supported[idx], message.Catalog(builder))}
}

// DefaultMessages returns the English message set.
func DefaultMessages() *Messages {
	return NewMessages(language.English)
}

// Get returns the message for key formatted with args.
func (m *Messages) Get(key string, args ...any) string {
	return m.printer.Sprintf(key, args...)
}
