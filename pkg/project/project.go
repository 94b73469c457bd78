package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/lang"
)

// Project ties a scope to its class index and open documents.
type Project struct {
	*Scope

	parser *javatree.Parser
	index  *ClassIndex
	jobs   int

	mu   sync.Mutex
	docs map[string]*OpenDocument
}

// OpenDocument is a document opened from disk together with the file
// metadata captured when it was read.
type OpenDocument struct {
	*editor.Document

	// Info describes the file on disk at open time.
	Info *fsutil.FileInfo
}

// Open builds a project rooted at (or above) start using cfg for scope.
func Open(start string, cfg *config.Config) (*Project, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	scope, err := NewScope(ScopeOptions{
		Start:            start,
		Ignore:           cfg.Ignore,
		RespectGitignore: cfg.Project.RespectGitignore,
		SourceRoots:      cfg.Project.SourceRoots,
	})
	if err != nil {
		return nil, err
	}

	return New(scope, cfg.Jobs), nil
}

// New creates a project over an existing scope.
func New(scope *Scope, jobs int) *Project {
	return &Project{
		Scope:  scope,
		parser: javatree.NewParser(),
		index:  NewClassIndex(),
		jobs:   jobs,
		docs:   make(map[string]*OpenDocument),
	}
}

// Parser returns the project's Java parser.
func (p *Project) Parser() *javatree.Parser {
	return p.parser
}

// Index returns the class index.
func (p *Project) Index() *ClassIndex {
	return p.index
}

// Load discovers the project's Java files and indexes them.
func (p *Project) Load(ctx context.Context) ([]string, error) {
	files, err := p.Discover(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.index.IndexFiles(ctx, p.parser, files, p.jobs); err != nil {
		return nil, fmt.Errorf("index project: %w", err)
	}
	return files, nil
}

// OpenDocument returns the open document for path, reading and parsing it on
// first use. Java files get a syntax tree; other files are opened as plain
// text.
func (p *Project) OpenDocument(ctx context.Context, path string) (*OpenDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if doc, ok := p.docs[abs]; ok && !doc.IsClosed() {
		return doc, nil
	}

	content, info, err := fsutil.ReadFile(ctx, abs)
	if err != nil {
		return nil, err
	}

	var parser editor.Parser = editor.PlainParser{}
	if lang.IsJava(abs) {
		parser = p.parser
	}

	doc, err := editor.NewDocument(ctx, parser, abs, content)
	if err != nil {
		return nil, err
	}
	if lang.IsJava(abs) {
		p.index.Add(doc.File())
	}

	opened := &OpenDocument{Document: doc, Info: info}
	p.docs[abs] = opened
	return opened, nil
}

// Reindex refreshes the index entries of an open document after an edit.
func (p *Project) Reindex(doc *editor.Document) {
	if lang.IsJava(doc.Path()) {
		p.index.Add(doc.File())
	}
}

// CloseDocument closes and forgets the document for path.
func (p *Project) CloseDocument(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if doc, ok := p.docs[abs]; ok {
		doc.Close()
		delete(p.docs, abs)
	}
}

// Documents returns the open documents ordered by path.
func (p *Project) Documents() []*OpenDocument {
	p.mu.Lock()
	defer p.mu.Unlock()

	docs := make([]*OpenDocument, 0, len(p.docs))
	for _, doc := range p.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path() < docs[j].Path()
	})
	return docs
}
