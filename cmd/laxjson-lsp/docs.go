package main

import (
	"context"
	"errors"
	"sync"

	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/parse"

	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	node    *ir.Node
	issues  []parse.Issue
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: map[string]*document{}}
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

// put parses content once and stores the tree alongside every syntax
// issue the parser accumulated, so diagnostics and formatting both work
// from one parse per edit.
func (ds *documentStore) put(uri string, content string, version int32) {
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
	}
	node, err := parse.Parse([]byte(content))
	if err != nil {
		var serr *parse.SyntaxError
		if errors.As(err, &serr) {
			doc.issues = serr.Issues
		} else {
			doc.issues = []parse.Issue{{Msg: err.Error()}}
		}
	} else {
		doc.node = node
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// publishDiagnostics sends one diagnostic per accumulated parse issue.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil || s.conn == nil {
		return
	}
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.issues))
	for i := range doc.issues {
		issue := &doc.issues[i]
		line, col := 0, 0
		if issue.Pos != nil {
			line, col = issue.Pos.LineCol()
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
				End:   protocol.Position{Line: uint32(line), Character: uint32(col + 1)},
			},
			Severity: protocol.DiagnosticSeverityError,
			Message:  issue.Msg,
			Source:   "laxjson",
		})
	}
	s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}
	// Sync is full-document, so the last change carries the whole text.
	content := doc.content
	for _, change := range params.ContentChanges {
		content = change.Text
	}
	s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
