// Package lsp publishes side-effect analysis findings as LSP diagnostics.
// Grounded on the teacher's internal/lsp/handler.go: a mutex-guarded
// per-file cache, updated on open/change, feeding a sendDiagnosticNotification
// call. Semantic-token and completion support are dropped — spec.md's
// external interface (SPEC_FULL.md §11.3) is diagnostics-only.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Handler implements the glsp protocol.Handler callbacks for one workspace.
// Each open file gets a sequential fileID; reparsing a changed file reuses
// it so diagnostics stay attributed to the same URI.
type Handler struct {
	mu      sync.Mutex
	content map[string]string
	fileIDs map[string]int
	nextID  int
}

func NewHandler() *Handler {
	return &Handler{
		content: map[string]string{},
		fileIDs: map[string]int{},
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("sigtrace-lsp: initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{Name: "sigtrace"},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.analyzeAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if full, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			return h.analyzeAndPublish(ctx, params.TextDocument.URI, full.Text)
		}
	}
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(string(params.TextDocument.URI))
	if err != nil {
		return nil
	}
	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

func (h *Handler) analyzeAndPublish(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(string(uri))
	if err != nil {
		return fmt.Errorf("invalid uri %s: %w", uri, err)
	}

	h.mu.Lock()
	h.content[path] = text
	fileID, ok := h.fileIDs[path]
	if !ok {
		fileID = h.nextID
		h.fileIDs[path] = fileID
		h.nextID++
	}
	h.mu.Unlock()

	rc, parseErrs := AnalyzeSource(text, fileID)

	var diagnostics []protocol.Diagnostic
	diagnostics = append(diagnostics, parseErrorDiagnostics(text, parseErrs)...)
	diagnostics = append(diagnostics, reportDiagnostics(rc)...)
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid uri %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 2 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
