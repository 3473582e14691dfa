// Package lspserver implements a language server over go.lsp.dev's
// jsonrpc2/protocol/uri packages, grounded on
// miaomiao1992-dingo/pkg/lsp/server.go's request-dispatch shape — a
// Server holding open documents, a jsonrpc2.Handler built from a method
// switch, and diagnostics pushed back to the client with
// conn.Notify("textDocument/publishDiagnostics", ...). Unlike dingo's
// server, which proxies to a second LSP (gopls) for a generated Go
// file, this one has no target language to proxy to: every diagnostic
// comes directly from internal/pipeline run against the edited buffer.
package lspserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/pipeline"
)

// Server is the language server's session state: one open-document
// table shared by every connection it serves (a single editor process
// connects over stdio, same as dingo-lsp).
type Server struct {
	cfg *config.Config
	log io.Writer

	mu      sync.Mutex
	docs    map[uri.URI]string
	conn    jsonrpc2.Conn
	connCtx context.Context
}

// NewServer builds a Server that checks documents against cfg (the
// project's nyx.toml, or its defaults), logging to log.
func NewServer(cfg *config.Config, log io.Writer) *Server {
	return &Server{cfg: cfg, log: log, docs: make(map[uri.URI]string)}
}

// Serve runs the server over rwc (ordinarily stdio) until the
// connection closes, the same stdio-transport wiring dingo-lsp's main
// uses: NewStream, NewConn, then block on conn.Done().
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)

	s.mu.Lock()
	s.conn = conn
	s.connCtx = ctx
	s.mu.Unlock()

	conn.Go(ctx, jsonrpc2.ReplyHandler(s.handle))
	<-conn.Done()
	return nil
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, format+"\n", args...)
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case "initialize":
		return s.handleInitialize(ctx, reply, req)
	case "initialized", "shutdown", "exit":
		return reply(ctx, nil, nil)
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, reply, req)
	case "textDocument/didSave":
		return s.handleDidSave(ctx, reply, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, reply, req)
	default:
		return reply(ctx, nil, fmt.Errorf("method not supported: %s", req.Method()))
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, fmt.Errorf("invalid initialize params: %w", err))
	}

	result := protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: false},
			},
		},
		ServerInfo: &protocol.ServerInfo{Name: "nyxc-lsp", Version: "0.1.0"},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.setDoc(params.TextDocument.URI, params.TextDocument.Text)
	s.publish(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}
	// TextDocumentSyncKindFull always sends the whole buffer as one
	// change, the simplest mode to implement correctly without tracking
	// incremental ranges ourselves.
	full := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.setDoc(params.TextDocument.URI, full)
	s.publish(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.publish(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return reply(ctx, nil, nil)
}

func (s *Server) setDoc(u uri.URI, text string) {
	s.mu.Lock()
	s.docs[u] = text
	s.mu.Unlock()
}

// publish runs the pipeline over the document's current buffer and
// pushes the result as one publishDiagnostics notification. result.ID
// (pipeline.Context.ID) is logged alongside the publish so multiple
// rapid edits can be told apart in server logs — a correlation id the
// original never needed, since it only ever ran once per process.
func (s *Server) publish(ctx context.Context, u uri.URI) {
	s.mu.Lock()
	text := s.docs[u]
	conn := s.conn
	connCtx := s.connCtx
	s.mu.Unlock()

	if conn == nil {
		return
	}

	result := pipeline.Run(text, s.cfg)
	s.logf("publish %s: run %s, %d diagnostic(s)", u, result.ID, result.Diags.Len())

	lspDiags := make([]protocol.Diagnostic, 0, result.Diags.Len())
	for _, d := range result.Diags.All() {
		lspDiags = append(lspDiags, toProtocolDiagnostic(text, d))
	}

	publishCtx := connCtx
	if publishCtx == nil {
		publishCtx = ctx
	}
	_ = conn.Notify(publishCtx, "textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         u,
		Diagnostics: lspDiags,
	})
}

func toProtocolDiagnostic(source string, d diag.Diagnostic) protocol.Diagnostic {
	sev := protocol.DiagnosticSeverityWarning
	if d.Severity == diag.Error {
		sev = protocol.DiagnosticSeverityError
	}

	rng := protocol.Range{}
	msg := d.Title
	if len(d.Labels) > 0 {
		lbl := d.Labels[0]
		startLine, startCol := lineCol(source, lbl.Span.Start)
		endLine, endCol := lineCol(source, lbl.Span.End)
		rng = protocol.Range{
			Start: protocol.Position{Line: uint32(startLine), Character: uint32(startCol)},
			End:   protocol.Position{Line: uint32(endLine), Character: uint32(endCol)},
		}
		if lbl.Message != "" {
			msg = fmt.Sprintf("%s: %s", d.Title, lbl.Message)
		}
	}

	return protocol.Diagnostic{
		Range:    rng,
		Severity: sev,
		Source:   "nyxc",
		Message:  msg,
	}
}

// lineCol converts a byte offset to 0-indexed LSP line/character
// coordinates, matching protocol.Position's zero-based convention
// (spec.md's own Span is 0-indexed byte offsets, so only the line split
// is needed here, not a +1/-1 adjustment like present.Renderer's
// 1-indexed terminal output).
func lineCol(source string, offset int) (line, col int) {
	lineStart := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart
}
