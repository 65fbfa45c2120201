package codebase

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/source"
)

const lsName = "dusk"

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		codebase: New("."),
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Codebase returns the documents the server knows about.
func (ls *LSPServer) Codebase() *Codebase {
	return ls.codebase
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return ls.codebase.ScanAll()
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, f.Diagnostics)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			f := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, f.Diagnostics)
		}
	}
	return nil
}

// Diagnostics of a closed document are cleared; the parsed file stays
// known so symbols still resolve.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var f *File
	if params.Text != nil {
		f = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if f, err = ls.codebase.ScanFile(path); err != nil {
		log.Warningf("reading saved %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, f.Diagnostics)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil {
		return nil, nil
	}
	return symbolsOf(f.Source, f.Items), nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []diagnostic.Diagnostic) {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, toProtocolDiagnostic(d))
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: out,
	})
}

func toProtocolDiagnostic(d diagnostic.Diagnostic) protocol.Diagnostic {
	severity := toProtocolSeverity(d.Severity)
	name := lsName
	return protocol.Diagnostic{
		Range:    toProtocolRange(d.Span.Source(), d.Span.Start(), d.Span.End()),
		Severity: &severity,
		Source:   &name,
		Message:  d.Message(),
	}
}

func toProtocolSeverity(s diagnostic.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnostic.Warning:
		return protocol.DiagnosticSeverityWarning
	case diagnostic.Hint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func toProtocolRange(src *source.Source, start, end int) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(src, start),
		End:   toProtocolPosition(src, end),
	}
}

// toProtocolPosition converts a byte offset to a zero-based line and a
// character offset counted in UTF-16 code units, as LSP clients expect.
func toProtocolPosition(src *source.Source, offset int) protocol.Position {
	before := src.Text()[:offset]
	line := strings.Count(before, "\n")
	var character int
	for _, r := range before[strings.LastIndexByte(before, '\n')+1:] {
		character += utf16.RuneLen(r)
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}

func symbolsOf(src *source.Source, items []ast.Item) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, item := range items {
		if sym, ok := symbolOf(src, item); ok {
			out = append(out, sym)
		}
	}
	return out
}

func symbolOf(src *source.Source, item ast.Item) (protocol.DocumentSymbol, bool) {
	switch n := item.(type) {
	case *ast.Metadata:
		if n.Subject != nil {
			return symbolOf(src, n.Subject)
		}
	case *ast.Module:
		if n.Name != nil {
			return newSymbol(src, n, n.Name, protocol.SymbolKindModule), true
		}
	case *ast.Struct:
		if n.Name == nil {
			break
		}
		sym := newSymbol(src, n, n.Name, protocol.SymbolKindStruct)
		for _, field := range n.Fields {
			if pair, ok := field.(*ast.Pair); ok {
				if name, ok := pair.Key.(*ast.Ident); ok {
					sym.Children = append(sym.Children, newSymbol(src, pair, name, protocol.SymbolKindField))
				}
			}
		}
		return sym, true
	case *ast.Function:
		if n.Name == nil {
			break
		}
		sym := newSymbol(src, n, n.Name, protocol.SymbolKindFunction)
		if n.Body != nil {
			sym.Children = symbolsOf(src, n.Body.Items)
		}
		return sym, true
	case *ast.Assignment:
		if name, ok := n.Target.(*ast.Ident); ok && n.Kind == ast.ScopeAssign {
			return newSymbol(src, n, name, protocol.SymbolKindVariable), true
		}
	}
	return protocol.DocumentSymbol{}, false
}

func newSymbol(src *source.Source, node ast.Node, name *ast.Ident, kind protocol.SymbolKind) protocol.DocumentSymbol {
	span, at := node.Span(), name.Span()
	return protocol.DocumentSymbol{
		Name:           name.Name,
		Kind:           kind,
		Range:          toProtocolRange(src, span.Start, span.End),
		SelectionRange: toProtocolRange(src, at.Start, at.End),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
