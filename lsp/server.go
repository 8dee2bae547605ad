// Package lsp は dartgenc を Language Server として公開する。
// 開いているドキュメントの全文を保持し、コードアクションと
// executeCommand から生成パイプラインを呼び出す。
package lsp

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/Yamashou/dartgenc/config"
	"github.com/Yamashou/dartgenc/dartsrc"
	"github.com/Yamashou/dartgenc/errors"
	"github.com/Yamashou/dartgenc/logger"
	"github.com/Yamashou/dartgenc/plugins"
)

const lsName = "dartgenc"

const (
	// GenerateFromJSONCommand takes [uri, line, jsonText] with a 1-based line.
	GenerateFromJSONCommand = "dartgenc.generateFromJson"
	// GenerateFromFieldsCommand takes [uri, line]. Line 0 means every class.
	GenerateFromFieldsCommand = "dartgenc.generateFromFields"
)

// ConfigLoader resolves the generator config for a document directory.
type ConfigLoader func(dir string) (*config.Config, error)

type Server struct {
	handler    protocol.Handler
	server     *server.Server
	version    string
	loadConfig ConfigLoader

	mu   sync.RWMutex
	docs map[protocol.DocumentUri][]byte
}

func NewServer(version string, loadConfig ConfigLoader) *Server {
	s := &Server{
		version:    version,
		loadConfig: loadConfig,
		docs:       make(map[protocol.DocumentUri][]byte),
	}

	s.handler = protocol.Handler{
		Initialize:              s.initialize,
		Initialized:             s.initialized,
		Shutdown:                s.shutdown,
		SetTrace:                s.setTrace,
		TextDocumentDidOpen:     s.textDocumentDidOpen,
		TextDocumentDidChange:   s.textDocumentDidChange,
		TextDocumentDidClose:    s.textDocumentDidClose,
		TextDocumentCodeAction:  s.textDocumentCodeAction,
		WorkspaceExecuteCommand: s.workspaceExecuteCommand,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.CodeActionProvider = true
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{GenerateFromJSONCommand, GenerateFromFieldsCommand},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	logger.Logger.Info("language server initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setDocument(params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		if change, ok := params.ContentChanges[i].(protocol.TextDocumentContentChangeEventWhole); ok {
			s.setDocument(params.TextDocument.URI, []byte(change.Text))
			return nil
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	src, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset := dartsrc.OffsetOf(src, int(params.Range.Start.Line), int(params.Range.Start.Character))
	edit, err := s.generate(params.TextDocument.URI, src, plugins.Request{
		Mode:   plugins.FieldsMode,
		Offset: offset,
	})
	if err != nil {
		// カーソルがクラス外ならアクションを出さないだけ
		if errors.IsClassNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if edit == nil {
		return nil, nil
	}

	return []protocol.CodeAction{newCodeAction(*edit)}, nil
}

func (s *Server) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	args, err := parseCommandArgs(params.Command, params.Arguments)
	if err != nil {
		return nil, err
	}

	src, ok := s.document(args.uri)
	if !ok {
		return nil, errors.Newf("document %s is not open", args.uri)
	}

	req := plugins.Request{Mode: plugins.FieldsMode, Offset: plugins.NoOffset}
	if params.Command == GenerateFromJSONCommand {
		req.Mode = plugins.JSONMode
		req.Sample = []byte(args.sample)
	}
	if args.line > 0 {
		req.Offset = dartsrc.LineOffset(src, args.line)
	}

	edit, err := s.generate(args.uri, src, req)
	if err != nil {
		return nil, err
	}
	if edit == nil {
		return nil, nil
	}

	label := lsName
	var result protocol.ApplyWorkspaceEditResponse
	ctx.Call(string(protocol.ServerWorkspaceApplyEdit), protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit:  *edit,
	}, &result)
	if !result.Applied {
		logger.Logger.Warnw("client rejected edit", logger.FieldURI, args.uri)
	}

	return nil, nil
}

// generate runs one generation against the cached text and returns the edit,
// or nil when nothing changes.
func (s *Server) generate(uri protocol.DocumentUri, src []byte, req plugins.Request) (*protocol.WorkspaceEdit, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, errors.Wrap(err, "invalid document uri")
	}

	cfg, err := s.loadConfig(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config file")
	}

	req.Source = src
	result, err := plugins.GenerateCode(cfg, req)
	if err != nil {
		logger.Logger.Warnw("generation failed", logger.FieldURI, uri, logger.FieldError, err)
		return nil, err
	}
	if bytes.Equal(result.Source, src) {
		return nil, nil
	}

	edit := replaceDocument(uri, src, result.Source)
	return &edit, nil
}

func (s *Server) setDocument(uri protocol.DocumentUri, text []byte) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

func (s *Server) document(uri protocol.DocumentUri) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.docs[uri]
	return src, ok
}

func newCodeAction(edit protocol.WorkspaceEdit) protocol.CodeAction {
	kind := protocol.CodeActionKindRefactorRewrite
	return protocol.CodeAction{
		Title: "Generate JSON serialization members",
		Kind:  &kind,
		Edit:  &edit,
	}
}

// replaceDocument replaces the whole document in one edit.
func replaceDocument(uri protocol.DocumentUri, oldText, newText []byte) protocol.WorkspaceEdit {
	line, character := dartsrc.PositionOf(oldText, len(oldText))
	return protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			uri: {{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 0},
					End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)},
				},
				NewText: string(newText),
			}},
		},
	}
}

type commandArgs struct {
	uri    protocol.DocumentUri
	line   int
	sample string
}

func parseCommandArgs(command string, raw []any) (commandArgs, error) {
	var args commandArgs

	want := 2
	switch command {
	case GenerateFromJSONCommand:
		want = 3
	case GenerateFromFieldsCommand:
	default:
		return args, errors.Newf("unknown command %q", command)
	}
	if len(raw) < want {
		return args, errors.Newf("%s expects %d arguments, got %d", command, want, len(raw))
	}

	uri, ok := raw[0].(string)
	if !ok || uri == "" {
		return args, errors.Newf("%s: argument 0 must be a document uri", command)
	}
	args.uri = uri

	// JSON の数値は float64 で届く
	switch v := raw[1].(type) {
	case float64:
		args.line = int(v)
	case int:
		args.line = v
	default:
		return args, errors.Newf("%s: argument 1 must be a line number", command)
	}

	if want == 3 {
		sample, ok := raw[2].(string)
		if !ok {
			return args, errors.Newf("%s: argument 2 must be the json text", command)
		}
		args.sample = sample
	}

	return args, nil
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
