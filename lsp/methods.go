package lsp

import (
	"encoding/json"
	"fmt"
	"time"

	"rockerboo/mockito-tools/types"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// LSP Protocol Method Implementations

// Initialize sends an initialize request to the language server.
// Java servers index the workspace here, so the timeout is generous.
func (lc *LanguageClient) Initialize(params protocol.InitializeParams) (*protocol.InitializeResult, error) {
	var result protocol.InitializeResult
	err := lc.SendRequest("initialize", params, &result, 60*time.Second)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Initialized sends the initialized notification
func (lc *LanguageClient) Initialized() error {
	return lc.SendNotification("initialized", protocol.InitializedParams{})
}

// Shutdown sends a shutdown request
func (lc *LanguageClient) Shutdown() error {
	var result json.RawMessage
	return lc.SendRequest("shutdown", nil, &result, 5*time.Second)
}

// Exit sends an exit notification
func (lc *LanguageClient) Exit() error {
	return lc.SendNotification("exit", nil)
}

// DidOpen sends a textDocument/didOpen notification
func (lc *LanguageClient) DidOpen(uri string, languageId protocol.LanguageKind, text string, version int32) error {
	params := protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			Uri:        protocol.DocumentUri(uri),
			LanguageId: languageId,
			Version:    version,
			Text:       text,
		},
	}
	return lc.SendNotification("textDocument/didOpen", params)
}

// DidClose sends a textDocument/didClose notification
func (lc *LanguageClient) DidClose(uri string) error {
	params := map[string]any{
		"textDocument": map[string]any{
			"uri": uri,
		},
	}
	return lc.SendNotification("textDocument/didClose", params)
}

// DocumentSymbols requests the symbol tree of a document. Servers that
// answer with flat SymbolInformation are normalized to DocumentSymbol.
func (lc *LanguageClient) DocumentSymbols(uri string) ([]types.DocumentSymbol, error) {
	params := map[string]any{
		"textDocument": protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
	}

	var raw json.RawMessage
	if err := lc.SendRequest("textDocument/documentSymbol", params, &raw, lc.timeout()); err != nil {
		return nil, err
	}

	symbols, err := decodeDocumentSymbols(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document symbols: %w", err)
	}

	return symbols, nil
}

// Hover returns the hover contents at a position flattened to markdown.
// An empty string means the server had nothing to show.
func (lc *LanguageClient) Hover(uri string, line, character uint32) (string, error) {
	params := protocol.HoverParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position: protocol.Position{
			Line:      line,
			Character: character,
		},
	}

	var raw json.RawMessage
	if err := lc.SendRequest("textDocument/hover", params, &raw, lc.timeout()); err != nil {
		return "", err
	}

	text, err := decodeHover(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode hover: %w", err)
	}

	return text, nil
}

func (lc *LanguageClient) timeout() time.Duration {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	if lc.requestTimeout <= 0 {
		return types.DefaultRequestTimeout
	}
	return lc.requestTimeout
}
