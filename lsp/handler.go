package lsp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"
	"rockerboo/mockito-tools/logger"
)

// ClientHandler handles incoming messages from the language server
type ClientHandler struct {
	client *LanguageClient
}

func (h *ClientHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "textDocument/publishDiagnostics":
		logger.Debug(fmt.Sprintf("Diagnostics: %s", rawParams(req)))

	case "window/showMessage", "window/logMessage":
		var params struct {
			Type    int    `json:"type"`
			Message string `json:"message"`
		}
		if req.Params != nil && json.Unmarshal(*req.Params, &params) == nil {
			logger.Debug(fmt.Sprintf("Server message (%d): %s", params.Type, params.Message))
		}

	case "$/progress", "language/status", "language/progressReport", "language/eventNotification":
		// jdtls reports indexing progress through these
		logger.Debug(fmt.Sprintf("%s: %s", req.Method, rawParams(req)))

	case "client/registerCapability", "client/unregisterCapability", "window/workDoneProgress/create":
		if err := conn.Reply(ctx, req.ID, nil); err != nil {
			logger.Debug(fmt.Sprintf("Failed to reply to %s: %v", req.Method, err))
		}

	case "workspace/configuration":
		// One null entry per requested item
		var params struct {
			Items []json.RawMessage `json:"items"`
		}
		if req.Params != nil {
			_ = json.Unmarshal(*req.Params, &params)
		}

		if err := conn.Reply(ctx, req.ID, make([]any, len(params.Items))); err != nil {
			logger.Debug(fmt.Sprintf("Failed to reply to configuration: %v", err))
		}

	default:
		if req.Notif {
			logger.Debug(fmt.Sprintf("Ignoring notification %s", req.Method))
			return
		}

		logger.Error(fmt.Sprintf("Unhandled method: %s with params: %s", req.Method, rawParams(req)))

		err := &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: "Method not found",
		}
		if replyErr := conn.ReplyWithError(ctx, req.ID, err); replyErr != nil {
			logger.Error(fmt.Sprintf("Failed to reply with error: %v", replyErr))
		}
	}
}

func rawParams(req *jsonrpc2.Request) string {
	if req.Params == nil {
		return ""
	}
	return string(*req.Params)
}
