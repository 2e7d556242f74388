package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/mcpserver"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Mockito tools over MCP on stdio (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	logger.Info("Starting mockito-tools MCP server...")

	b, err := a.newBridge()
	if err != nil {
		return err
	}
	defer b.CloseAllClients()

	mcpServer := mcpserver.SetupMCPServer(b)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stdioServer := server.NewStdioServer(mcpServer)
	stdioServer.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	err = stdioServer.Listen(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server error: " + err.Error())
		return fmt.Errorf("MCP server error: %w", err)
	}

	logger.Info("MCP server stopped")

	return nil
}
