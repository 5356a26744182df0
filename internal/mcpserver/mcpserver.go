// Package mcpserver exposes the operation registry as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"eagle-mcp/internal/eagle"
	"eagle-mcp/internal/logger"
	"eagle-mcp/internal/operation"
)

const (
	serverName   = "Eagle MCP Server"
	instructions = "An MCP server for the Eagle app. Tools return {\"status\":\"success\",\"data\":...} " +
		"or {\"status\":\"error\",\"message\":...}."
)

// New builds an MCP server with one tool per registered operation.
func New(reg *operation.Registry, client *eagle.Client, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)
	log := logger.ForComponent("mcp")
	for _, d := range reg.List() {
		tool, err := toolFor(d)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", d.Name, err)
		}
		s.AddTool(tool, handlerFor(client, d, log))
	}
	return s, nil
}

func toolFor(d operation.Descriptor) (mcp.Tool, error) {
	schema, err := json.Marshal(d.Schema())
	if err != nil {
		return mcp.Tool{}, err
	}
	tool := mcp.NewToolWithRawSchema(d.Name, d.Description, schema)
	a := d.Annotations()
	for _, opt := range []mcp.ToolOption{
		mcp.WithTitleAnnotation(d.Title),
		mcp.WithReadOnlyHintAnnotation(a["readOnlyHint"]),
		mcp.WithDestructiveHintAnnotation(a["destructiveHint"]),
		mcp.WithIdempotentHintAnnotation(a["idempotentHint"]),
		mcp.WithOpenWorldHintAnnotation(a["openWorldHint"]),
	} {
		opt(&tool)
	}
	return tool, nil
}

func handlerFor(client *eagle.Client, d operation.Descriptor, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := operation.Invoke(ctx, client, d, req.GetArguments())
		if err != nil {
			if errors.Is(err, operation.ErrValidation) {
				log.Debug("rejected tool call", "tool", d.Name, "err", err)
				return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
			}
			return nil, err
		}
		return resultFor(resp)
	}
}

func resultFor(resp eagle.Response) (*mcp.CallToolResult, error) {
	text, err := json.Marshal(resp.Envelope)
	if err != nil {
		return nil, err
	}
	res := mcp.NewToolResultText(string(text))
	res.IsError = !resp.Envelope.OK()
	if resp.Envelope.OK() && len(resp.Content) > 0 && strings.HasPrefix(resp.ContentType, "image/") {
		res.Content = append(res.Content, mcp.NewImageContent(base64.StdEncoding.EncodeToString(resp.Content), resp.ContentType))
	}
	return res, nil
}

// ServeStdio runs the MCP protocol over in/out until ctx is cancelled or in is
// closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(logger.StdLogger("mcp", slog.LevelError))
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
