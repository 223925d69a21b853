// Package mcp exposes the assistant over the Model Context Protocol so MCP
// hosts (editors, agent runtimes) can call it as a tool via stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nverdier/sherpa/internal/infra/llm"
	"github.com/nverdier/sherpa/internal/version"
)

// AskArgs is the input schema of the "ask" tool.
type AskArgs struct {
	Prompt string `json:"prompt" jsonschema:"the user prompt to forward to the assistant"`
}

// NewServer builds an MCP server exposing the "ask" tool over the given
// provider client.
func NewServer(client llm.Client) *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{
		Name:    "sherpa",
		Version: version.Version,
	}, nil)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "ask",
		Description: "Ask the shopping assistant. Returns a tagged result: general_response, product_search, product_analysis, recommendation or error.",
	}, askHandler(client))

	return server
}

// Run serves MCP over stdio until the context is cancelled or the host
// disconnects.
func Run(ctx context.Context, client llm.Client) error {
	if err := NewServer(client).Run(ctx, &sdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp: serve: %w", err)
	}
	return nil
}

// askHandler adapts the provider client to the MCP tool signature. Provider
// failures come back as an error-kind result in the payload, never as a
// protocol error; the host always gets well-formed JSON.
func askHandler(client llm.Client) func(context.Context, *sdk.CallToolRequest, AskArgs) (*sdk.CallToolResult, any, error) {
	return func(ctx context.Context, _ *sdk.CallToolRequest, args AskArgs) (*sdk.CallToolResult, any, error) {
		if args.Prompt == "" {
			return nil, nil, fmt.Errorf("prompt is required")
		}

		res := client.ProcessRequest(ctx, args.Prompt)
		payload, err := json.Marshal(res)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal result: %w", err)
		}

		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: string(payload)}},
		}, nil, nil
	}
}
