// Package mcptool exposes the prompt pipeline as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/journalprompts/internal/domain/journal"
)

// ToolName is the name clients use to call the pipeline.
const ToolName = "generate_journal_prompts"

const serverName = "journal-prompt-generator"

// Generator is satisfied by *journal.Pipeline.
type Generator interface {
	Generate(ctx context.Context) journal.Result
}

// GenerateInput takes no arguments; every call runs the same instruction.
type GenerateInput struct{}

// GenerateOutput is the structured tool result.
type GenerateOutput struct {
	Prompts  []string `json:"prompts" jsonschema:"exactly three journal prompts"`
	Fallback bool     `json:"fallback" jsonschema:"true when the static fallback batch was served"`
}

// NewServer builds an MCP server with the prompt tool registered.
func NewServer(gen Generator, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        ToolName,
		Description: "Generate three distinct, open-ended journal-writing prompts.",
	}, generateHandler(gen))
	return srv
}

// Handler serves srv over the streamable HTTP transport.
func Handler(srv *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil)
}

func generateHandler(gen Generator) mcp.ToolHandlerFor[GenerateInput, GenerateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
		res := gen.Generate(ctx)
		out := GenerateOutput{Prompts: []string(res.Batch.Clone()), Fallback: res.Fallback}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: res.Batch.String()}},
		}, out, nil
	}
}
