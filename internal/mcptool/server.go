// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcptool exposes document conversion and directory extraction as
// tools over the Model Context Protocol. The server side runs over stdio,
// spawned as a subprocess by the interactive client; the same registration
// works on any MCP transport.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/companydir/internal/convert"
	"github.com/pdiddy/companydir/internal/tabular"
	"github.com/pdiddy/companydir/pkg/types"
)

// Tool names advertised by the server. The convert tool name is part of the
// protocol surface the interactive client prompts against.
const (
	ToolConvert = "convert_to_markdown"
	ToolExtract = "extract_company_directory"
)

var serverImpl = &mcp.Implementation{Name: "companydir", Version: "0.1.0"}

// Server wires a conversion backend and the table extractor into MCP tools.
type Server struct {
	converter convert.Converter
	client    *http.Client
	httpCfg   types.HTTPConfig
}

// NewServer creates a tool server backed by the given converter. client is
// used to fetch http/https URIs before conversion.
func NewServer(c convert.Converter, client *http.Client, httpCfg types.HTTPConfig) *Server {
	if client == nil {
		client = http.DefaultClient
	}
	return &Server{converter: c, client: client, httpCfg: httpCfg}
}

// Register registers both tools on srv.
func (s *Server) Register(srv *mcp.Server) {
	s.registerConvertTool(srv)
	s.registerExtractTool(srv)
}

// Run serves MCP over stdio until ctx is cancelled or the peer disconnects.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(serverImpl, nil)
	s.Register(srv)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// --- convert_to_markdown ---

type convertReq struct {
	URI string `json:"uri"`
}

func (s *Server) registerConvertTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolConvert,
		Description: "Convert the content at a URI (http:, https:, file:, data:) to Markdown.",
		InputSchema: inputSchema(map[string]any{
			"uri": map[string]any{"type": "string", "description": "URI of the document to convert"},
		}, []string{"uri"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r convertReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		md, err := s.convertURI(ctx, r.URI)
		if err != nil {
			return errorResult(err), nil
		}
		return textResult(md), nil
	})
}

func (s *Server) convertURI(ctx context.Context, uri string) (string, error) {
	if strings.TrimSpace(uri) == "" {
		return "", errors.New("uri must not be empty")
	}

	path, cleanup, err := convert.Fetch(ctx, s.client, uri, s.httpCfg)
	if err != nil {
		return "", err
	}
	defer cleanup()

	return s.converter.Convert(ctx, path)
}

// --- extract_company_directory ---

type extractReq struct {
	Markdown string `json:"markdown"`
}

type extractResp struct {
	Companies []types.Company `json:"companies"`
	Issues    []types.Issue   `json:"issues"`
}

func (s *Server) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolExtract,
		Description: "Extract the company directory table from Markdown into validated records with per-row diagnostics.",
		InputSchema: inputSchema(map[string]any{
			"markdown": map[string]any{"type": "string", "description": "Markdown text containing the directory table"},
		}, []string{"markdown"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r extractReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		companies, issues := tabular.Extract(r.Markdown)
		resp := extractResp{Companies: companies, Issues: issues}
		if resp.Companies == nil {
			resp.Companies = []types.Company{}
		}
		if resp.Issues == nil {
			resp.Issues = []types.Issue{}
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return errorResult(fmt.Errorf("marshal: %w", err)), nil
		}
		return textResult(string(data)), nil
	})
}

func errorResult(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
