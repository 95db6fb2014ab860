// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/companydir/pkg/types"
)

// echoConverter returns the file's content prefixed as Markdown.
type echoConverter struct {
	err error
}

func (e *echoConverter) Name() string { return "echo" }

func (e *echoConverter) Convert(_ context.Context, path string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "## converted\n\n" + string(data), nil
}

// session starts the tool server over an in-memory transport and returns a
// connected client.
func session(t *testing.T, conv *echoConverter) *Client {
	t.Helper()

	srv := mcp.NewServer(serverImpl, nil)
	NewServer(conv, nil, types.HTTPConfig{}).Register(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client, err := Connect(ctx, clientT)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestConvertToMarkdown_FileURI(t *testing.T) {
	p := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(p, []byte("directory body"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := session(t, &echoConverter{})

	md, err := client.ConvertToMarkdown(context.Background(), "file://"+p)
	if err != nil {
		t.Fatalf("ConvertToMarkdown: %v", err)
	}
	if !strings.Contains(md, "## converted") || !strings.Contains(md, "directory body") {
		t.Errorf("unexpected markdown: %q", md)
	}
}

func TestConvertToMarkdown_EmptyURI(t *testing.T) {
	client := session(t, &echoConverter{})

	_, err := client.ConvertToMarkdown(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "uri must not be empty") {
		t.Fatalf("expected empty-uri error, got %v", err)
	}
}

func TestConvertToMarkdown_BackendFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := session(t, &echoConverter{err: errors.New("backend exploded")})

	_, err := client.ConvertToMarkdown(context.Background(), "file://"+p)
	if err == nil || !strings.Contains(err.Error(), "backend exploded") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestExtractTool(t *testing.T) {
	client := session(t, &echoConverter{})

	markdown := strings.Join([]string{
		"| Company | Company Website | YC Link | Short Description | Tags | Location | Founder Link 1 | Founder Link 2 | Founder Link 3 |",
		"| --- | --- | --- | --- | --- | --- | --- | --- | --- |",
		"| Acme | https://acme.com | nan | Widgets | b2b, saas | SF | | | |",
		"| Broken | not-a-url | | Widgets | | | | | |",
	}, "\n")

	text, err := client.callText(context.Background(), ToolExtract, map[string]any{
		"markdown": markdown,
	})
	if err != nil {
		t.Fatalf("extract tool: %v", err)
	}

	var resp struct {
		Companies []types.Company `json:"companies"`
		Issues    []types.Issue   `json:"issues"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.Companies) != 1 || resp.Companies[0].Company != "Acme" {
		t.Errorf("unexpected companies: %+v", resp.Companies)
	}
	if resp.Companies[0].CompanyWebsite != "https://acme.com/" {
		t.Errorf("website = %q, want normalized URL", resp.Companies[0].CompanyWebsite)
	}
	if len(resp.Issues) != 1 || resp.Issues[0].Kind != types.IssueRowValidationFailed {
		t.Errorf("unexpected issues: %+v", resp.Issues)
	}
}

func TestExtractTool_NoTable(t *testing.T) {
	client := session(t, &echoConverter{})

	text, err := client.callText(context.Background(), ToolExtract, map[string]any{
		"markdown": "# just prose",
	})
	if err != nil {
		t.Fatalf("extract tool: %v", err)
	}

	var resp extractResp
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Companies) != 0 {
		t.Errorf("expected empty companies, got %+v", resp.Companies)
	}
	if len(resp.Issues) != 1 || resp.Issues[0].Kind != types.IssueTableNotFound {
		t.Errorf("expected TableNotFound, got %+v", resp.Issues)
	}
}

func TestResolveCommand(t *testing.T) {
	got, err := resolveCommand(types.ToolConfig{Command: "/usr/bin/companydir"})
	if err != nil {
		t.Fatalf("resolveCommand: %v", err)
	}
	if got != "/usr/bin/companydir" {
		t.Errorf("explicit command not honored: %q", got)
	}

	got, err = resolveCommand(types.ToolConfig{})
	if err != nil {
		t.Fatalf("resolveCommand (fallback): %v", err)
	}
	self, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable: %v", err)
	}
	if got != self {
		t.Errorf("empty command should fall back to the running binary: got %q, want %q", got, self)
	}
}

func TestConnect_VerifiesConvertTool(t *testing.T) {
	// A server without the conversion tool must be rejected at connect time.
	srv := mcp.NewServer(serverImpl, nil)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	_, err := Connect(ctx, clientT)
	if err == nil || !strings.Contains(err.Error(), ToolConvert) {
		t.Fatalf("expected missing-tool error, got %v", err)
	}
}
