package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// runSummary mirrors the Kanoon API response for a completed run.
type runSummary struct {
	Success           bool   `json:"success"`
	TotalURLsFound    int    `json:"total_urls_found"`
	TotalWebhooksSent int    `json:"total_webhooks_sent"`
	Message           string `json:"message"`
	Results           []struct {
		URL    string `json:"url"`
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"n8n_results"`

	// Set on 4xx/5xx responses.
	Error string `json:"error"`
}

// apiClient forwards tool calls to a running Kanoon API.
type apiClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func main() {
	apiURL := os.Getenv("KANOON_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:5000"
	}

	// /scrape blocks until every document is processed.
	c := &apiClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		apiKey:  os.Getenv("KANOON_API_KEY"),
		http:    &http.Client{Timeout: 30 * time.Minute},
	}

	if err := server.ServeStdio(newServer(c)); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(c *apiClient) *server.MCPServer {
	s := server.NewMCPServer(
		"kanoon",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_judgments",
		mcp.WithDescription("Scrape judgments listed on an Indian Kanoon search page and POST each one to a webhook. Blocks until every document has been processed and returns the per-document outcome."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Indian Kanoon search results URL"),
		),
		mcp.WithString("webhook_url",
			mcp.Required(),
			mcp.Description("Endpoint that receives one JSON payload per judgment"),
		),
		mcp.WithNumber("max_documents",
			mcp.Description("Maximum number of results to process, in page order (default: 5, 0 for no limit)"),
		),
		mcp.WithString("format",
			mcp.Description("Judgment text format: 'text' (default) or 'markdown'"),
			mcp.Enum("text", "markdown"),
		),
	)
	s.AddTool(scrapeTool, c.handleScrape)

	healthTool := mcp.NewTool("health",
		mcp.WithDescription("Check whether the Kanoon scraper API is reachable."),
	)
	s.AddTool(healthTool, c.handleHealth)

	return s
}

// do sends a request to the Kanoon API and returns status and body.
func (c *apiClient) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func (c *apiClient) handleScrape(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url is required"), nil
	}
	webhookURL, err := request.RequireString("webhook_url")
	if err != nil {
		return mcp.NewToolResultError("webhook_url is required"), nil
	}

	payload := map[string]any{
		"url":         url,
		"webhook_url": webhookURL,
	}
	if maxDocs, ok := request.GetArguments()["max_documents"]; ok {
		payload["max_documents"] = maxDocs
	}
	if format := request.GetString("format", ""); format != "" {
		payload["format"] = format
	}

	status, body, err := c.do(ctx, http.MethodPost, "/scrape", payload)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var summary runSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse response (HTTP %d): %v", status, err)), nil
	}
	if status != http.StatusOK || !summary.Success {
		msg := summary.Error
		if msg == "" {
			msg = "scrape failed"
		}
		return mcp.NewToolResultError(fmt.Sprintf("[HTTP %d] %s", status, msg)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nFound: %d, sent: %d\n", summary.Message, summary.TotalURLsFound, summary.TotalWebhooksSent)
	for i, r := range summary.Results {
		fmt.Fprintf(&b, "\n%d. [%s] %s", i+1, r.Status, r.URL)
		if r.Error != "" {
			fmt.Fprintf(&b, " (%s)", r.Error)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *apiClient) handleHealth(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if status != http.StatusOK {
		return mcp.NewToolResultError(fmt.Sprintf("[HTTP %d] %s", status, body)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
