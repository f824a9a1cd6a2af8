package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleAskConcierge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	guest := strings.TrimSpace(request.GetString("guest_name", ""))

	ans := s.api.Engine.GenerateAnswer(ctx, query, guest)

	var sb strings.Builder
	sb.WriteString(ans.Answer)
	fmt.Fprintf(&sb, "\n\nConfidence: %.0f%%", ans.Confidence*100)
	if ans.Enhanced {
		fmt.Fprintf(&sb, " (rewritten by %s)", ans.ModelUsed)
	}
	if len(ans.Sources) > 0 {
		fmt.Fprintf(&sb, "\nSources: %s", strings.Join(ans.Sources, ", "))
	}
	if len(ans.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:")
		for _, sg := range ans.Suggestions {
			fmt.Fprintf(&sb, "\n- %s", sg)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleRetrieveContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	rc := s.api.Core.RetrieveTopK(ctx, query, "", request.GetInt("top_k", 0))
	if len(rc.RelevantInfo) == 0 {
		return mcp.NewToolResultText("No knowledge entry matches this question."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d match(es), confidence %.2f:\n", len(rc.RelevantInfo), rc.Confidence)
	for i, se := range rc.RelevantInfo {
		fmt.Fprintf(&sb, "\n%d. [%s] %s (score %.2f)\n%s\n", i+1, se.Category, se.Topic, se.Score, se.Content)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleListKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := request.GetString("category", "")

	var sb strings.Builder
	n := 0
	for _, e := range s.api.Core.Catalog() {
		if category != "" && e.Category != category {
			continue
		}
		n++
		fmt.Fprintf(&sb, "\n## %s (%s)\n%s\n", e.Topic, e.Category, e.Content)
		if e.Keywords != "" {
			fmt.Fprintf(&sb, "Keywords: %s\n", e.Keywords)
		}
	}
	if n == 0 {
		if category != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No entries in category %q.", category)), nil
		}
		return mcp.NewToolResultText("The knowledge base is empty. Run `concierge seed` to load it."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d knowledge entr%s:\n%s", n, plural(n, "y", "ies"), sb.String())), nil
}

func (s *Server) handleGuestHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	guest, err := request.RequireString("guest_name")
	if err != nil || strings.TrimSpace(guest) == "" {
		return mcp.NewToolResultError("missing required parameter: guest_name"), nil
	}
	if s.api.History == nil {
		return mcp.NewToolResultError("interaction history is not available"), nil
	}
	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	records, err := s.api.History.Recent(ctx, guest, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading history failed: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No recorded questions from %s.", guest)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Last %d question(s) from %s:\n", len(records), guest)
	for _, rec := range records {
		fmt.Fprintf(&sb, "\n[%s] %s\nQ: %s\nA: %s\n",
			rec.Timestamp.Format("2006-01-02 15:04"), rec.ReferenceID, rec.Payload.Query, rec.Payload.Response)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
