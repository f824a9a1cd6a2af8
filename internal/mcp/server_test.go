package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
	"github.com/locle27/Koyeb-Booking-sub000/internal/rag"
)

func setupTestServer(t *testing.T, seed []knowledge.Entry) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	history := interactions.NewStore(database)
	core := rag.NewCoreEngine(rag.Options{
		RAG:          config.DefaultConfig().RAG,
		Knowledge:    knowledge.NewStore(database),
		Interactions: history,
		Seed:         seed,
	})
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return NewServer(rag.API{Engine: core, Core: core, History: history})
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{askConciergeTool, "ask_concierge"},
		{retrieveContextTool, "retrieve_context"},
		{listKnowledgeTool, "list_knowledge"},
		{guestHistoryTool, "guest_history"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestHandleAskConcierge(t *testing.T) {
	srv := setupTestServer(t, knowledge.DefaultCatalog())
	ctx := context.Background()

	t.Run("answers with sources", func(t *testing.T) {
		result, err := srv.handleAskConcierge(ctx, call(map[string]any{"query": "How much is taxi to airport?"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		for _, want := range []string{"280,000 VND", "Sources: Taxi and Transportation", "Suggestions:"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected %q in %q", want, text)
			}
		}
	})

	t.Run("personalized", func(t *testing.T) {
		result, _ := srv.handleAskConcierge(ctx, call(map[string]any{"query": "What time is check-in?", "guest_name": "Hana"}))
		if !strings.HasPrefix(resultText(t, result), "Hi Hana!") {
			t.Errorf("expected greeting, got %q", resultText(t, result))
		}
	})

	t.Run("missing query", func(t *testing.T) {
		result, err := srv.handleAskConcierge(ctx, call(map[string]any{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})
}

func TestHandleRetrieveContext(t *testing.T) {
	srv := setupTestServer(t, knowledge.DefaultCatalog())
	ctx := context.Background()

	result, _ := srv.handleRetrieveContext(ctx, call(map[string]any{"query": "hoan kiem lake old quarter walking", "top_k": 1}))
	text := resultText(t, result)
	if !strings.Contains(text, "Found 1 match") {
		t.Errorf("expected a single match, got %q", text)
	}

	result, _ = srv.handleRetrieveContext(ctx, call(map[string]any{"query": "asdkjasdlkj"}))
	if !strings.Contains(resultText(t, result), "No knowledge entry") {
		t.Errorf("expected no-match message, got %q", resultText(t, result))
	}
}

func TestHandleListKnowledge(t *testing.T) {
	ctx := context.Background()

	srv := setupTestServer(t, knowledge.DefaultCatalog())
	result, _ := srv.handleListKnowledge(ctx, call(map[string]any{}))
	if text := resultText(t, result); !strings.HasPrefix(text, "12 knowledge entries") {
		t.Errorf("unexpected listing %q", text)
	}

	result, _ = srv.handleListKnowledge(ctx, call(map[string]any{"category": "wifi"}))
	text := resultText(t, result)
	if !strings.HasPrefix(text, "1 knowledge entry") || !strings.Contains(text, "118HangBac_Guest") {
		t.Errorf("unexpected filtered listing %q", text)
	}

	empty := setupTestServer(t, nil)
	result, _ = empty.handleListKnowledge(ctx, call(map[string]any{}))
	if !strings.Contains(resultText(t, result), "empty") {
		t.Errorf("expected empty message, got %q", resultText(t, result))
	}
}

func TestHandleGuestHistory(t *testing.T) {
	srv := setupTestServer(t, knowledge.DefaultCatalog())
	ctx := context.Background()

	srv.handleAskConcierge(ctx, call(map[string]any{"query": "What time is check-in?", "guest_name": "Ivan"}))

	result, _ := srv.handleGuestHistory(ctx, call(map[string]any{"guest_name": "Ivan"}))
	text := resultText(t, result)
	if !strings.Contains(text, "Q: What time is check-in?") || !strings.Contains(text, "14:00") {
		t.Errorf("unexpected history %q", text)
	}

	result, _ = srv.handleGuestHistory(ctx, call(map[string]any{"guest_name": "Nobody"}))
	if !strings.Contains(resultText(t, result), "No recorded questions") {
		t.Errorf("unexpected history for unknown guest %q", resultText(t, result))
	}

	result, _ = srv.handleGuestHistory(ctx, call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error for missing guest_name")
	}
}
