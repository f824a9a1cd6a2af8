package mcp

import "github.com/mark3labs/mcp-go/mcp"

var askConciergeTool = mcp.NewTool("ask_concierge",
	mcp.WithDescription("Answer a hotel guest's question from the front-desk knowledge base. Returns the answer, its confidence, cited topics and follow-up suggestions."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("The guest's question in natural language"),
	),
	mcp.WithString("guest_name",
		mcp.Description("Guest name, for a personalized answer and interaction history"),
	),
)

var retrieveContextTool = mcp.NewTool("retrieve_context",
	mcp.WithDescription("Show the knowledge entries that best match a question, with their similarity scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("The question to match"),
	),
	mcp.WithNumber("top_k",
		mcp.Description("Maximum number of entries to return (default 3)"),
	),
)

var listKnowledgeTool = mcp.NewTool("list_knowledge",
	mcp.WithDescription("List the knowledge base entries the concierge answers from."),
	mcp.WithString("category",
		mcp.Description("Only list entries of this category, e.g. check_in or transportation"),
	),
)

var guestHistoryTool = mcp.NewTool("guest_history",
	mcp.WithDescription("List a guest's most recent questions and the answers they were given."),
	mcp.WithString("guest_name",
		mcp.Required(),
		mcp.Description("Guest name as used when asking"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of interactions (default 5)"),
	),
)
