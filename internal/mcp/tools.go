package mcp

import "github.com/mark3labs/mcp-go/mcp"

// analyzeStringTool defines the analyze_string MCP tool.
var analyzeStringTool = mcp.NewTool("analyze_string",
	mcp.WithDescription("Compute length, palindrome status, unique characters, word count, SHA-256 hash and character frequencies of a string without storing it."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to analyze"),
	),
)

// createStringTool defines the create_string MCP tool.
var createStringTool = mcp.NewTool("create_string",
	mcp.WithDescription("Analyze a string and store it. Fails if the string is already stored."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to store"),
	),
)

// getStringTool defines the get_string MCP tool.
var getStringTool = mcp.NewTool("get_string",
	mcp.WithDescription("Fetch a stored string by its value or SHA-256 hash."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The stored string or its SHA-256 hash"),
	),
)

// filterStringsTool defines the filter_strings MCP tool.
var filterStringsTool = mcp.NewTool("filter_strings",
	mcp.WithDescription("List stored strings matching every given filter. With no filters, all strings are returned."),
	mcp.WithBoolean("is_palindrome",
		mcp.Description("Match palindromes (true) or non-palindromes (false)"),
	),
	mcp.WithNumber("min_length",
		mcp.Description("Minimum length in characters, inclusive"),
	),
	mcp.WithNumber("max_length",
		mcp.Description("Maximum length in characters, inclusive"),
	),
	mcp.WithNumber("word_count",
		mcp.Description("Exact number of whitespace-separated words"),
	),
	mcp.WithString("contains_character",
		mcp.Description("A single character the string must contain"),
	),
)

// queryStringsTool defines the query_strings MCP tool.
var queryStringsTool = mcp.NewTool("query_strings",
	mcp.WithDescription(`List stored strings matching a plain-English query such as "single word palindromic strings" or "strings longer than 10 characters".`),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language query"),
	),
)
