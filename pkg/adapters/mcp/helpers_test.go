package mcp

import "github.com/mark3labs/mcp-go/mcp"

func mcpRequest() mcp.CallToolRequest {
	return mcp.CallToolRequest{}
}
