package cmd

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Typed accessors over the request's argument map. Numbers arrive as
// float64 from JSON; missing or mistyped values fall back to the zero
// value.

func stringParam(request mcp.CallToolRequest, name string) string {
	if v, ok := request.GetArguments()[name].(string); ok {
		return v
	}
	return ""
}

func intParam(request mcp.CallToolRequest, name string) int {
	n, _ := intParamOK(request, name)
	return n
}

func intParamOK(request mcp.CallToolRequest, name string) (int, bool) {
	switch v := request.GetArguments()[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func boolParam(request mcp.CallToolRequest, name string) bool {
	if v, ok := request.GetArguments()[name].(bool); ok {
		return v
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
