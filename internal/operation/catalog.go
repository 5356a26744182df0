package operation

import (
	"context"
	"net/http"

	"eagle-mcp/internal/eagle"
)

// Catalog returns every operation the server knows, grouped as application,
// folder, item, library and connection tools.
func Catalog() []Descriptor {
	var out []Descriptor
	out = append(out, applicationOps()...)
	out = append(out, folderOps()...)
	out = append(out, itemOps()...)
	out = append(out, libraryOps()...)
	out = append(out, connectionOps()...)
	return out
}

func applicationOps() []Descriptor {
	return []Descriptor{
		{
			Name:  "get_application_info",
			Title: "Get application info",
			Description: "Get detailed information on the Eagle App currently running. " +
				"In most cases, this could be used to determine whether certain functions are available on the user's device.",
			Method: http.MethodGet,
			Path:   "/api/application/info",
			Hint:   HintReadOnly,
		},
	}
}

func connectionOps() []Descriptor {
	return []Descriptor{
		{
			Name:        "connect",
			Title:       "Connect",
			Description: "Connect to the Eagle MCP server.",
			Method:      http.MethodGet,
			Path:        "/api/connect",
			Hint:        HintReadOnly,
			Run: func(context.Context, *eagle.Client, *eagle.Params) eagle.Response {
				return eagle.Response{Envelope: eagle.Success(map[string]string{"message": "Connected!"})}
			},
		},
	}
}
