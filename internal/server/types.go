package server

// Tool describes an MCP tool and its input schema.
type Tool struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	InputSchema map[string]any  `json:"inputSchema"`
	Annotations map[string]bool `json:"annotations,omitempty"`
}

type CallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}
