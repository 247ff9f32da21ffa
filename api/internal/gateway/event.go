package gateway

// Event is the HTTP-like invocation as cloud runtimes deliver it.
type Event struct {
	HTTPMethod string            `json:"httpMethod"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body,omitempty"`
}

// Response is the runtime envelope.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
	Body            string            `json:"body"`
}

// Context carries per-invocation metadata.
type Context struct {
	RequestID string
}
