package ai

// Backend describes one chat-completion endpoint. All backends speak
// the same request and response shape; they differ only in these
// attributes.
type Backend struct {
	ID           string
	BaseURL      string
	DefaultModel string
	// ExtraHeaders are routing headers the provider requires on every
	// request.
	ExtraHeaders map[string]string
}

var backends = []Backend{
	{
		ID:           "openai",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "groq",
		BaseURL:      "https://api.groq.com/openai/v1",
		DefaultModel: "llama-3.3-70b-versatile",
	},
	{
		ID:           "openrouter",
		BaseURL:      "https://openrouter.ai/api/v1",
		DefaultModel: "meta-llama/llama-3.3-70b-instruct",
		ExtraHeaders: map[string]string{
			"HTTP-Referer": "https://gitwiz.dev",
			"X-Title":      "gitwiz",
		},
	},
}

// BackendFor returns the backend registered under id.
func BackendFor(id string) (Backend, bool) {
	for _, backend := range backends {
		if backend.ID == id {
			return backend, true
		}
	}
	return Backend{}, false
}

// BackendIDs returns the known provider ids in display order.
func BackendIDs() []string {
	ids := make([]string, 0, len(backends))
	for _, backend := range backends {
		ids = append(ids, backend.ID)
	}
	return ids
}
