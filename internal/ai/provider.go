// Package ai generates commit subjects, merge subjects, and repository
// descriptions through OpenAI-compatible chat-completion providers.
//
// One parameterized client serves every provider: backends differ only
// in base URL, default model, and routing headers. Failures come back
// as classified provider errors, never as raw transport noise, and the
// API key never appears in an error or a log line.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitwiz.dev/gitwiz/internal/config"
	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
)

// Client is the generation surface flows depend on. Tests substitute
// scripted implementations.
type Client interface {
	// GenerateCommitMessage produces a single-line conventional commit
	// subject for the staged diff.
	GenerateCommitMessage(ctx context.Context, diff string) (string, error)
	// GenerateMergeMessage produces a single-line subject for a merge
	// commit bringing source into target, given the merge diff and the
	// subjects of the commits being merged.
	GenerateMergeMessage(ctx context.Context, source, target, diff string, commits []string) (string, error)
	// GenerateDescription produces a short prose summary of a
	// repository snapshot.
	GenerateDescription(ctx context.Context, snapshot string) (string, error)
}

// Temperature is a fixed policy constant per call kind, not a user
// setting: descriptive summaries run coolest, commit subjects warmest.
const (
	describeTemperature float32 = 0.2
	mergeTemperature    float32 = 0.3
	commitTemperature   float32 = 0.4
)

const requestTimeout = 30 * time.Second

// Message is one chat turn in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Provider is the parameterized chat-completion client.
type Provider struct {
	backend Backend
	model   string
	apiKey  string
	http    *http.Client
}

// NewProvider builds a client from persisted settings and the resolved
// API key. An unconfigured provider or an empty key yields
// ErrNoProviderConfigured so flows can fall back cleanly.
func NewProvider(settings *config.Settings, apiKey string) (*Provider, error) {
	if settings.Provider == "" || apiKey == "" {
		return nil, gitwizerrors.ErrNoProviderConfigured
	}
	backend, ok := BackendFor(settings.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q; known providers: %s", settings.Provider, strings.Join(BackendIDs(), ", "))
	}
	model := settings.Model
	if model == "" {
		model = backend.DefaultModel
	}
	return NewProviderWithBackend(backend, model, apiKey), nil
}

// NewProviderWithBackend builds a client against an explicit backend.
// Tests use it to point at a local server.
func NewProviderWithBackend(backend Backend, model, apiKey string) *Provider {
	return &Provider{
		backend: backend,
		model:   model,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// GenerateCommitMessage produces a conventional commit subject for diff.
func (p *Provider) GenerateCommitMessage(ctx context.Context, diff string) (string, error) {
	content, err := p.chat(ctx, commitTemperature, commitInstruction, commitRequest(diff))
	if err != nil {
		return "", err
	}
	return subjectOrMalformed(CleanSubjectLine(content))
}

// GenerateMergeMessage produces a merge commit subject for bringing
// source into target, given the staged merge diff and commit subjects.
func (p *Provider) GenerateMergeMessage(ctx context.Context, source, target, diff string, commits []string) (string, error) {
	content, err := p.chat(ctx, mergeTemperature, mergeInstruction, mergeRequest(source, target, diff, commits))
	if err != nil {
		return "", err
	}
	return subjectOrMalformed(CleanSubjectLine(content))
}

// GenerateDescription produces a short prose summary of snapshot.
func (p *Provider) GenerateDescription(ctx context.Context, snapshot string) (string, error) {
	content, err := p.chat(ctx, describeTemperature, describeInstruction, describeRequest(snapshot))
	if err != nil {
		return "", err
	}
	return subjectOrMalformed(CleanDescription(content))
}

func subjectOrMalformed(cleaned string) (string, error) {
	if cleaned == "" {
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderMalformed, 0, "response reduced to an empty message", nil)
	}
	return cleaned, nil
}

// chat issues one completion request and returns the first choice's
// content.
func (p *Provider) chat(ctx context.Context, temperature float32, instruction, request string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []Message{
			{Role: "system", Content: instruction},
			{Role: "user", Content: request},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.backend.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	for name, value := range p.backend.ExtraHeaders {
		req.Header.Set(name, value)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderUnauthorized, resp.StatusCode, "", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderRateLimited, resp.StatusCode, "", nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderBadStatus, resp.StatusCode, readBodyPreview(resp.Body), nil)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderMalformed, resp.StatusCode, "response was not valid JSON", err)
	}
	if len(decoded.Choices) == 0 {
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderMalformed, resp.StatusCode, "response carried no choices", nil)
	}
	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", gitwizerrors.NewProviderError(gitwizerrors.ProviderMalformed, resp.StatusCode, "response content was empty", nil)
	}
	return content, nil
}

// classifyTransportError distinguishes caller cancellation, timeout,
// and network failure. The wrapped cause may embed the request URL but
// never the API key.
func classifyTransportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("provider request: %w", gitwizerrors.ErrOperationCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return gitwizerrors.NewProviderError(gitwizerrors.ProviderTimeout, 0, "", err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return gitwizerrors.NewProviderError(gitwizerrors.ProviderTimeout, 0, "", err)
	}
	return gitwizerrors.NewProviderError(gitwizerrors.ProviderNetwork, 0, "", err)
}

// readBodyPreview returns at most 200 characters of the body for the
// operator-facing message.
func readBodyPreview(body io.Reader) string {
	const maxPreview = 200
	data, err := io.ReadAll(io.LimitReader(body, maxPreview+1))
	if err != nil {
		return ""
	}
	preview := strings.TrimSpace(string(data))
	if len(preview) > maxPreview {
		preview = preview[:maxPreview] + "…"
	}
	return preview
}
