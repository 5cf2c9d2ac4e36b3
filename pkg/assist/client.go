// Package assist calls the optional remote analysis and generation service.
// The service enriches local rule-based detection and can write the final
// document; when it is unreachable or returns a malformed payload the
// caller must fail the current step rather than use partial output.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const minDocumentLength = 100

// Client performs analysis and generation requests against the assist
// service.
type Client interface {
	Analyse(ctx context.Context, req AnalyseRequest) (*Analysis, error)
	Generate(ctx context.Context, req GenerateRequest) (*Generation, error)
}

// AnalyseRequest is the request body for POST /analyse.
type AnalyseRequest struct {
	FunderName string `json:"funderName"`
	UserInput  string `json:"userInput"`
	Mode       string `json:"mode"`
}

// Analysis is the facts payload the service detected, shaped like the
// local extractor's output plus summary commentary.
type Analysis struct {
	Amount         string   `json:"amount,omitempty"`
	FundingType    string   `json:"fundingType,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Beneficiaries  string   `json:"beneficiaries,omitempty"`
	Reach          string   `json:"reach,omitempty"`
	Evidence       string   `json:"evidence,omitempty"`
	Success        string   `json:"success,omitempty"`
	Sustainability string   `json:"sustainability,omitempty"`
	ProjectSummary string   `json:"projectSummary,omitempty"`
	ProjectTypes   []string `json:"projectTypes,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Gaps           []string `json:"gaps,omitempty"`
}

// FunderInfo mirrors the resolved funder profile for the generate call.
type FunderInfo struct {
	Name     string   `json:"name"`
	Focus    string   `json:"focus"`
	Values   []string `json:"values"`
	Tip      string   `json:"tip"`
	Language []string `json:"language"`
}

// GenerateRequest is the request body for POST /generate.
type GenerateRequest struct {
	FunderName string            `json:"funderName"`
	UserInput  string            `json:"userInput"`
	Mode       string            `json:"mode"`
	Answers    map[string]string `json:"answers"`
	NotSure    map[string]bool   `json:"notSure"`
	FunderInfo FunderInfo        `json:"funderInfo"`
}

// Generation is the rendered document and alignment notes.
type Generation struct {
	Document  string `json:"document"`
	Alignment string `json:"alignment"`
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithKey sets a bearer token sent with every request.
func WithKey(key string) Option {
	return func(c *httpClient) {
		c.key = key
	}
}

type httpClient struct {
	baseURL string
	key     string
	http    *http.Client
}

// NewClient creates an assist service client for the given base URL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Analyse(ctx context.Context, req AnalyseRequest) (*Analysis, error) {
	var resp struct {
		Analysis *Analysis `json:"analysis"`
	}
	if err := c.post(ctx, "/analyse", req, &resp); err != nil {
		return nil, err
	}
	if resp.Analysis == nil {
		return nil, eris.New("assist: response missing analysis")
	}
	return resp.Analysis, nil
}

func (c *httpClient) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	var resp Generation
	if err := c.post(ctx, "/generate", req, &resp); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(resp.Document)) < minDocumentLength {
		return nil, eris.New("assist: generated document too short")
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return eris.Wrap(err, "assist: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "assist: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return eris.Wrap(err, "assist: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "assist: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return eris.Errorf("assist: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "assist: unmarshal response")
	}

	return nil
}
