// Package api is the HTTP client for the grant-authoring backend. The
// editor core treats the backend as an opaque collaborator: documents
// are fetched and saved as whole section arrays, companies expose a
// preprocessing status, and exports are opaque binary blobs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

// Client talks to one backend instance on behalf of one signed-in user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, used by tests and
// by callers that need custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given base URL and bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// documentEnvelope is the wire shape of a document: sections live in a
// content_json object.
type documentEnvelope struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	ContentJSON       contentEnvelope `json:"content_json"`
	HeadingsConfirmed bool            `json:"headings_confirmed"`
	UpdatedAt         time.Time       `json:"updated_at,omitempty"`
}

type contentEnvelope struct {
	Sections []models.Section `json:"sections"`
}

func (e documentEnvelope) toModel() *models.Document {
	return &models.Document{
		ID:                e.ID,
		Title:             e.Title,
		Sections:          e.ContentJSON.Sections,
		HeadingsConfirmed: e.HeadingsConfirmed,
		UpdatedAt:         e.UpdatedAt,
	}
}

// GetDocument fetches a document with its current section model.
func (c *Client) GetDocument(ctx context.Context, id int) (*models.Document, error) {
	var env documentEnvelope
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/documents/%d", id), nil, &env); err != nil {
		return nil, fmt.Errorf("load document %d: %w", id, err)
	}
	return env.toModel(), nil
}

// ListDocuments fetches all documents visible to the user.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var envs []documentEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/documents", nil, &envs); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make([]models.Document, len(envs))
	for i, e := range envs {
		out[i] = *e.toModel()
	}
	return out, nil
}

// UpdateDocumentSections persists the entire section model. The payload
// is always the full model, never a delta, which makes the call
// idempotent under retry and last-write-wins across sessions.
func (c *Client) UpdateDocumentSections(ctx context.Context, id int, secs []models.Section) error {
	body := map[string]contentEnvelope{"content_json": {Sections: secs}}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/documents/%d", id), body, nil); err != nil {
		return fmt.Errorf("save document %d: %w", id, err)
	}
	return nil
}

// ConfirmHeadings marks the document's structure as locked.
func (c *Client) ConfirmHeadings(ctx context.Context, id int) error {
	body := map[string]bool{"headings_confirmed": true}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/documents/%d", id), body, nil); err != nil {
		return fmt.Errorf("confirm headings for document %d: %w", id, err)
	}
	return nil
}

// GenerateContent asks the backend to draft content for every section
// of the locked structure. When the company's preprocessed data is not
// ready yet, the backend answers 409 and the call returns
// ErrCompanyNotReady so the editor can fall back to polling.
func (c *Client) GenerateContent(ctx context.Context, id int) ([]models.Section, error) {
	var env documentEnvelope
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/documents/%d/generate-content", id), nil, &env)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusConflict {
			return nil, ErrCompanyNotReady
		}
		return nil, fmt.Errorf("generate content for document %d: %w", id, err)
	}
	return env.ContentJSON.Sections, nil
}

// GetCompany fetches the readiness source for content generation.
func (c *Client) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	var company models.Company
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/companies/%d", id), nil, &company); err != nil {
		return nil, fmt.Errorf("load company %d: %w", id, err)
	}
	company.ProcessingStatus = company.ProcessingStatus.Normalize()
	return &company, nil
}

// ListCompanies fetches all companies visible to the user.
func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := c.doJSON(ctx, http.MethodGet, "/companies", nil, &companies); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	for i := range companies {
		companies[i].ProcessingStatus = companies[i].ProcessingStatus.Normalize()
	}
	return companies, nil
}

// doJSON performs one request with auth and request-id headers, decodes
// a JSON response into out when out is non-nil, and maps error statuses
// onto the package's error types.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Accept", "application/json")
}

// checkStatus converts a non-2xx response into an error. The backend
// reports failure details as {"detail": "..."}.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}

	detail := ""
	var payload struct {
		Detail string `json:"detail"`
	}
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if json.Unmarshal(data, &payload) == nil {
			detail = payload.Detail
		}
	}
	return &StatusError{Code: resp.StatusCode, Detail: detail}
}

// exportURL builds the export endpoint for a document.
func (c *Client) exportURL(id int, format string) string {
	return fmt.Sprintf("%s/documents/%d/export?%s", c.baseURL, id, url.Values{"format": {format}}.Encode())
}
