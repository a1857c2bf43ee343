// Package gist talks to the GitHub Gist API, used purely as a private JSON
// blob host for cross-device sync. One document, written and read wholesale,
// last writer wins. There is no conflict detection and no retry; callers
// collapse any failure into a single generic notice.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/idilsaglam/tasklist/internal/model"
)

const (
	defaultBaseURL = "https://api.github.com"
	syncFileName   = "tasklist.json"
	gistDesc       = "tasklist"
)

var (
	// ErrNoToken means sync was invoked before a token was configured.
	ErrNoToken = errors.New("no sync token configured")
	// ErrNoGistID means download was invoked before an id was known.
	ErrNoGistID = errors.New("no gist id configured")
)

// Document is the remote sync payload: tasks plus taxonomy. LastSync is
// advisory only and is never compared against anything.
type Document struct {
	Tasks      []model.Task         `json:"tasks"`
	Categories []model.Category     `json:"categories"`
	Statuses   []model.StatusOption `json:"statuses"`
	Stages     []string             `json:"stages"`
	LastSync   int64                `json:"lastSync,omitempty"`
}

// DocumentFromState snapshots the syncable part of the tree. Settings and
// credentials stay local.
func DocumentFromState(st *model.State) Document {
	return Document{
		Tasks:      st.Tasks,
		Categories: st.Categories,
		Statuses:   st.Statuses,
		Stages:     st.Stages,
		LastSync:   time.Now().UnixMilli(),
	}
}

// Apply replaces the local tasks and taxonomy wholesale, back-filling any
// section missing from the remote document with defaults.
func (d Document) Apply(st *model.State) {
	st.Tasks = d.Tasks
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	st.Categories = d.Categories
	st.Statuses = d.Statuses
	st.Stages = d.Stages
	st.Normalize()
}

// Client is a minimal gist API client. The token is sent as a bearer
// credential on every call; the zero timeout of the default client is kept —
// cancellation comes from the caller's context.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(token string) *Client {
	return &Client{baseURL: defaultBaseURL, token: token, httpc: http.DefaultClient}
}

// NewWithBaseURL exists for tests pointed at a local server.
func NewWithBaseURL(token, baseURL string) *Client {
	return &Client{baseURL: baseURL, token: token, httpc: http.DefaultClient}
}

// wire shapes for the gist API
type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// Upload writes the document to the remote slot. With a known gistID it
// updates that gist in place; with an empty id it creates a new secret gist
// and returns the id the caller must persist for subsequent updates.
func (c *Client) Upload(ctx context.Context, doc Document, gistID string) (string, error) {
	if c.token == "" {
		return "", ErrNoToken
	}
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sync document: %w", err)
	}
	payload := gistPayload{
		Files: map[string]gistFile{syncFileName: {Content: string(content)}},
	}
	method := http.MethodPatch
	url := c.baseURL + "/gists/" + gistID
	if gistID == "" {
		method = http.MethodPost
		url = c.baseURL + "/gists"
		payload.Description = gistDesc
		public := false
		payload.Public = &public
	}
	resp, err := c.do(ctx, method, url, payload)
	if err != nil {
		return "", err
	}
	if gistID == "" {
		return resp.ID, nil
	}
	return gistID, nil
}

// Download fetches the remote document. Requires both a token and a known
// gist id; neither check issues a network call.
func (c *Client) Download(ctx context.Context, gistID string) (*Document, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	if gistID == "" {
		return nil, ErrNoGistID
	}
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/gists/"+gistID, nil)
	if err != nil {
		return nil, err
	}
	f, ok := resp.Files[syncFileName]
	if !ok {
		return nil, fmt.Errorf("gist %s has no %s file", gistID, syncFileName)
	}
	var doc Document
	if err := json.Unmarshal([]byte(f.Content), &doc); err != nil {
		return nil, fmt.Errorf("parse sync document: %w", err)
	}
	return &doc, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload any) (*gistResponse, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gist request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gist api: %s", resp.Status)
	}
	var out gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gist response: %w", err)
	}
	return &out, nil
}
