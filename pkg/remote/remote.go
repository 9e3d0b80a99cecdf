// Package remote talks to the hosted entries table for the signed-in
// principal. Every failure is classified so callers can tell a permanently
// absent schema from a transient network problem; none of them is fatal.
package remote

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

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/richtext"
)

var (
	// ErrSchemaMissing means the entries table does not exist on the remote.
	// This is a definitive signal: the reconciler disables sync for the rest
	// of the session when it sees it.
	ErrSchemaMissing = errors.New("remote: entries table missing")

	// ErrUnreachable covers transport and auth failures. The remote step is
	// skipped for the current operation only; no retry is scheduled.
	ErrUnreachable = errors.New("remote: service unreachable")
)

// IsSchemaMissing reports whether err is the missing-schema signal.
func IsSchemaMissing(err error) bool {
	return errors.Is(err, ErrSchemaMissing)
}

// IsUnreachable reports whether err is a transient transport/auth failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// Service is the contract the reconciler consumes. The HTTP client below is
// the production implementation; tests substitute fakes.
type Service interface {
	ListAll(ctx context.Context) ([]*entry.Entry, error)
	Upsert(ctx context.Context, e *entry.Entry) error
	Delete(ctx context.Context, id string) error
}

// row is the wire form of an entry: one row of the hosted entries table,
// content carried as the serialized styled document.
type row struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	UpdatedAt int64    `json:"updated_at"`
}

func toRow(e *entry.Entry) (row, error) {
	content, err := json.Marshal(e.Content)
	if err != nil {
		return row{}, fmt.Errorf("remote: marshal content: %w", err)
	}
	return row{
		ID:        e.ID,
		Date:      e.Date,
		Content:   string(content),
		Tags:      e.Tags,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func (r row) toEntry() *entry.Entry {
	e := &entry.Entry{
		ID:        r.ID,
		Date:      r.Date,
		Tags:      r.Tags,
		UpdatedAt: r.UpdatedAt,
		Content:   richtext.New(),
	}
	if r.Content != "" {
		if err := json.Unmarshal([]byte(r.Content), e.Content); err != nil {
			// A row written by another client with an unknown content shape
			// still carries its plain text value.
			e.Content = richtext.FromText(r.Content)
		}
	}
	return e
}

// Client is an HTTP client for a REST-style entries table: unfiltered list,
// upsert keyed on id, delete by id match.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient builds a client for the given table endpoint and bearer token.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	req, err := c.request(ctx, http.MethodGet, "/entries?select=*", nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("remote: decode list: %w", err)
	}
	out := make([]*entry.Entry, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		out = append(out, r.toEntry())
	}
	return out, nil
}

func (c *Client) Upsert(ctx context.Context, e *entry.Entry) error {
	r, err := toRow(e)
	if err != nil {
		return err
	}
	payload, err := json.Marshal([]row{r})
	if err != nil {
		return fmt.Errorf("remote: marshal upsert: %w", err)
	}
	req, err := c.request(ctx, http.MethodPost, "/entries", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "resolution=merge-duplicates")
	_, err = c.do(req, http.StatusCreated, http.StatusOK, http.StatusNoContent)
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := c.request(ctx, http.MethodDelete, "/entries?id=eq."+url.QueryEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req, http.StatusOK, http.StatusNoContent)
	return err
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes the request and classifies the outcome against the error
// taxonomy. Only the listed statuses count as success.
func (c *Client) do(req *http.Request, okStatuses ...int) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	for _, s := range okStatuses {
		if resp.StatusCode == s {
			return body, nil
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound,
		bytes.Contains(body, []byte("42P01")): // undefined_table
		return nil, fmt.Errorf("%w: %s", ErrSchemaMissing, strings.TrimSpace(string(body)))
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}
	return nil, fmt.Errorf("remote: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
