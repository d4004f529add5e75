package minecraft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/handiism/minecraft-fetcher/internal/http"
	"github.com/handiism/minecraft-fetcher/internal/minecraft/dto"
)

// ErrMalformedBody is returned when a response is not UTF-8 text or not the
// JSON document that was expected.
var ErrMalformedBody = errors.New("malformed response body")

// Client fetches the JSON documents that describe a version: the version
// list, the per-version manifest and the asset index. Every fetch is a
// single GET without retries.
type Client struct {
	http *http.Client
}

// NewClient creates a Client on top of the given HTTP client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{http: httpClient}
}

// FetchText performs one GET and returns the body as text.
//
// Returns ErrMalformedBody (wrapped) when the body is not valid UTF-8.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	text, err := c.http.GetString(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("fetching %s: %w: not UTF-8", url, ErrMalformedBody)
	}
	return text, nil
}

// FetchVersionList downloads and decodes the top-level version list.
func (c *Client) FetchVersionList(ctx context.Context, url string) (*dto.VersionList, error) {
	text, err := c.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}

	var list dto.VersionList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("decoding version list: %w: %v", ErrMalformedBody, err)
	}
	return &list, nil
}

// FetchVersion downloads a version manifest. It returns the decoded manifest
// together with the raw document, which callers hand back untouched.
func (c *Client) FetchVersion(ctx context.Context, url string) (*dto.Version, json.RawMessage, error) {
	text, err := c.FetchText(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	raw := json.RawMessage(text)
	v, err := ParseVersion(raw)
	if err != nil {
		return nil, nil, err
	}
	return v, raw, nil
}

// FetchAssetIndex downloads an asset index and returns it with its raw text.
func (c *Client) FetchAssetIndex(ctx context.Context, url string) (*dto.AssetIndex, []byte, error) {
	text, err := c.FetchText(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	var index dto.AssetIndex
	if err := json.Unmarshal([]byte(text), &index); err != nil {
		return nil, nil, fmt.Errorf("decoding asset index: %w: %v", ErrMalformedBody, err)
	}
	return &index, []byte(text), nil
}

// ParseVersion decodes a version manifest.
//
// Individual fields of the wrong shape decode as empty and are skipped later
// by the Planner; only a document that is not a JSON object, or one without
// a usable id, is rejected.
func ParseVersion(data []byte) (*dto.Version, error) {
	var v dto.Version
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding version manifest: %w: %v", ErrMalformedBody, err)
	}
	if v.ID == "" {
		return nil, fmt.Errorf("decoding version manifest: %w: missing id", ErrMalformedBody)
	}
	if !filepath.IsLocal(v.ID.String()) {
		return nil, fmt.Errorf("decoding version manifest: %w: invalid id %q", ErrMalformedBody, v.ID)
	}
	return &v, nil
}
