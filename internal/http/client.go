package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/juju/ratelimit"
)

const (
	DefaultTimeout   = 5 * time.Minute
	DefaultUserAgent = "minecraft-fetcher"
)

// Client wraps HTTP operations used for manifests and file downloads.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Streaming file download with a byte counter
//   - Optional bandwidth limit shared by every request
//
// Example usage:
//
//	client := NewClient(WithTimeout(time.Minute))
//
//	// Fetch a manifest
//	text, err := client.GetString(ctx, "https://piston-meta.mojang.com/mc/game/version_manifest.json")
//
//	// Stream a file to disk
//	res, err := client.DownloadFile(ctx, jarURL, "/path/to/client.jar", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
	bucket     *ratelimit.Bucket
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit caps the combined download rate of all bodies read through
// the client. A non-positive rate disables the cap.
func WithRateLimit(bytesPerSecond int64) Option {
	return func(c *Client) {
		if bytesPerSecond > 0 {
			c.bucket = ratelimit.NewBucketWithRate(float64(bytesPerSecond), bytesPerSecond)
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}

// DownloadResult describes a completed file download.
type DownloadResult struct {
	// Written is the number of body bytes written to disk.
	Written int64

	// ContentLength is the server-declared size, or -1 if unknown.
	ContentLength int64
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(c.body(resp))
}

// GetString performs a GET request and returns the response body as a string.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadFile streams url into destPath, creating or truncating it.
//
// The body is never held in memory. The returned DownloadResult carries the
// number of bytes written and the declared Content-Length so the caller can
// detect truncated transfers. On error a partially written file may remain;
// removing it is the caller's job.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (*DownloadResult, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pw := &ProgressWriter{
		Writer:   file,
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}

	if _, err := io.Copy(pw, c.body(resp)); err != nil {
		return &DownloadResult{Written: pw.Written, ContentLength: resp.ContentLength}, err
	}

	if err := file.Close(); err != nil {
		return &DownloadResult{Written: pw.Written, ContentLength: resp.ContentLength}, err
	}

	return &DownloadResult{Written: pw.Written, ContentLength: resp.ContentLength}, nil
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}

func (c *Client) body(resp *http.Response) io.Reader {
	if c.bucket == nil {
		return resp.Body
	}
	return ratelimit.Reader(resp.Body, c.bucket)
}
