// Package http provides the HTTP client used for manifests and downloads.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Streaming file downloads that report bytes written and Content-Length
//   - An optional bandwidth cap shared across concurrent downloads
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(http.WithRateLimit(4 << 20))
//
//	// Fetch a manifest
//	text, err := client.GetString(ctx, manifestURL)
//
//	// Download a file
//	res, err := client.DownloadFile(ctx, jarURL, "/path/to/client.jar", nil)
//	if err == nil && res.ContentLength > 0 && res.Written != res.ContentLength {
//	    // truncated transfer
//	}
package http
