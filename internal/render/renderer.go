package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrRenderFailed indicates the rendering service rejected the document
// or returned a non-success status.
var ErrRenderFailed = errors.New("rendering service failed to produce a document")

// Renderer converts a complete HTML document body into PDF bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// HTTPRenderer calls the external HTML-to-PDF service over HTTP. The
// call is a single synchronous request; there is no retry, the caller
// decides whether to resubmit.
type HTTPRenderer struct {
	url    string
	client *http.Client
}

// NewHTTPRenderer creates a renderer targeting the given service URL.
func NewHTTPRenderer(url string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// RenderPDF posts the document body to the rendering service and
// returns the binary page content.
func (r *HTTPRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrRenderFailed, resp.Status)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrRenderFailed, err)
	}
	return pdf, nil
}
