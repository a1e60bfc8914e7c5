package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Artifact is an acquired artifact on local disk. Close removes any
// temporary download; callers must call it on every exit path.
type Artifact struct {
	Path      string
	temporary bool
}

// Close removes the backing file if it was downloaded for inspection.
func (a *Artifact) Close() error {
	if !a.temporary {
		return nil
	}
	return os.Remove(a.Path)
}

// Accessor acquires an artifact from a location: a local filesystem path or
// a fetchable URL.
type Accessor interface {
	Open(ctx context.Context, location string) (*Artifact, error)
}

// FileAccessor resolves local paths as-is and downloads http(s) locations to
// a temporary file. It performs no retries; transient failures surface once
// and retry policy stays with the caller.
type FileAccessor struct {
	httpClient *http.Client
}

// AccessorOption configures a FileAccessor.
type AccessorOption func(*FileAccessor)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) AccessorOption {
	return func(a *FileAccessor) {
		a.httpClient = c
	}
}

// NewFileAccessor returns an Accessor over the local filesystem and HTTP.
func NewFileAccessor(opts ...AccessorOption) *FileAccessor {
	a := &FileAccessor{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open acquires the artifact at location. Local paths are returned without
// touching the file; existence is the next phase's concern.
func (a *FileAccessor) Open(ctx context.Context, location string) (*Artifact, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" {
		return &Artifact{Path: location}, nil
	}
	return a.download(ctx, location)
}

// download fetches a remote artifact into a temp file. The file is removed
// on any failure; on success the caller owns removal through Artifact.Close.
func (a *FileAccessor) download(ctx context.Context, rawURL string) (*Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", "catforge-verifier")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download of %s returned status %d", rawURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "catforge-artifact-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("closing download: %w", err)
	}

	return &Artifact{Path: tmp.Name(), temporary: true}, nil
}
