package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
	"github.com/owlcode-mcp/text-to-video/pkg/logger"
	"github.com/owlcode-mcp/text-to-video/pkg/progress"
)

// Options represents configuration options for the Fetcher.
type Options struct {
	// URL is the web address of the artifact to fetch, typically a model
	// weights archive.
	URL string
	// OutputPath is the local cache path where the artifact will be saved.
	OutputPath string
	// Timeout sets the maximum time allowed for the HTTP operation.
	// Defaults to 30 minutes if not specified; weight archives are large.
	Timeout time.Duration
	// Progress is an optional progress.Reporter to receive download updates.
	Progress progress.Reporter
	// AllowOverride, if true, re-downloads even when the artifact already
	// exists at OutputPath. The default keeps the cached copy.
	AllowOverride bool
}

// Fetcher downloads pipeline artifacts over HTTP into a local cache.
// Create instances using New().
type Fetcher struct {
	client  *http.Client
	options Options
}

// New creates a new Fetcher configured with the provided options.
// It sets a default timeout of 30 minutes if Options.Timeout is zero.
func New(options Options) *Fetcher {
	if options.Timeout == 0 {
		options.Timeout = 30 * time.Minute
	}

	return &Fetcher{
		client:  &http.Client{Timeout: options.Timeout},
		options: options,
	}
}

// Fetch downloads the artifact to the cache path, creating parent
// directories as needed. A cached copy is reused unless AllowOverride is
// set. The context can cancel the transfer. Returns the local path.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	outputDir := filepath.Dir(f.options.OutputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.SystemError,
			errors.GetErrorMessage(errors.ErrOutputDirCreateFailed), errors.ErrOutputDirCreateFailed)
	}

	if _, err := os.Stat(f.options.OutputPath); err == nil && !f.options.AllowOverride {
		logger.Info("Artifact already cached, skipping fetch", "downloader", map[string]interface{}{
			"path": f.options.OutputPath,
		})
		return f.options.OutputPath, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.options.URL, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.SystemError,
			errors.GetErrorMessage(errors.ErrHTTPRequestFailed), errors.ErrHTTPRequestFailed)
	}

	logger.Info("Fetching artifact", "downloader", map[string]interface{}{
		"url":  f.options.URL,
		"path": f.options.OutputPath,
	})

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.SystemError,
			errors.GetErrorMessage(errors.ErrHTTPRequestFailed), errors.ErrHTTPRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New(errors.SystemError,
			errors.GetErrorMessage(errors.ErrHTTPStatusNotOK),
			fmt.Sprintf("status: %s", resp.Status), errors.ErrHTTPStatusNotOK)
	}

	file, err := os.Create(f.options.OutputPath)
	if err != nil {
		return "", errors.Wrap(err, errors.SystemError,
			errors.GetErrorMessage(errors.ErrFileWriteFailed), errors.ErrFileWriteFailed)
	}
	defer file.Close()

	contentLength := resp.ContentLength
	if contentLength > 0 && f.options.Progress != nil {
		f.options.Progress.Start(contentLength)
	}

	var reader io.Reader = resp.Body
	if f.options.Progress != nil && contentLength > 0 {
		reader = &progressReader{
			reader:   resp.Body,
			reporter: f.options.Progress,
		}
	}

	if _, err := io.Copy(file, reader); err != nil {
		return "", errors.Wrap(err, errors.SystemError,
			errors.GetErrorMessage(errors.ErrFileWriteFailed), errors.ErrFileWriteFailed)
	}

	if f.options.Progress != nil {
		f.options.Progress.Complete()
	}

	logger.Info("Fetch completed", "downloader", map[string]interface{}{
		"path": f.options.OutputPath,
	})

	return f.options.OutputPath, nil
}

// progressReader is an internal io.Reader wrapper that reports the
// cumulative number of bytes read via a progress.Reporter.
type progressReader struct {
	reader   io.Reader
	reporter progress.Reporter
	read     int64
}

// Read implements io.Reader and updates the progress reporter.
func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pr.reporter.Update(pr.read, "fetching", "Fetching model weights")
	}
	return n, err
}
