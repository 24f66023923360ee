package downloader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/owlcode-mcp/text-to-video/pkg/progress"
)

// mockProgressReporter is a simple recording reporter for tests.
type mockProgressReporter struct {
	started   bool
	completed bool
	updates   int
	total     int64
	current   int64
}

func (m *mockProgressReporter) Start(total int64)                 { m.started = true; m.total = total }
func (m *mockProgressReporter) Update(current int64, _, _ string) { m.updates++; m.current = current }
func (m *mockProgressReporter) Increment(_, _ string)             { m.updates++; m.current++ }
func (m *mockProgressReporter) Complete()                         { m.completed = true }
func (m *mockProgressReporter) Updates() <-chan progress.ProgressEvent {
	ch := make(chan progress.ProgressEvent)
	close(ch)
	return ch
}

func TestNewFetcher(t *testing.T) {
	f := New(Options{})
	if f == nil {
		t.Fatal("New() returned nil")
	}
	if f.client.Timeout != 30*time.Minute {
		t.Errorf("Expected default timeout 30m, got %v", f.client.Timeout)
	}

	fWithTimeout := New(Options{Timeout: 5 * time.Minute})
	if fWithTimeout.client.Timeout != 5*time.Minute {
		t.Errorf("Expected timeout 5m, got %v", fWithTimeout.client.Timeout)
	}
}

func TestFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "12")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "test weights")
	}))
	defer server.Close()

	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "weights.bin")

	mockReporter := &mockProgressReporter{}
	f := New(Options{
		URL:           server.URL,
		OutputPath:    outputPath,
		Progress:      mockReporter,
		AllowOverride: true,
	})

	fetchedPath, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if fetchedPath != outputPath {
		t.Errorf("Fetch() returned path %q, want %q", fetchedPath, outputPath)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read fetched file: %v", err)
	}
	if string(content) != "test weights" {
		t.Errorf("Fetched content = %q, want %q", string(content), "test weights")
	}

	if !mockReporter.started {
		t.Error("Progress reporter Start() was not called")
	}
	if !mockReporter.completed {
		t.Error("Progress reporter Complete() was not called")
	}
	if mockReporter.updates == 0 {
		t.Error("Progress reporter Update() was never called")
	}
}

func TestFetcher_Fetch_ReusesCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Server should not be called when the artifact is cached")
	}))
	defer server.Close()

	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "weights.bin")
	if err := os.WriteFile(outputPath, []byte("cached"), 0644); err != nil {
		t.Fatalf("Failed to create cached file: %v", err)
	}

	f := New(Options{URL: server.URL, OutputPath: outputPath})

	fetchedPath, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if fetchedPath != outputPath {
		t.Errorf("Fetch() returned path %q, want %q", fetchedPath, outputPath)
	}

	content, _ := os.ReadFile(outputPath)
	if string(content) != "cached" {
		t.Errorf("Cached content was overwritten: %q", string(content))
	}
}

func TestFetcher_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	tempDir := t.TempDir()
	f := New(Options{
		URL:           server.URL,
		OutputPath:    filepath.Join(tempDir, "weights.bin"),
		AllowOverride: true,
	})

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() succeeded, want error for 404 response")
	}
}
