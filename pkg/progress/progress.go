package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/owlcode-mcp/text-to-video/pkg/logger"
	"github.com/schollz/progressbar/v3"
)

// ProgressEvent represents a single progress update event, often serialized to JSON.
type ProgressEvent struct {
	// Status indicates the current overall status (e.g., "initialized", "started", "processing", "completed").
	Status string `json:"status"`
	// Percentage represents the progress completion from 0.0 to 100.0.
	Percentage float64 `json:"percentage"`
	// Step provides a high-level description of the current phase (e.g., "generating", "encoding", "uploading").
	Step string `json:"step"`
	// Stage offers a more detailed description within the current step.
	Stage string `json:"stage"`
	// Timestamp marks when the event occurred in RFC3339 format.
	Timestamp string `json:"timestamp"`
}

// Reporter defines the interface for reporting progress during long-running
// operations like generation, encoding or uploading. Components accept
// implementations of this interface to provide progress updates.
type Reporter interface {
	// Start initializes the progress reporting, typically setting the total number of steps or bytes.
	Start(total int64)
	// Update sets the current progress to a specific value.
	// It also takes descriptions of the current step and stage.
	Update(current int64, step, stage string)
	// Increment advances the progress by one step.
	Increment(step, stage string)
	// Complete marks the operation as finished.
	Complete()
	// Updates returns a channel that emits ProgressEvent updates.
	// The channel is closed when the operation completes.
	Updates() <-chan ProgressEvent
}

// reporterOptions holds configuration for the DefaultReporter.
type reporterOptions struct {
	throttle         time.Duration
	progressFilePath string
	description      string
	showBytes        bool
}

// ReporterOption is a function type used to configure a DefaultReporter.
type ReporterOption func(*reporterOptions)

// WithThrottle sets the minimum time interval between progress updates sent
// to the Updates channel. This helps prevent flooding listeners with too many
// events. Defaults to 0 (no throttling) if not set.
func WithThrottle(duration time.Duration) ReporterOption {
	return func(opts *reporterOptions) {
		opts.throttle = duration
	}
}

// WithProgressFile sets the file path where the current percentage should be
// written. The file is created on Start and overwritten on each Update and
// Complete. If the path is empty (default), no file is written.
func WithProgressFile(path string) ReporterOption {
	return func(opts *reporterOptions) {
		opts.progressFilePath = path
	}
}

// WithDescription sets the description text for the console progress bar.
func WithDescription(desc string) ReporterOption {
	return func(opts *reporterOptions) {
		opts.description = desc
	}
}

// WithShowBytes configures the console progress bar to display progress in bytes.
func WithShowBytes(show bool) ReporterOption {
	return func(opts *reporterOptions) {
		opts.showBytes = show
	}
}

// DefaultReporter is the default implementation of the Reporter interface.
// It uses the github.com/schollz/progressbar/v3 library to display a progress
// bar on the console (stderr) and sends ProgressEvent updates to a channel.
type DefaultReporter struct {
	Total      int64
	Current    int64
	Started    time.Time
	Bar        *progressbar.ProgressBar
	Event      ProgressEvent
	opts       reporterOptions
	updatesCh  chan ProgressEvent
	lastUpdate time.Time
	mu         sync.Mutex // Protects access to shared fields
}

// NewReporter creates a new DefaultReporter.
// It accepts optional configuration functions like WithThrottle,
// WithProgressFile, WithDescription, and WithShowBytes.
func NewReporter(opts ...ReporterOption) *DefaultReporter {
	options := reporterOptions{
		description: "Processing...",
		showBytes:   true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &DefaultReporter{
		opts: options,
		Event: ProgressEvent{
			Status:    "initialized",
			Timestamp: time.Now().Format(time.RFC3339),
		},
		lastUpdate: time.Now(),
		updatesCh:  make(chan ProgressEvent, 10),
	}
}

// Start initializes the progress tracking for the DefaultReporter.
// It sets the total number of steps and starts the progress bar.
func (r *DefaultReporter) Start(total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Total = total
	r.Current = 0
	r.Started = time.Now()
	r.Event.Status = "started"
	r.Event.Percentage = 0
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	barOpts := []progressbar.Option{
		progressbar.OptionSetDescription(r.opts.description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	}
	if r.opts.showBytes {
		barOpts = append(barOpts, progressbar.OptionShowBytes(true))
	}

	r.Bar = progressbar.NewOptions64(total, barOpts...)

	r.sendUpdateInternal(true)
	r.writeProgressFileInternal()
}

// Update sets the current progress and reports it via the progress bar and
// Updates channel. Channel updates may be throttled via WithThrottle.
func (r *DefaultReporter) Update(current int64, step, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Bar == nil {
		return // Not started
	}
	if current > r.Total {
		current = r.Total // Cap progress
	}
	r.Current = current

	percentage := 0.0
	if r.Total > 0 {
		percentage = float64(current) / float64(r.Total) * 100
	}
	r.Event.Percentage = percentage
	r.Event.Step = step
	r.Event.Stage = stage
	r.Event.Status = "processing"
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	_ = r.Bar.Set64(current)

	r.sendUpdateInternal(false)
	r.writeProgressFileInternal()
}

// Increment increases the progress by 1 and reports it.
func (r *DefaultReporter) Increment(step, stage string) {
	r.Update(r.Current+1, step, stage)
}

// Complete marks the progress as complete, finishes the progress bar, and
// sends a final update.
func (r *DefaultReporter) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Bar == nil {
		return // Not started or already completed
	}

	_ = r.Bar.Finish()
	r.Current = r.Total
	r.Event.Percentage = 100
	r.Event.Status = "completed"
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	r.sendUpdateInternal(true) // Final update regardless of throttle
	r.writeProgressFileInternal()
	r.Bar = nil
	close(r.updatesCh)
}

// Updates returns the channel for receiving ProgressEvent updates.
func (r *DefaultReporter) Updates() <-chan ProgressEvent {
	return r.updatesCh
}

// JSON returns the current progress event as a JSON string.
func (r *DefaultReporter) JSON() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.Marshal(r.Event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal progress event: %w", err)
	}
	return string(data), nil
}

// sendUpdateInternal handles sending updates to the channel with throttling.
// Requires lock to be held by caller.
func (r *DefaultReporter) sendUpdateInternal(force bool) {
	now := time.Now()
	if !force && now.Sub(r.lastUpdate) < r.opts.throttle {
		return // Throttled
	}
	r.lastUpdate = now

	// Non-blocking send
	select {
	case r.updatesCh <- r.Event:
	default:
	}
}

// writeProgressFileInternal writes the current percentage to the configured
// file. Requires lock to be held by caller.
func (r *DefaultReporter) writeProgressFileInternal() {
	if r.opts.progressFilePath == "" {
		return
	}

	content := []byte(fmt.Sprintf("%.2f", r.Event.Percentage))
	if err := os.WriteFile(r.opts.progressFilePath, content, 0644); err != nil {
		// Log the error but don't stop the whole process
		logger.Warn("Failed to write progress file", "progress", map[string]interface{}{
			"path":  r.opts.progressFilePath,
			"error": err.Error(),
		})
	}
}
