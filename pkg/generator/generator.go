package generator

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/owlcode-mcp/text-to-video/pkg/config"
	"github.com/owlcode-mcp/text-to-video/pkg/downloader"
	"github.com/owlcode-mcp/text-to-video/pkg/errors"
	"github.com/owlcode-mcp/text-to-video/pkg/frames"
	"github.com/owlcode-mcp/text-to-video/pkg/logger"
	"github.com/owlcode-mcp/text-to-video/pkg/progress"
)

// Pipeline is the opaque pretrained generation collaborator: given a text
// prompt and a frame count it returns a sequence of decoded frames.
type Pipeline interface {
	Generate(ctx context.Context, prompt string, numFrames int) (frames.Sequence, error)
}

// Options contains settings for the command-backed pipeline.
type Options struct {
	// Model selects a registered model; empty falls back to the default.
	Model string

	// Width and Height override the model's native output size.
	Width  int
	Height int

	// Inference parameters; zero values take the pipeline defaults.
	Steps         int
	GuidanceScale float64
	Seed          int64

	// Device selects the compute device; empty triggers detection.
	Device string

	// PipelineBinary is the inference command to run.
	PipelineBinary string
	// PipelineExtraParams are appended verbatim to the inference command.
	PipelineExtraParams []string

	// WorkDir is where per-run frame directories are created.
	// Defaults to the system temp directory.
	WorkDir string

	// WeightsURL, when set, is fetched into CacheDir before the first run
	// and handed to the pipeline as its weights path.
	WeightsURL string
	CacheDir   string

	// Progress optionally receives per-frame updates while the pipeline
	// output is collected.
	Progress progress.Reporter
}

// CommandPipeline runs an external inference command that writes numbered
// PNG frames into a working directory, then collects them in filename order.
type CommandPipeline struct {
	options Options
	model   ModelConfig
	logger  logger.Logger
}

// New creates a pipeline with default dependencies.
func New(options Options) *CommandPipeline {
	return NewWithDeps(options, logger.NewLogger())
}

// NewWithDeps creates a pipeline with a custom logger.
func NewWithDeps(options Options, log logger.Logger) *CommandPipeline {
	model := ModelFor(options.Model)

	if options.Width == 0 {
		options.Width = model.DefaultWidth
	}
	if options.Height == 0 {
		options.Height = model.DefaultHeight
	}
	if options.Steps == 0 {
		options.Steps = 50
	}
	if options.GuidanceScale == 0 {
		options.GuidanceScale = 6.0
	}
	if options.Seed == 0 {
		options.Seed = 42
	}
	if options.Device == "" {
		options.Device = config.DetectDevice()
	}
	if options.PipelineBinary == "" {
		options.PipelineBinary = "t2v-pipeline"
	}
	if options.CacheDir == "" {
		options.CacheDir = "models"
	}

	return &CommandPipeline{
		options: options,
		model:   model,
		logger:  log,
	}
}

// Model returns the resolved model configuration.
func (p *CommandPipeline) Model() ModelConfig {
	return p.model
}

// Generate runs the inference command and returns the produced frames.
// numFrames <= 0 requests the model's maximum clip length.
func (p *CommandPipeline) Generate(ctx context.Context, prompt string, numFrames int) (frames.Sequence, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrMissingPrompt), "", errors.ErrMissingPrompt)
	}
	if numFrames <= 0 || numFrames > p.model.MaxFrames {
		numFrames = p.model.MaxFrames
	}

	weightsPath, err := p.prepareWeights(ctx)
	if err != nil {
		return nil, err
	}

	frameDir, err := os.MkdirTemp(p.options.WorkDir, "t2v_frames_*")
	if err != nil {
		return nil, errors.Wrap(err, errors.SystemError,
			errors.GetErrorMessage(errors.ErrWorkDirCreateFailed), errors.ErrWorkDirCreateFailed)
	}
	defer os.RemoveAll(frameDir)

	args := p.buildPipelineArgs(prompt, numFrames, frameDir, weightsPath)

	p.logger.Info("Running inference pipeline", "generator", map[string]interface{}{
		"model":  p.model.Name,
		"device": p.options.Device,
		"frames": numFrames,
	})
	p.logger.Debug("Pipeline command", "generator", map[string]interface{}{
		"command": p.options.PipelineBinary + " " + strings.Join(args, " "),
	})

	cmd := exec.CommandContext(ctx, p.options.PipelineBinary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, errors.GenerationError,
			errors.GetErrorMessage(errors.ErrPipelineStartFailed), errors.ErrPipelineStartFailed)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, errors.GenerationError,
			errors.GetErrorMessage(errors.ErrPipelineStartFailed), errors.ErrPipelineStartFailed)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			p.logger.Debug(scanner.Text(), "pipeline", nil)
		}
	}()

	if err := cmd.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.GenerationError,
			errors.GetErrorMessage(errors.ErrPipelineRunFailed), errors.ErrPipelineRunFailed)
	}

	seq, err := LoadFrames(frameDir, p.options.Progress)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Generation completed", "generator", map[string]interface{}{
		"frames": len(seq),
	})
	return seq, nil
}

// prepareWeights fetches the weights archive into the cache when a URL is
// configured. Returns the local path, or "" when the pipeline resolves
// weights on its own.
func (p *CommandPipeline) prepareWeights(ctx context.Context) (string, error) {
	if p.options.WeightsURL == "" {
		return "", nil
	}

	target := filepath.Join(p.options.CacheDir, filepath.Base(p.options.WeightsURL))
	fetcher := downloader.New(downloader.Options{
		URL:        p.options.WeightsURL,
		OutputPath: target,
		Progress:   p.options.Progress,
	})

	path, err := fetcher.Fetch(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.GenerationError,
			errors.GetErrorMessage(errors.ErrWeightsFetchFailed), errors.ErrWeightsFetchFailed)
	}
	return path, nil
}

// buildPipelineArgs assembles the inference command line.
func (p *CommandPipeline) buildPipelineArgs(prompt string, numFrames int, frameDir, weightsPath string) []string {
	args := []string{
		"--prompt", prompt,
		"--model", p.model.RepoID,
		"--num-frames", strconv.Itoa(numFrames),
		"--width", strconv.Itoa(p.options.Width),
		"--height", strconv.Itoa(p.options.Height),
		"--steps", strconv.Itoa(p.options.Steps),
		"--guidance-scale", fmt.Sprintf("%g", p.options.GuidanceScale),
		"--seed", strconv.FormatInt(p.options.Seed, 10),
		"--device", p.options.Device,
		"--output-dir", frameDir,
	}
	if weightsPath != "" {
		args = append(args, "--weights", weightsPath)
	}
	if p.options.Device == config.DeviceCUDA && config.ShouldUseQuantization() {
		args = append(args, "--quantize")
	}
	args = append(args, p.options.PipelineExtraParams...)
	return args
}

// LoadFrames decodes all PNG frames in a directory, sorted by filename, into
// a frame sequence. The reporter, when non-nil, receives one update per
// decoded frame.
func LoadFrames(dir string, reporter progress.Reporter) (frames.Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.GenerationError,
			errors.GetErrorMessage(errors.ErrNoFramesProduced), errors.ErrNoFramesProduced)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, errors.New(errors.GenerationError,
			errors.GetErrorMessage(errors.ErrNoFramesProduced), dir, errors.ErrNoFramesProduced)
	}

	if reporter != nil {
		reporter.Start(int64(len(names)))
	}

	seq := make(frames.Sequence, 0, len(names))
	for i, name := range names {
		img, err := decodePNG(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(err, errors.GenerationError,
				errors.GetErrorMessage(errors.ErrFrameDecodeFailed), errors.ErrFrameDecodeFailed)
		}
		seq = append(seq, toRGBA(img))
		if reporter != nil {
			reporter.Update(int64(i+1), "generating", "Collecting frames")
		}
	}

	if reporter != nil {
		reporter.Complete()
	}

	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// toRGBA re-draws an image into a zero-origin RGBA buffer so downstream
// consumers can rely on a packed 4-byte pixel layout.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
