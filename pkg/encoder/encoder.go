package encoder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
	"github.com/owlcode-mcp/text-to-video/pkg/frames"
	"github.com/owlcode-mcp/text-to-video/pkg/logger"
	"github.com/owlcode-mcp/text-to-video/pkg/progress"
)

// Options contains settings for the encoder.
type Options struct {
	// OutputPath is the MP4 file to write.
	OutputPath string
	// FPS is the frame rate of the encoded video.
	FPS int
	// CRF is the x264 constant rate factor. Defaults to 23.
	CRF int
	// FFmpegBinary is the ffmpeg executable to run. Defaults to "ffmpeg".
	FFmpegBinary string
	// FFmpegExtraParams are appended to the ffmpeg command line before the
	// output path.
	FFmpegExtraParams []string
	// Progress optionally receives one update per frame streamed to ffmpeg.
	Progress progress.Reporter
}

// Encoder muxes an in-memory frame sequence into an H.264 MP4 file by
// piping raw RGBA frames to ffmpeg's stdin.
type Encoder struct {
	options Options
	logger  logger.Logger
}

// New creates a new Encoder with default dependencies.
func New(options Options) *Encoder {
	return NewWithDeps(options, logger.NewLogger())
}

// NewWithDeps creates a new Encoder with a custom logger.
func NewWithDeps(options Options, log logger.Logger) *Encoder {
	if options.FFmpegBinary == "" {
		options.FFmpegBinary = "ffmpeg"
	}
	if options.FPS == 0 {
		options.FPS = 8
	}
	if options.CRF == 0 {
		options.CRF = 23
	}
	return &Encoder{options: options, logger: log}
}

// Encode writes the sequence to the configured output path and returns it.
// The sequence must be non-empty with uniform frame dimensions.
func (e *Encoder) Encode(ctx context.Context, seq frames.Sequence) (string, error) {
	if err := seq.Validate(); err != nil {
		return "", err
	}

	if _, err := exec.LookPath(e.options.FFmpegBinary); err != nil {
		return "", errors.Wrap(err, errors.EncodingError,
			errors.GetErrorMessage(errors.ErrFFmpegNotFound), errors.ErrFFmpegNotFound)
	}

	outputDir := filepath.Dir(e.options.OutputPath)
	if outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", errors.Wrap(err, errors.SystemError,
				errors.GetErrorMessage(errors.ErrOutputDirCreateFailed), errors.ErrOutputDirCreateFailed)
		}
	}

	args := e.buildFFmpegArgs(seq.Width(), seq.Height())

	e.logger.Info("Encoding video", "encoder", map[string]interface{}{
		"output": e.options.OutputPath,
		"frames": len(seq),
		"fps":    e.options.FPS,
	})
	e.logger.Debug("Executing FFmpeg command", "ffmpeg", map[string]interface{}{
		"command": e.options.FFmpegBinary + " " + strings.Join(args, " "),
	})

	cmd := exec.CommandContext(ctx, e.options.FFmpegBinary, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", errors.Wrap(err, errors.EncodingError,
			errors.GetErrorMessage(errors.ErrFFmpegStartFailed), errors.ErrFFmpegStartFailed)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", errors.Wrap(err, errors.EncodingError,
			errors.GetErrorMessage(errors.ErrFFmpegStartFailed), errors.ErrFFmpegStartFailed)
	}

	if err := cmd.Start(); err != nil {
		return "", errors.Wrap(err, errors.EncodingError,
			errors.GetErrorMessage(errors.ErrFFmpegStartFailed), errors.ErrFFmpegStartFailed)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			e.logger.Debug(scanner.Text(), "ffmpeg", nil)
		}
	}()

	if e.options.Progress != nil {
		e.options.Progress.Start(int64(len(seq)))
	}

	pipeErr := e.streamFrames(stdin, seq)
	closeErr := stdin.Close()

	if err := cmd.Wait(); err != nil {
		return "", errors.Wrap(err, errors.EncodingError,
			errors.GetErrorMessage(errors.ErrFFmpegRunFailed), errors.ErrFFmpegRunFailed)
	}
	if pipeErr != nil {
		return "", pipeErr
	}
	if closeErr != nil {
		return "", errors.Wrap(closeErr, errors.EncodingError,
			errors.GetErrorMessage(errors.ErrFramePipeFailed), errors.ErrFramePipeFailed)
	}

	if e.options.Progress != nil {
		e.options.Progress.Complete()
	}

	e.logger.Info("Encoding completed", "encoder", map[string]interface{}{
		"output": e.options.OutputPath,
	})
	return e.options.OutputPath, nil
}

// streamFrames writes each frame's packed RGBA rows to the ffmpeg pipe,
// reporting per-frame progress.
func (e *Encoder) streamFrames(stdin io.Writer, seq frames.Sequence) error {
	width := seq.Width()
	rowBytes := width * 4

	for i, frame := range seq {
		// Write row by row so frames with a padded stride stay packed.
		for y := 0; y < frame.Bounds().Dy(); y++ {
			offset := frame.PixOffset(frame.Bounds().Min.X, frame.Bounds().Min.Y+y)
			if _, err := stdin.Write(frame.Pix[offset : offset+rowBytes]); err != nil {
				return errors.Wrap(err, errors.EncodingError,
					errors.GetErrorMessage(errors.ErrFramePipeFailed), errors.ErrFramePipeFailed)
			}
		}
		if e.options.Progress != nil {
			e.options.Progress.Update(int64(i+1), "encoding", "Writing frames")
		}
	}
	return nil
}

// buildFFmpegArgs assembles the ffmpeg command line for a raw RGBA stdin
// stream encoded to H.264.
func (e *Encoder) buildFFmpegArgs(width, height int) []string {
	args := []string{
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(e.options.FPS),
		"-i", "-",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", strconv.Itoa(e.options.CRF),
		"-pix_fmt", "yuv420p",
	}
	args = append(args, e.options.FFmpegExtraParams...)
	args = append(args, "-y", e.options.OutputPath)
	return args
}
