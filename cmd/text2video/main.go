package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/owlcode-mcp/text-to-video/pkg/config"
	"github.com/owlcode-mcp/text-to-video/pkg/encoder"
	"github.com/owlcode-mcp/text-to-video/pkg/errors"
	"github.com/owlcode-mcp/text-to-video/pkg/frames"
	"github.com/owlcode-mcp/text-to-video/pkg/generator"
	"github.com/owlcode-mcp/text-to-video/pkg/logger"
	"github.com/owlcode-mcp/text-to-video/pkg/progress"
	"github.com/owlcode-mcp/text-to-video/pkg/uploader"
)

var (
	// Generation options
	prompt     string
	duration   int
	resolution string
	modelName  string
	fps        int

	// Output options
	outputName string
	outputDir  string

	// Upload options
	noUpload bool

	// Advanced options
	ffmpegBinary   string
	pipelineBinary string
	weightsURL     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "text2video",
		Short: "Generate videos from text prompts and deliver them over FTP",
		Long: `text2video invokes a pretrained text-to-video pipeline, extends the
generated clip to a target duration, encodes it to MP4 and uploads the
result to an FTP server.`,
		Run: runGenerate,
	}

	// Generation flags
	rootCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Text description of the video to generate (required)")
	rootCmd.Flags().IntVarP(&duration, "duration", "d", config.DefaultDuration, "Video duration in seconds")
	rootCmd.Flags().StringVarP(&resolution, "resolution", "r", config.DefaultResolution, "Video resolution preset (480p, 720p, 1080p)")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", config.DefaultModel, "Model to use")
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "Frames per second")

	// Output flags
	rootCmd.Flags().StringVarP(&outputName, "output", "o", "", "Output filename (default: auto-generated)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default: from OUTPUT_DIR or 'outputs')")

	// Upload flags
	rootCmd.Flags().BoolVar(&noUpload, "no-upload", false, "Skip the FTP upload")

	// Advanced flags
	rootCmd.Flags().StringVar(&ffmpegBinary, "ffmpeg", "ffmpeg", "Path to ffmpeg binary")
	rootCmd.Flags().StringVar(&pipelineBinary, "pipeline", "", "Path to the inference pipeline binary")
	rootCmd.Flags().StringVar(&weightsURL, "weights-url", "", "URL of a model weights archive to fetch before generation")

	rootCmd.MarkFlagRequired("prompt")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-signalChan
		logger.Info("Received signal, shutting down", "main", map[string]interface{}{
			"signal": sig.String(),
		})
		cancel()
	}()

	if !generator.KnownModel(modelName) {
		logger.Fatal("Unknown model", "main", map[string]interface{}{
			"model":     modelName,
			"supported": generator.ModelNames(),
		})
		return
	}
	model := generator.ModelFor(modelName)

	preset, err := encoder.PresetFor(resolution)
	if err != nil {
		logger.Fatal("Invalid resolution", "main", map[string]interface{}{
			"resolution": resolution,
			"supported":  encoder.PresetNames(),
		})
		return
	}

	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputName == "" {
		outputName = generateFilename("video", "mp4")
	}
	outputPath := filepath.Join(outputDir, outputName)

	logger.Info("Starting generation", "main", map[string]interface{}{
		"prompt":     prompt,
		"model":      model.Name,
		"resolution": preset.Name,
		"duration":   duration,
		"fps":        fps,
		"output":     outputPath,
	})

	// Generate
	pipeline := generator.New(generator.Options{
		Model:          modelName,
		Width:          preset.Width,
		Height:         preset.Height,
		PipelineBinary: pipelineBinary,
		WeightsURL:     weightsURL,
		Progress:       progress.NewReporter(progress.WithDescription("Generating..."), progress.WithShowBytes(false)),
	})

	generated, err := pipeline.Generate(ctx, prompt, model.MaxFrames)
	if err != nil {
		logger.Fatal("Generation failed", "main", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	// Extend or trim to the target duration
	normalized, err := frames.Normalize(generated, float64(duration), fps)
	if err != nil {
		logger.Fatal("Frame normalization failed", "main", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	logger.Info("Frames normalized", "main", map[string]interface{}{
		"generated": len(generated),
		"target":    len(normalized),
	})

	// Encode
	enc := encoder.New(encoder.Options{
		OutputPath:   outputPath,
		FPS:          fps,
		FFmpegBinary: ffmpegBinary,
		Progress:     progress.NewReporter(progress.WithDescription("Encoding..."), progress.WithShowBytes(false)),
	})
	if _, err := enc.Encode(ctx, normalized); err != nil {
		logger.Fatal("Encoding failed", "main", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if info, err := os.Stat(outputPath); err == nil {
		logger.Info("Video generated", "main", map[string]interface{}{
			"output": outputPath,
			"size":   formatFileSize(info.Size()),
		})
	} else {
		logger.Info("Video generated", "main", map[string]interface{}{
			"output": outputPath,
		})
	}

	if noUpload {
		logger.Info("Skipping FTP upload", "main", nil)
		return
	}

	// Upload
	if err := cfg.ValidateFTP(); err != nil {
		logger.Fatal("FTP configuration incomplete", "main", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	up := uploader.New(progress.NewReporter(progress.WithDescription("Uploading...")))
	result, err := up.Upload(ctx, uploader.TransferJob{
		LocalPath: outputPath,
		Host:      cfg.FTPHost,
		Port:      cfg.FTPPort,
		User:      cfg.FTPUser,
		Password:  cfg.FTPPassword,
		RemoteDir: cfg.FTPRemoteDir,
	})
	if err != nil {
		if errors.IsType(err, errors.VerificationError) {
			// The file is on the server but its size does not match; report
			// and leave it in place, no retry.
			logger.Error("Upload verification failed", "main", map[string]interface{}{
				"remote_path": result.RemotePath,
				"expected":    result.ExpectedBytes,
				"remote":      result.RemoteBytes,
			})
			os.Exit(1)
		}
		logger.Fatal("Upload failed", "main", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Upload completed", "main", map[string]interface{}{
		"remote_path": result.RemotePath,
		"size":        formatFileSize(result.BytesSent),
	})
}

// formatFileSize renders a byte count in human-readable units.
func formatFileSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}

// generateFilename builds a timestamped filename like video_20260824_153012.mp4.
func generateFilename(prefix, extension string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), extension)
}
