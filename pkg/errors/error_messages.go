package errors

// ErrorMessages maps error codes to standardized user-facing messages.
var ErrorMessages = map[int]string{
	// ValidationError
	ErrEmptyFrameSequence:  "The frame sequence is empty. Generate or load at least one frame before processing.",
	ErrNonPositiveDuration: "Target duration must be greater than zero seconds.",
	ErrNonPositiveFPS:      "Frames per second must be greater than zero.",
	ErrZeroTargetFrames:    "Target duration and fps combine to zero frames. Increase one of them.",
	ErrMismatchedFrameSize: "All frames in a sequence must share the same dimensions.",
	ErrUnknownResolution:   "Unknown resolution preset. Use one of: 480p, 720p, 1080p.",
	ErrUnknownModel:        "Unknown model name. Check the list of supported models.",
	ErrMissingPrompt:       "A text prompt is required to generate a video.",

	// ConfigError
	ErrMissingFTPHost:     "FTP host is not configured. Set the FTP_HOST environment variable.",
	ErrMissingFTPUser:     "FTP user is not configured. Set the FTP_USER environment variable.",
	ErrMissingFTPPassword: "FTP password is not configured. Set the FTP_PASSWORD environment variable.",
	ErrConfigParseFailed:  "Failed to parse configuration from environment variables.",

	// NotFoundError
	ErrLocalFileNotFound: "Local file not found. Check the path and that the file is accessible.",
	ErrLocalFileStat:     "Could not inspect the local file. Check permissions and that the file exists.",

	// ConnectionError
	ErrDialFailed:  "Could not connect to the FTP server. Check the host, port and your network.",
	ErrLoginFailed: "FTP login failed. Check the username and password.",

	// TransferError
	ErrStorFailed:           "The upload stream failed before completing. The remote file may be partial.",
	ErrRemoteDirEnterFailed: "Could not enter or create a remote directory segment.",
	ErrLocalFileOpenFailed:  "Could not open the local file for reading.",

	// VerificationError
	ErrRemoteSizeMismatch: "Remote file size does not match the local file after upload.",
	ErrRemoteSizeQuery:    "Could not query the remote file size for verification.",
	ErrBinaryModeFailed:   "Could not switch the session to binary transfer mode.",

	// GenerationError
	ErrPipelineStartFailed: "Could not start the inference pipeline command.",
	ErrPipelineRunFailed:   "The inference pipeline exited with an error.",
	ErrNoFramesProduced:    "The inference pipeline produced no frames.",
	ErrFrameDecodeFailed:   "Could not decode a frame produced by the pipeline.",
	ErrWeightsFetchFailed:  "Could not fetch the model weights.",

	// EncodingError
	ErrFFmpegNotFound:    "FFmpeg binary not found. Install FFmpeg or set the binary path.",
	ErrFFmpegStartFailed: "Could not start FFmpeg.",
	ErrFFmpegRunFailed:   "FFmpeg exited with an error while encoding.",
	ErrFramePipeFailed:   "Could not stream frames to FFmpeg.",

	// SystemError
	ErrOutputDirCreateFailed: "Failed to create the output directory. Check permissions.",
	ErrWorkDirCreateFailed:   "Failed to create a temporary working directory.",
	ErrHTTPRequestFailed:     "HTTP request failed. Check the URL and your network.",
	ErrHTTPStatusNotOK:       "The server answered with a non-OK HTTP status.",
	ErrFileWriteFailed:       "Failed to write to disk. Check permissions and free space.",
}

// GetErrorMessage returns the standardized message for an error code.
func GetErrorMessage(code int) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return "Unknown error."
}
