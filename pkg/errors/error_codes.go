package errors

// Error codes grouped per component.
const (
	// ValidationError codes (100-199)
	ErrEmptyFrameSequence  = 100
	ErrNonPositiveDuration = 101
	ErrNonPositiveFPS      = 102
	ErrZeroTargetFrames    = 103
	ErrMismatchedFrameSize = 104
	ErrUnknownResolution   = 105
	ErrUnknownModel        = 106
	ErrMissingPrompt       = 107

	// ConfigError codes (200-299)
	ErrMissingFTPHost     = 200
	ErrMissingFTPUser     = 201
	ErrMissingFTPPassword = 202
	ErrConfigParseFailed  = 203

	// NotFoundError codes (300-399)
	ErrLocalFileNotFound = 300
	ErrLocalFileStat     = 301

	// ConnectionError codes (400-499)
	ErrDialFailed  = 400
	ErrLoginFailed = 401

	// TransferError codes (500-599)
	ErrStorFailed           = 500
	ErrRemoteDirEnterFailed = 501
	ErrLocalFileOpenFailed  = 502

	// VerificationError codes (600-699)
	ErrRemoteSizeMismatch = 600
	ErrRemoteSizeQuery    = 601
	ErrBinaryModeFailed   = 602

	// GenerationError codes (700-799)
	ErrPipelineStartFailed = 700
	ErrPipelineRunFailed   = 701
	ErrNoFramesProduced    = 702
	ErrFrameDecodeFailed   = 703
	ErrWeightsFetchFailed  = 704

	// EncodingError codes (800-899)
	ErrFFmpegNotFound    = 800
	ErrFFmpegStartFailed = 801
	ErrFFmpegRunFailed   = 802
	ErrFramePipeFailed   = 803

	// SystemError codes (900-999)
	ErrOutputDirCreateFailed = 900
	ErrWorkDirCreateFailed   = 901
	ErrHTTPRequestFailed     = 902
	ErrHTTPStatusNotOK       = 903
	ErrFileWriteFailed       = 904
)
