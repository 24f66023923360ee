package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jlaffaye/ftp"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
	"github.com/owlcode-mcp/text-to-video/pkg/logger"
	"github.com/owlcode-mcp/text-to-video/pkg/progress"
)

// TransferJob holds the full set of connection and path parameters for one
// upload attempt. It is immutable once constructed; its lifetime is a single
// Upload call.
type TransferJob struct {
	// LocalPath is the file to upload.
	LocalPath string
	// Host and Port locate the FTP server. Port defaults to 21.
	Host string
	Port int
	// User and Password authenticate the session.
	User     string
	Password string
	// RemoteDir is the directory the file is stored in, created segment by
	// segment when absent.
	RemoteDir string
	// RemoteName optionally overrides the remote filename. Defaults to the
	// local file's base name.
	RemoteName string
}

// TransferResult reports the outcome of one upload attempt.
type TransferResult struct {
	// Success is true when the file was stored and the remote size matches.
	Success bool
	// RemotePath is the full remote path the upload targeted, when known.
	RemotePath string
	// BytesSent is the number of bytes streamed to the server.
	BytesSent int64
	// ExpectedBytes is the local file size.
	ExpectedBytes int64
	// RemoteBytes is the size the server reported after the transfer, when
	// verification ran.
	RemoteBytes int64
}

// Uploader transfers local files to an FTP server. Each Upload call owns an
// independent connection for its full duration, so concurrent calls on one
// Uploader do not share state.
type Uploader struct {
	dial    Dialer
	progRep progress.Reporter
	logger  logger.Logger
}

// New creates a new Uploader with default dependencies.
func New(progressReporter progress.Reporter) *Uploader {
	return NewWithDeps(progressReporter, logger.NewLogger(), dialFTP)
}

// NewWithDeps creates a new Uploader with custom dependencies.
func NewWithDeps(progressReporter progress.Reporter, log logger.Logger, dial Dialer) *Uploader {
	if dial == nil {
		dial = dialFTP
	}
	return &Uploader{
		dial:    dial,
		progRep: progressReporter,
		logger:  log,
	}
}

// Upload transfers the job's local file to the remote server: connect,
// login, enter (or create) the remote directory, stream the file as a
// binary upload with progress callbacks, then verify the remote size.
// A size mismatch yields a failed result with a verification error; the
// control connection is closed on every path. Single attempt, no retry.
func (u *Uploader) Upload(ctx context.Context, job TransferJob) (TransferResult, error) {
	result := TransferResult{}

	if job.Host == "" {
		return result, errors.New(errors.ConfigError,
			errors.GetErrorMessage(errors.ErrMissingFTPHost), "", errors.ErrMissingFTPHost)
	}
	if job.User == "" {
		return result, errors.New(errors.ConfigError,
			errors.GetErrorMessage(errors.ErrMissingFTPUser), "", errors.ErrMissingFTPUser)
	}

	info, err := os.Stat(job.LocalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return result, errors.New(errors.NotFoundError,
				errors.GetErrorMessage(errors.ErrLocalFileNotFound), job.LocalPath, errors.ErrLocalFileNotFound)
		}
		return result, errors.Wrap(err, errors.NotFoundError,
			errors.GetErrorMessage(errors.ErrLocalFileStat), errors.ErrLocalFileStat)
	}
	result.ExpectedBytes = info.Size()

	remoteName := job.RemoteName
	if remoteName == "" {
		remoteName = filepath.Base(job.LocalPath)
	}
	result.RemotePath = RemotePath(job.RemoteDir, remoteName)

	port := job.Port
	if port == 0 {
		port = 21
	}
	addr := fmt.Sprintf("%s:%d", job.Host, port)

	u.logger.Info("Connecting to FTP server", "uploader", map[string]interface{}{
		"addr":        addr,
		"remote_path": result.RemotePath,
		"size":        result.ExpectedBytes,
	})

	conn, err := u.dial(ctx, addr)
	if err != nil {
		return result, errors.Wrap(err, errors.ConnectionError,
			errors.GetErrorMessage(errors.ErrDialFailed), errors.ErrDialFailed)
	}
	// The control connection is released on every path, success or failure.
	defer func() {
		if quitErr := conn.Quit(); quitErr != nil {
			u.logger.Warn("Failed to close FTP connection", "uploader", map[string]interface{}{
				"error": quitErr.Error(),
			})
		}
	}()

	if err := conn.Login(job.User, job.Password); err != nil {
		return result, errors.Wrap(err, errors.ConnectionError,
			errors.GetErrorMessage(errors.ErrLoginFailed), errors.ErrLoginFailed)
	}

	if job.RemoteDir != "" {
		if err := conn.ChangeDir(job.RemoteDir); err != nil {
			u.logger.Info("Remote directory missing, creating it", "uploader", map[string]interface{}{
				"dir": job.RemoteDir,
			})
			if err := u.ensureRemoteDir(conn, job.RemoteDir); err != nil {
				return result, err
			}
		}
	}

	file, err := os.Open(job.LocalPath)
	if err != nil {
		return result, errors.Wrap(err, errors.TransferError,
			errors.GetErrorMessage(errors.ErrLocalFileOpenFailed), errors.ErrLocalFileOpenFailed)
	}
	defer file.Close()

	if u.progRep != nil {
		u.progRep.Start(result.ExpectedBytes)
	}

	reader := &progressReader{reader: file, reporter: u.progRep}
	if err := conn.Stor(remoteName, reader); err != nil {
		result.BytesSent = reader.sent
		return result, errors.Wrap(err, errors.TransferError,
			errors.GetErrorMessage(errors.ErrStorFailed), errors.ErrStorFailed)
	}
	result.BytesSent = reader.sent

	if u.progRep != nil {
		u.progRep.Complete()
	}

	// Binary mode is already in effect for the transfer; setting it again
	// is idempotent and guarantees SIZE reports bytes.
	if err := conn.Type(ftp.TransferTypeBinary); err != nil {
		return result, errors.Wrap(err, errors.VerificationError,
			errors.GetErrorMessage(errors.ErrBinaryModeFailed), errors.ErrBinaryModeFailed)
	}

	remoteSize, err := conn.FileSize(remoteName)
	if err != nil {
		return result, errors.Wrap(err, errors.VerificationError,
			errors.GetErrorMessage(errors.ErrRemoteSizeQuery), errors.ErrRemoteSizeQuery)
	}
	result.RemoteBytes = remoteSize

	if remoteSize != result.ExpectedBytes {
		return result, errors.New(errors.VerificationError,
			errors.GetErrorMessage(errors.ErrRemoteSizeMismatch),
			fmt.Sprintf("local: %d bytes, remote: %d bytes", result.ExpectedBytes, remoteSize),
			errors.ErrRemoteSizeMismatch)
	}

	result.Success = true
	u.logger.Info("Upload completed", "uploader", map[string]interface{}{
		"remote_path": result.RemotePath,
		"bytes":       result.BytesSent,
	})
	return result, nil
}

// ensureRemoteDir creates the remote directory path segment by segment,
// entering each one: try to enter, create on failure, then enter again.
// This builds arbitrarily deep nested paths incrementally. A failed MakeDir
// is tolerated when the follow-up ChangeDir succeeds (the segment already
// existed).
func (u *Uploader) ensureRemoteDir(conn Session, dir string) error {
	for _, segment := range strings.Split(dir, "/") {
		if segment == "" {
			continue
		}
		if err := conn.ChangeDir(segment); err == nil {
			continue
		}
		if err := conn.MakeDir(segment); err != nil {
			u.logger.Debug("MakeDir failed, segment may already exist", "uploader", map[string]interface{}{
				"segment": segment,
				"error":   err.Error(),
			})
		}
		if err := conn.ChangeDir(segment); err != nil {
			return errors.Wrap(err, errors.TransferError,
				errors.GetErrorMessage(errors.ErrRemoteDirEnterFailed), errors.ErrRemoteDirEnterFailed)
		}
	}
	return nil
}

// RemotePath joins a remote directory and filename, collapsing the doubled
// slash that concatenation can introduce.
func RemotePath(remoteDir, name string) string {
	return strings.ReplaceAll(remoteDir+"/"+name, "//", "/")
}

// progressReader wraps the local file and reports the cumulative number of
// bytes handed to the transport, so a caller can render percentage-complete
// feedback without the file being buffered whole.
type progressReader struct {
	reader   io.Reader
	reporter progress.Reporter
	sent     int64
}

// Read implements io.Reader and updates the progress reporter.
func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.sent += int64(n)
		if pr.reporter != nil {
			pr.reporter.Update(pr.sent, "uploading", "Uploading file")
		}
	}
	return n, err
}
