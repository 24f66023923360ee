package uploader

import (
	"context"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
)

// Session is the slice of an FTP control connection the uploader uses.
// *ftp.ServerConn satisfies it; tests substitute a scripted fake, and a
// custom Dialer passed to NewWithDeps may return any implementation.
type Session interface {
	Login(user, password string) error
	ChangeDir(path string) error
	MakeDir(path string) error
	Stor(path string, r io.Reader) error
	Type(transferType ftp.TransferType) error
	FileSize(path string) (int64, error)
	Quit() error
}

// Dialer opens an FTP control connection to addr ("host:port").
type Dialer func(ctx context.Context, addr string) (Session, error)

// defaultDialTimeout bounds the TCP handshake; the transfer itself is not
// time-limited.
const defaultDialTimeout = 30 * time.Second

// dialFTP is the production Dialer backed by github.com/jlaffaye/ftp.
func dialFTP(ctx context.Context, addr string) (Session, error) {
	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(defaultDialTimeout),
	)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
