package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
)

// Default generation settings.
const (
	DefaultModel      = "cogvideox-2b"
	DefaultResolution = "480p"
	DefaultDuration   = 10
	DefaultFPS        = 8
	DefaultOutputDir  = "outputs"
)

// Config holds the runtime settings read from environment variables.
// FTP credentials are only required when the upload step runs.
type Config struct {
	FTPHost      string `env:"FTP_HOST"       envDefault:""`
	FTPPort      int    `env:"FTP_PORT"       envDefault:"21"`
	FTPUser      string `env:"FTP_USER"       envDefault:""`
	FTPPassword  string `env:"FTP_PASSWORD"   envDefault:""`
	FTPRemoteDir string `env:"FTP_REMOTE_DIR" envDefault:"/videos"`

	OutputDir string `env:"OUTPUT_DIR" envDefault:"outputs"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ConfigError,
			errors.GetErrorMessage(errors.ErrConfigParseFailed), errors.ErrConfigParseFailed)
	}
	return cfg, nil
}

// ValidateFTP checks that the settings required by the upload path are
// present. Absence of host, user or password is a hard failure for the
// upload path only; generation does not need them.
func (c *Config) ValidateFTP() error {
	if c.FTPHost == "" {
		return errors.New(errors.ConfigError,
			errors.GetErrorMessage(errors.ErrMissingFTPHost), "", errors.ErrMissingFTPHost)
	}
	if c.FTPUser == "" {
		return errors.New(errors.ConfigError,
			errors.GetErrorMessage(errors.ErrMissingFTPUser), "", errors.ErrMissingFTPUser)
	}
	if c.FTPPassword == "" {
		return errors.New(errors.ConfigError,
			errors.GetErrorMessage(errors.ErrMissingFTPPassword), "", errors.ErrMissingFTPPassword)
	}
	return nil
}
