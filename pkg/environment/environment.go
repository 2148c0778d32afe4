// Package environment resolves runtime configuration from the process
// environment. Values come from env vars (optionally loaded from a .env file
// by main) with xdg-based defaults for on-disk locations.
package environment

import (
	"fmt"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// Environment holds all service configuration loaded from the OS or defaults.
type Environment struct {
	ServerHost string `env:"SERVER_HOST,default=0.0.0.0"`
	ServerPort string `env:"SERVER_PORT,default=5000"`

	DataDir      string `env:"DATA_DIR"`
	UploadDir    string `env:"UPLOAD_DIR"`
	DatabasePath string `env:"DATABASE_PATH"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	MaxUploadMB int `env:"MAX_UPLOAD_MB,default=50"`

	// ExtractMinChars is the floor below which extracted document text is
	// treated as "no text available" (likely a scanned document).
	ExtractMinChars int `env:"EXTRACT_MIN_CHARS,default=50"`

	// StrictImageValidation controls whether an image decode failure rejects
	// the upload. When false, decode failures are logged and the file passes.
	StrictImageValidation bool `env:"STRICT_IMAGE_VALIDATION,default=true"`

	// RetentionHours is the default age threshold for the cleanup sweep.
	RetentionHours int `env:"RETENTION_HOURS,default=24"`

	TrustedProxies string `env:"TRUSTED_PROXIES"`

	Extras env.EnvSet
}

// NewEnvironment loads configuration from the environment and fills in
// filesystem defaults, creating the upload and data directories when needed.
func NewEnvironment(fs afero.Fs) (*Environment, error) {
	environ := &Environment{}
	es, err := env.UnmarshalFromEnviron(environ)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	environ.Extras = es

	if environ.DataDir == "" {
		environ.DataDir = filepath.Join(xdg.DataHome, "nde-assistant")
	}
	if environ.UploadDir == "" {
		environ.UploadDir = filepath.Join(environ.DataDir, "uploads")
	}
	if environ.DatabasePath == "" {
		environ.DatabasePath = filepath.Join(environ.DataDir, "nde_assistant.db")
	}

	for _, dir := range []string{environ.DataDir, environ.UploadDir} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return environ, nil
}

// MaxUploadBytes returns the configured upload cap in bytes.
func (e *Environment) MaxUploadBytes() int64 {
	return int64(e.MaxUploadMB) << 20
}

// ListenAddr returns the host:port the API server binds to.
func (e *Environment) ListenAddr() string {
	return e.ServerHost + ":" + e.ServerPort
}
