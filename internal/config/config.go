// Package config reads and writes the gator session file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"gator/domain"
)

const fileName = ".gatorconfig.toml"

// Config is the on-disk session: the database to use and the user logged in, if any.
type Config struct {
	DBURL           string `toml:"db_url"`
	CurrentUserName string `toml:"current_user_name"`

	path string
}

var _ domain.Session = (*Config)(nil)

// DefaultPath returns $GATOR_CONFIG, or ~/.gatorconfig.toml when it is unset.
func DefaultPath() (string, error) {
	if p := getenv("GATOR_CONFIG", ""); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return filepath.Join(home, fileName), nil
}

// Read loads the session file at path. GATOR_DB_URL, when set, takes precedence
// over the file's db_url.
func Read(path string) (*Config, error) {
	cfg, err := decode(path)
	if err != nil {
		return nil, err
	}
	cfg.DBURL = getenv("GATOR_DB_URL", cfg.DBURL)
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("%w: %s: db_url is required", domain.ErrConfig, path)
	}
	return cfg, nil
}

func (c *Config) Path() string { return c.path }

func (c *Config) CurrentUser() (string, error) {
	return c.CurrentUserName, nil
}

// SetCurrentUser records name as the logged-in user. Only current_user_name is
// rewritten; the db_url stored in the file is kept as is.
func (c *Config) SetCurrentUser(name string) error {
	onDisk, err := decode(c.path)
	if err != nil {
		return err
	}
	onDisk.CurrentUserName = name

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(onDisk); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(c.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	c.CurrentUserName = name
	return nil
}

func decode(path string) (*Config, error) {
	cfg := &Config{path: path}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfig, path, err)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
