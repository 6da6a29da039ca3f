// Package backing is the durable key-value boundary underneath the ticket
// store. Drivers move raw strings in and out of a storage medium and know
// nothing about what the strings contain.
package backing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend reads and writes raw snapshots by key.
type Backend interface {
	// Load returns the stored value. ok is false when the key is absent,
	// which is not an error.
	Load(ctx context.Context, key string) (raw string, ok bool, err error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key, raw string) error
	// Clear removes key. Clearing an absent key succeeds.
	Clear(ctx context.Context, key string) error
	// Close releases the underlying medium.
	Close() error
}

// Driver names accepted by Open
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// ErrInvalidKey is returned for keys a driver cannot store
var ErrInvalidKey = errors.New("invalid storage key")

// Config selects and configures a driver
type Config struct {
	Driver string
	Dir    string // data directory for file and sqlite
	Redis  RedisConfig
}

// RedisConfig holds connection settings for the redis driver
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open builds the backend named by cfg.Driver
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		dir, err := resolveDir(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return NewFile(dir)
	case DriverSQLite:
		dir, err := resolveDir(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(filepath.Join(dir, "devtrack.db"))
	case DriverRedis:
		return OpenRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// DefaultDir returns ~/.devtrack
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".devtrack"), nil
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", fmt.Errorf("failed to get data directory: %w", err)
		}
		return d, nil
	}
	if strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %s: %w", dir, err)
		}
		return filepath.Join(homeDir, dir[2:]), nil
	}
	return dir, nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
