package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/codelabbj/icash-admin/internal/constants"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // one writer per process
var defaultPersister = NewConfigPersister()

// ConfigPersister serializes read-modify-write cycles of the config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// Update loads the file at path, applies fn and writes the result back.
// A missing file starts from an empty configuration.
func (p *ConfigPersister) Update(path string, fn func(*Config) error) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile(path)
	if err != nil {
		return err
	}

	err = fn(config)
	if err != nil {
		return err
	}

	return writeConfigFile(path, config)
}

func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path is the config file chosen by the operator
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
