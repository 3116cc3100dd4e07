package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/joeandaverde/pagefile/internal/storage"
)

// Config is the configuration file for the pagefile tool
type Config struct {
	DataDir    string       `yaml:"data_directory"`
	LogLevel   logrus.Level `yaml:"log_level"`
	SyncWrites bool         `yaml:"sync_writes"`
}

// Default is the configuration used when no file is given
func Default() Config {
	return Config{
		DataDir:    ".",
		LogLevel:   logrus.InfoLevel,
		SyncWrites: false,
	}
}

// Load reads a YAML configuration file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads YAML configuration from r
func Decode(r io.Reader) (Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	if config.DataDir == "" {
		return Config{}, errors.New("parsing config file: data_directory must not be empty")
	}

	return config, nil
}

// Logger builds a logger at the configured level
func (c Config) Logger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(c.LogLevel)
	return logger
}

// Storage is the storage manager configuration
func (c Config) Storage() storage.Config {
	return storage.Config{
		DataDir:    c.DataDir,
		SyncWrites: c.SyncWrites,
	}
}
