package storage

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config describes where page files live and how they are written
type Config struct {
	DataDir    string
	SyncWrites bool
}

// Manager resolves page file names beneath a data directory
type Manager struct {
	log    *logrus.Logger
	config Config
}

// NewManager initializes a storage manager, creating the data directory if needed
func NewManager(log *logrus.Logger, config Config) (*Manager, error) {
	if config.DataDir == "" {
		return nil, errors.New("data directory must not be empty")
	}

	log.Infof("Starting storage manager [DataDir: %s]", config.DataDir)

	if err := os.MkdirAll(config.DataDir, os.ModePerm); err != nil {
		return nil, err
	}

	return &Manager{
		log:    log,
		config: config,
	}, nil
}

// Path is the location of a named page file
func (m *Manager) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.config.DataDir, name)
}

// Create creates a single page file
func (m *Manager) Create(name string) error {
	path := m.Path(name)
	if err := Create(path); err != nil {
		m.log.WithError(err).WithField("file", path).Error("create failed")
		return err
	}

	m.log.WithField("file", path).Info("created page file")
	return nil
}

// Open opens a page file. The handle logs with its own id.
func (m *Manager) Open(name string) (*PageFile, error) {
	path := m.Path(name)
	id := uuid.New()

	f := &PageFile{
		syncWrites: m.config.SyncWrites,
		log: m.log.WithFields(logrus.Fields{
			"handle": id.String(),
			"file":   path,
		}),
	}
	if err := f.Open(path); err != nil {
		m.log.WithError(err).WithField("file", path).Debug("open failed")
		return nil, err
	}

	f.log.WithField("pages", f.TotalNumPages()).Debug("opened page file")
	return f, nil
}

// Destroy removes a page file
func (m *Manager) Destroy(name string) error {
	path := m.Path(name)
	if err := Destroy(path); err != nil {
		m.log.WithError(err).WithField("file", path).Debug("destroy failed")
		return err
	}

	m.log.WithField("file", path).Info("destroyed page file")
	return nil
}
