package command

import (
	"flag"
	"fmt"
	"io"

	"github.com/mitchellh/cli"

	"github.com/joeandaverde/pagefile/internal/config"
	"github.com/joeandaverde/pagefile/internal/storage"
)

const configHelp = `
	-config=""	Configuration file (YAML). Defaults to the current
			directory as data directory and info logging.
`

// Meta holds what every command shares
type Meta struct {
	Ui        cli.Ui
	LogOutput io.Writer

	configPath string
}

func (m *Meta) flagSet(name string) *flag.FlagSet {
	cmdFlags := flag.NewFlagSet(name, flag.ContinueOnError)
	cmdFlags.SetOutput(io.Discard)
	cmdFlags.StringVar(&m.configPath, "config", "", "config file")
	return cmdFlags
}

func (m *Meta) loadConfig() (config.Config, error) {
	if m.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(m.configPath)
}

func (m *Meta) manager() (*storage.Manager, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}

	out := m.LogOutput
	if out == nil {
		out = io.Discard
	}

	return storage.NewManager(cfg.Logger(out), cfg.Storage())
}

// open opens the single page file named by the positional arguments
func (m *Meta) open(args []string) (*storage.Manager, *storage.PageFile, error) {
	if len(args) != 1 {
		return nil, nil, fmt.Errorf("expected exactly one page file name, got %d", len(args))
	}

	manager, err := m.manager()
	if err != nil {
		return nil, nil, err
	}

	f, err := manager.Open(args[0])
	if err != nil {
		return nil, nil, err
	}

	return manager, f, nil
}

func (m *Meta) fail(err error) int {
	m.Ui.Error(fmt.Sprintf("Error: %s", err))
	return 1
}
