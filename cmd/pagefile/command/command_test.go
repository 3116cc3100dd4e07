package command

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/suite"

	"github.com/joeandaverde/pagefile/internal/storage"
)

type CommandTestSuite struct {
	suite.Suite
	dataDir    string
	configPath string
	ui         *cli.MockUi
}

func (s *CommandTestSuite) SetupTest() {
	tempDir := s.T().TempDir()
	s.dataDir = filepath.Join(tempDir, "data")
	s.configPath = filepath.Join(tempDir, "pagefile.yml")

	config := fmt.Sprintf("data_directory: %s\nlog_level: debug\nsync_writes: true\n", s.dataDir)
	s.Require().NoError(os.WriteFile(s.configPath, []byte(config), 0644))

	s.ui = cli.NewMockUi()
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func (s *CommandTestSuite) meta() Meta {
	return Meta{Ui: s.ui, LogOutput: io.Discard}
}

func (s *CommandTestSuite) run(c cli.Command, args ...string) int {
	return c.Run(append([]string{"-config", s.configPath}, args...))
}

func (s *CommandTestSuite) TestLifecycle() {
	s.Equal(0, s.run(&CreateCommand{Meta: s.meta()}, "t.bin"), s.ui.ErrorWriter.String())
	s.FileExists(filepath.Join(s.dataDir, "t.bin"))

	s.Equal(0, s.run(&WriteCommand{Meta: s.meta()}, "-page", "0", "-fill", "0x41", "t.bin"))
	s.Equal(0, s.run(&AppendCommand{Meta: s.meta()}, "-count", "2", "t.bin"))
	s.Contains(s.ui.OutputWriter.String(), "pages: 3")

	s.Equal(0, s.run(&EnsureCommand{Meta: s.meta()}, "-pages", "5", "t.bin"))
	s.Contains(s.ui.OutputWriter.String(), "pages: 5")

	s.Equal(0, s.run(&InfoCommand{Meta: s.meta()}, "t.bin"))
	s.Contains(s.ui.OutputWriter.String(), fmt.Sprintf("bytes: %d", 5*storage.PageSize))

	s.Equal(0, s.run(&ReadCommand{Meta: s.meta()}, "-page", "0", "t.bin"))
	s.Contains(s.ui.OutputWriter.String(), "page 0 of 5")
	s.Contains(s.ui.OutputWriter.String(), "|AAAAAAAAAAAAAAAA|")

	s.Equal(1, s.run(&ReadCommand{Meta: s.meta()}, "-page", "5", "t.bin"))
	s.Contains(s.ui.ErrorWriter.String(), "page out of range")

	s.Equal(0, s.run(&DestroyCommand{Meta: s.meta()}, "t.bin"))
	s.NoFileExists(filepath.Join(s.dataDir, "t.bin"))

	s.Equal(1, s.run(&InfoCommand{Meta: s.meta()}, "t.bin"))
	s.Contains(s.ui.ErrorWriter.String(), "file not found")
}

func (s *CommandTestSuite) TestWrite_FromFile() {
	s.Equal(0, s.run(&CreateCommand{Meta: s.meta()}, "t.bin"))

	source := filepath.Join(s.T().TempDir(), "source")
	s.NoError(os.WriteFile(source, []byte("page contents"), 0644))

	s.Equal(0, s.run(&WriteCommand{Meta: s.meta()}, "-from", source, "t.bin"))

	f, err := storage.Open(filepath.Join(s.dataDir, "t.bin"))
	s.NoError(err)
	defer f.Close()

	buf := make([]byte, storage.PageSize)
	s.NoError(f.ReadFirstBlock(buf))
	s.True(bytes.HasPrefix(buf, []byte("page contents")))
	s.Equal(make([]byte, storage.PageSize-13), buf[13:])
}

func (s *CommandTestSuite) TestWrite_InvalidFlags() {
	s.Equal(0, s.run(&CreateCommand{Meta: s.meta()}, "t.bin"))

	s.Equal(1, s.run(&WriteCommand{Meta: s.meta()}, "t.bin"))
	s.Equal(1, s.run(&WriteCommand{Meta: s.meta()}, "-fill", "0x41", "-from", "x", "t.bin"))
	s.Equal(1, s.run(&WriteCommand{Meta: s.meta()}, "-fill", "300", "t.bin"))
	s.Equal(1, s.run(&AppendCommand{Meta: s.meta()}, "-count", "0", "t.bin"))
	s.Equal(1, s.run(&InfoCommand{Meta: s.meta()}))
	s.Equal(1, s.run(&CreateCommand{Meta: s.meta()}))
}

func (s *CommandTestSuite) TestExportImport() {
	dbPath := filepath.Join(s.T().TempDir(), "pages.db")

	s.Equal(0, s.run(&CreateCommand{Meta: s.meta()}, "src.bin", "dst.bin"))
	s.Equal(0, s.run(&EnsureCommand{Meta: s.meta()}, "-pages", "3", "src.bin"))
	s.Equal(0, s.run(&WriteCommand{Meta: s.meta()}, "-page", "2", "-fill", "0x7a", "src.bin"))

	s.Equal(0, s.run(&ExportCommand{Meta: s.meta()}, "-db", dbPath, "src.bin"), s.ui.ErrorWriter.String())
	s.Contains(s.ui.OutputWriter.String(), "exported 3 pages")

	s.Equal(0, s.run(&ImportCommand{Meta: s.meta()}, "-db", dbPath, "dst.bin"), s.ui.ErrorWriter.String())
	s.Contains(s.ui.OutputWriter.String(), "imported 3 pages")

	f, err := storage.Open(filepath.Join(s.dataDir, "dst.bin"))
	s.NoError(err)
	defer f.Close()

	s.Equal(3, f.TotalNumPages())
	buf := make([]byte, storage.PageSize)
	s.NoError(f.ReadLastBlock(buf))
	s.Equal(bytes.Repeat([]byte{'z'}, storage.PageSize), buf)

	s.Equal(1, s.run(&ExportCommand{Meta: s.meta()}, "src.bin"))
}

func (s *CommandTestSuite) TestMissingConfig() {
	c := &CreateCommand{Meta: s.meta()}
	s.Equal(1, c.Run([]string{"-config", filepath.Join(os.TempDir(), "does-not-exist.yml"), "t.bin"}))
}
