package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type ManagerTestSuite struct {
	suite.Suite
	dataDir string
	hook    *test.Hook
	manager *Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.dataDir = filepath.Join(s.T().TempDir(), "data")

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.hook = hook

	m, err := NewManager(logger, Config{
		DataDir:    s.dataDir,
		SyncWrites: true,
	})
	s.Require().NoError(err)
	s.manager = m
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) TestNewManager_CreatesDataDir() {
	info, err := os.Stat(s.dataDir)
	s.NoError(err)
	s.True(info.IsDir())
}

func (s *ManagerTestSuite) TestNewManager_EmptyDataDir() {
	logger, _ := test.NewNullLogger()
	_, err := NewManager(logger, Config{})
	s.Error(err)
}

func (s *ManagerTestSuite) TestPath() {
	s.Equal(filepath.Join(s.dataDir, "a.bin"), s.manager.Path("a.bin"))
	s.Equal("/abs/a.bin", s.manager.Path("/abs/a.bin"))
}

func (s *ManagerTestSuite) TestLifecycle() {
	s.NoError(s.manager.Create("t.bin"))

	f, err := s.manager.Open("t.bin")
	s.NoError(err)
	s.Equal(s.manager.Path("t.bin"), f.FileName())
	s.True(f.syncWrites)

	s.NoError(f.EnsureCapacity(3))
	s.Equal(3, f.TotalNumPages())
	s.NoError(f.Close())

	var handleIDs []interface{}
	for _, entry := range s.hook.AllEntries() {
		if id, ok := entry.Data["handle"]; ok {
			handleIDs = append(handleIDs, id)
		}
	}
	s.NotEmpty(handleIDs)
	for _, id := range handleIDs {
		s.Equal(handleIDs[0], id)
	}

	s.NoError(s.manager.Destroy("t.bin"))
	s.Equal("destroyed page file", s.hook.LastEntry().Message)

	_, err = s.manager.Open("t.bin")
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.manager.Destroy("t.bin"), ErrNotFound)
}

func (s *ManagerTestSuite) TestOpen_DistinctHandles() {
	s.NoError(s.manager.Create("a.bin"))

	a, err := s.manager.Open("a.bin")
	s.NoError(err)
	defer a.Close()

	b, err := s.manager.Open("a.bin")
	s.NoError(err)
	defer b.Close()

	s.hook.Reset()
	s.NoError(a.AppendEmptyBlock())
	s.NoError(b.AppendEmptyBlock())

	entries := s.hook.AllEntries()
	s.Len(entries, 2)
	s.NotEqual(entries[0].Data["handle"], entries[1].Data["handle"])
}
