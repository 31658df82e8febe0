package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevelAndFormat(t *testing.T) {
	t.Cleanup(func() { Init(Options{Level: "info"}) })

	Init(Options{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Logger.Formatter)

	Init(Options{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Logger.Formatter)
}

func TestInitWritesToFile(t *testing.T) {
	t.Cleanup(func() { Init(Options{Level: "info"}) })

	path := filepath.Join(t.TempDir(), "assetdb.log")
	Init(Options{Level: "info", File: path})
	Logger.Info("hello file")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello file")
}
