package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_File(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	path := filepath.Join(t.TempDir(), "svod.log")
	closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.WithField("component", "test").Debug("written to file")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "written to file")
	assert.Contains(t, string(b), "component=test")
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, err := Setup(Options{Level: "loud"})
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}

func TestSetup_DefaultsToInfo(t *testing.T) {
	closer, err := Setup(Options{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
