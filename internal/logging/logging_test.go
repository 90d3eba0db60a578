package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Console = &buf

	log, err := New(opts)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("not enough space")
	require.NoError(t, log.Sync())

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "not enough space")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propctl.log")
	var console bytes.Buffer
	opts := DefaultOptions()
	opts.Type = TypeBoth
	opts.Level = "debug"
	opts.FileLogName = path
	opts.Console = &console

	log, err := New(opts)
	require.NoError(t, err)
	log.Debug("region unavailable")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"region unavailable"`)
	require.Contains(t, console.String(), "region unavailable")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Type: 7})
	require.Error(t, err)

	_, err = New(Options{Type: TypeFile})
	require.Error(t, err)

	_, err = New(Options{Type: TypeConsole, Level: "loud"})
	require.Error(t, err)
}
