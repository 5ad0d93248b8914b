// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestConfigure_AttachesServiceAndComponent(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf, Service: "test-svc", Version: "v0.0.1"})

	l := WithComponent("store")
	l.Info().Str(FieldEvent, "store.saved").Msg("saved")

	m := decodeLine(t, &buf)
	assert.Equal(t, "test-svc", m[FieldService])
	assert.Equal(t, "v0.0.1", m[FieldVersion])
	assert.Equal(t, "store", m[FieldComponent])
	assert.Equal(t, "store.saved", m[FieldEvent])
}

func TestConfigure_DefaultLevelSuppressesInfo(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })
	t.Setenv("LECTRACK_LOG_LEVEL", "")

	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	assert.Equal(t, DefaultLevel, zerolog.GlobalLevel())

	l := Base()
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestConfigure_InvalidLevelFallsBack(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	Configure(Config{Level: "loud", Output: &bytes.Buffer{}})
	assert.Equal(t, DefaultLevel, zerolog.GlobalLevel())
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lectrack.log")

	for i := 0; i < 2; i++ {
		f, err := OpenFile(path)
		require.NoError(t, err)
		_, err = f.WriteString("line\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nline\n", string(data))
}
