// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 200, false},
		{"below", 0, true},
		{"above", 201, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("ui.progressWidth", tt.value, 1, 200)
			assert.Equal(t, tt.wantErr, !v.IsValid())
		})
	}
}

func TestValidator_OneOfAndNotEmpty(t *testing.T) {
	v := New()
	v.OneOf("store.backend", "json", []string{"json", "sqlite"})
	v.NotEmpty("dataDir", "data")
	require.True(t, v.IsValid())

	v.OneOf("store.backend", "redis", []string{"json", "sqlite"})
	v.NotEmpty("dataDir", "   ")
	require.Len(t, v.Errors(), 2)
	assert.Equal(t, "store.backend", v.Errors()[0].Field)
}

func TestValidator_ErrJoinsMessages(t *testing.T) {
	v := New()
	assert.NoError(t, v.Err())

	v.AddError("a", "first", 1)
	v.AddError("b", "second", 2)
	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "validation failed for a: first; validation failed for b: second", err.Error())

	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors(), 2)
}

func TestValidator_Directory(t *testing.T) {
	base := t.TempDir()

	v := New()
	v.Directory("dataDir", filepath.Join(base, "new", "dir"), false)
	require.True(t, v.IsValid(), "%v", v.Err())
	assert.DirExists(t, filepath.Join(base, "new", "dir"))

	v = New()
	v.Directory("dataDir", filepath.Join(base, "missing"), true)
	assert.False(t, v.IsValid())

	file := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	v = New()
	v.Directory("dataDir", file, false)
	assert.False(t, v.IsValid())

	v = New()
	v.Directory("dataDir", "", false)
	assert.False(t, v.IsValid())
}

func TestValidator_FilePath(t *testing.T) {
	dir := t.TempDir()

	v := New()
	v.FilePath("store.path", "")
	v.FilePath("store.path", filepath.Join(dir, "lectures.json"))
	assert.True(t, v.IsValid())

	v.FilePath("store.path", dir)
	assert.False(t, v.IsValid())
}

func TestValidator_LogLevel(t *testing.T) {
	v := New()
	v.LogLevel("log.level", "")
	v.LogLevel("log.level", "debug")
	assert.True(t, v.IsValid())

	v.LogLevel("log.level", "verbose")
	require.False(t, v.IsValid())
	assert.Contains(t, v.Err().Error(), "invalid log level")
}
