package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  from-file-token\n"), 0o600))

	got, err := Load(Source{Name: "api token", Value: "inline", File: path})
	require.NoError(t, err)
	assert.Equal(t, "from-file-token", got)
}

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Value: " inline-token "})
	require.NoError(t, err)
	assert.Equal(t, "inline-token", got)
}

func TestLoadErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))

	tests := []struct {
		name string
		src  Source
		is   error
	}{
		{name: "nothing configured", src: Source{Name: "api token"}, is: ErrNotConfigured},
		{name: "empty file", src: Source{File: empty, Value: "ignored"}, is: ErrNotConfigured},
		{name: "too short", src: Source{Value: "abc", MinLength: 8}, is: ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			assert.ErrorIs(t, err, tt.is)
		})
	}

	_, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("s3cret", "s3cret"))
	assert.False(t, Equal("s3cret", "s3cre"))
	assert.False(t, Equal("", "s3cret"))
}
