package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range EnvKeys {
		t.Setenv(k, "")
	}
	return home
}

func TestGet_None(t *testing.T) {
	isolate(t)
	c, err := Get()
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Empty(t, Key())
}

func TestGet_EnvOrder(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "gem")
	c, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "gem", c.Key)
	assert.Equal(t, "GEMINI_API_KEY", c.Source)

	t.Setenv("SPINWIN_API_KEY", " Bearer spin ")
	c, err = Get()
	require.NoError(t, err)
	assert.Equal(t, "spin", c.Key)
	assert.Equal(t, "SPINWIN_API_KEY", c.Source)
}

func TestSetGetDelete(t *testing.T) {
	home := isolate(t)

	require.NoError(t, Set("bearer file-key"))
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".spinwin", "credentials.json"), p)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	dirInfo, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	c, err := Get()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "file-key", c.Key)
	assert.Equal(t, "file", c.Source)
	assert.False(t, c.CreatedAt.IsZero())

	t.Setenv("SPINWIN_API_KEY", "env-key")
	assert.Equal(t, "env-key", Key(), "env wins over file")
	t.Setenv("SPINWIN_API_KEY", "")

	require.NoError(t, Delete())
	require.NoError(t, Delete())
	assert.Empty(t, Key())
}

func TestSet_Empty(t *testing.T) {
	isolate(t)
	assert.ErrorIs(t, Set("   "), ErrEmptyKey)
}

func TestGet_Corrupt(t *testing.T) {
	isolate(t)
	p, err := Path()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
	require.NoError(t, os.WriteFile(p, []byte("{nope"), 0o600))

	_, err = Get()
	assert.ErrorContains(t, err, "parse credentials")
	assert.Empty(t, Key())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "******cdef", Mask("0123abcdef"))
}
