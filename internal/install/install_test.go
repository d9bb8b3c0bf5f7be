package install

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDirExpandsHome(t *testing.T) {
	dir, err := ResolveDir("")
	require.NoError(t, err)
	assert.NotContains(t, dir, "~")
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "bin", filepath.Base(dir))

	explicit := filepath.Join(t.TempDir(), "bin")
	dir, err = ResolveDir(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, dir)
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "bin")
	ins := New(dir)

	require.NoError(t, ins.EnsureDir())
	require.NoError(t, ins.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPlaceRenamesAndChmods(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	ins := New(dir)

	staging := filepath.Join(dir, "dymo-code.partial")
	require.NoError(t, os.WriteFile(staging, []byte("binary-bytes"), 0o600))

	final, err := ins.Place(staging, "dymo-code")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dymo-code"), final)

	info, err := os.Stat(final)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	_, err = os.Stat(staging)
	assert.True(t, os.IsNotExist(err), "staging file must be consumed")
}

func TestPlaceOverwritesWholesale(t *testing.T) {
	dir := t.TempDir()
	ins := New(dir)

	final := filepath.Join(dir, "dymo-code")
	require.NoError(t, os.WriteFile(final, []byte("old much longer binary content"), 0o755))

	staging := filepath.Join(dir, "dymo-code.partial")
	require.NoError(t, os.WriteFile(staging, []byte("new"), 0o600))

	_, err := ins.Place(staging, "dymo-code")
	require.NoError(t, err)

	data, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data), "no residue of the prior binary")
}

func TestPlaceMissingStaging(t *testing.T) {
	ins := New(t.TempDir())
	_, err := ins.Place(filepath.Join(ins.Dir, "absent.partial"), "dymo-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.partial")
}

func TestStampRoundTrip(t *testing.T) {
	ins := New(t.TempDir())
	assert.Empty(t, ins.ReadStamp())

	require.NoError(t, ins.WriteStamp("v1.2.3"))
	assert.Equal(t, "v1.2.3", ins.ReadStamp())

	require.NoError(t, ins.WriteStamp("v1.3.0"))
	assert.Equal(t, "v1.3.0", ins.ReadStamp())
}
