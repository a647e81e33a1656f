package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jumpaku/go-outputfs"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestPutAndLs(t *testing.T) {
	root := t.TempDir()

	_, err := run(t, "--root", root, "put", "/out/part-m-00000", "1,a", "2,b")
	require.NoError(t, err)
	_, err = run(t, "--root", root, "put", "/out/_SUCCESS")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "out", "part-m-00000"))
	require.NoError(t, err)
	require.Equal(t, "1,a\n2,b\n", string(data))

	stdout, err := run(t, "--root", root, "ls", "/out")
	require.NoError(t, err)
	require.Equal(t, "/out/part-m-00000\n", stdout)

	stdout, err = run(t, "--root", root, "ls", "--all", "/out")
	require.NoError(t, err)
	require.Equal(t, "/out/_SUCCESS\n/out/part-m-00000\n", stdout)
}

func TestLs_NotFound(t *testing.T) {
	_, err := run(t, "--root", t.TempDir(), "ls", "/missing")
	require.ErrorIs(t, err, outputfs.ErrNotFound)
}

func TestLs_MemoryBackend(t *testing.T) {
	stdout, err := run(t, "--backend", "memory", "ls", "/")
	require.NoError(t, err)
	require.Empty(t, stdout)
}

func TestConfigFile(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "outputfs.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("backend: local\nroot: "+root+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))

	stdout, err := run(t, "--config", configPath, "ls", "/")
	require.NoError(t, err)
	require.Equal(t, "/a.txt\n", stdout)

	_, err = run(t, "--config", configPath, "--backend", "drive", "ls", "/")
	require.ErrorContains(t, err, "drive_root_id")
}

func TestJoin(t *testing.T) {
	stdout, err := run(t, "join", "/a", "b/", "c")
	require.NoError(t, err)
	require.Equal(t, "/a/b/c/\n", stdout)

	_, err = run(t, "join", "a", "")
	require.ErrorIs(t, err, outputfs.ErrInvalidPath)
}
