package cbz_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmanga/getmanga/internal/cbz"
)

func TestCommitRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "naruto_c001.cbz")

	w, err := cbz.Create(path)
	require.NoError(t, err)

	entries := map[string][]byte{
		"001.jpg": []byte("first page"),
		"002.jpg": []byte("second page"),
		"003.jpg": []byte("third page"),
	}
	for _, name := range []string{"001.jpg", "002.jpg", "003.jpg"} {
		require.NoError(t, w.Add(name, entries[name]))
	}
	require.NoError(t, w.Commit())

	// tmp file must be gone after commit
	_, err = os.Stat(path + cbz.TmpSuffix)
	assert.True(t, os.IsNotExist(err))

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 3)
	for i, name := range []string{"001.jpg", "002.jpg", "003.jpg"} {
		f := r.File[i]
		assert.Equal(t, name, f.Name)
		assert.Equal(t, uint16(zip.Deflate), f.Method)

		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.Equal(t, entries[name], data)
	}
}

func TestMemberOrderMatchesAddOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.cbz")

	w, err := cbz.Create(path)
	require.NoError(t, err)

	// add in an order a lexical sort would not produce
	names := []string{"010.jpg", "002.jpg", "001.jpg"}
	for _, n := range names {
		require.NoError(t, w.Add(n, []byte(n)))
	}
	require.NoError(t, w.Commit())

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	got := make([]string, 0, len(r.File))
	for _, f := range r.File {
		got = append(got, f.Name)
	}
	assert.Equal(t, names, got)
}

func TestDuplicateMemberRejected(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.cbz")

	w, err := cbz.Create(path)
	require.NoError(t, err)
	defer w.Abort()

	require.NoError(t, w.Add("001.jpg", []byte("a")))
	err = w.Add("001.jpg", []byte("b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestAbortRemovesTmp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.cbz")

	w, err := cbz.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("001.jpg", []byte("a")))

	w.Abort()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + cbz.TmpSuffix)
	assert.True(t, os.IsNotExist(err))

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestAbortAfterCommitKeepsArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.cbz")

	w, err := cbz.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("001.jpg", []byte("a")))
	require.NoError(t, w.Commit())

	w.Abort()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestAddAfterCommitFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.cbz")

	w, err := cbz.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	assert.Error(t, w.Add("001.jpg", []byte("a")))
}
