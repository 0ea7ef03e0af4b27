package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveFileWithPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFileWithPath(uploadedFile(t, "notes.pdf", "lecture one"), "materials/CSC101")
	require.NoError(t, err)

	// Stored path is relative, keeps the subdirectory and the extension.
	assert.False(t, filepath.IsAbs(stored))
	assert.True(t, strings.HasPrefix(stored, filepath.Join("materials", "CSC101")+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(stored, ".pdf"))

	content, err := os.ReadFile(storage.GetFullPath(stored))
	require.NoError(t, err)
	assert.Equal(t, "lecture one", string(content))
}

func TestSaveFileNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGetFullPathRejectsEscapes(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Empty(t, storage.GetFullPath(""))
	assert.Empty(t, storage.GetFullPath("."))
	assert.Empty(t, storage.GetFullPath("../outside.txt"))
	assert.Empty(t, storage.GetFullPath("materials/../../outside.txt"))
	assert.Empty(t, storage.GetFullPath("/etc/passwd"))

	assert.Equal(t, filepath.Join(base, "materials", "a.pdf"), storage.GetFullPath("materials/a.pdf"))
}

func TestDeleteFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFileWithPath(uploadedFile(t, "a.txt", "x"), "materials")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(stored))
	_, statErr := os.Stat(storage.GetFullPath(stored))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again is not an error.
	assert.NoError(t, storage.DeleteFile(stored))

	// Empty path is a no-op; escapes are refused.
	assert.NoError(t, storage.DeleteFile(""))
	assert.Error(t, storage.DeleteFile("../outside.txt"))
}
