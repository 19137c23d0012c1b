package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("factura.pdf"))
	assert.True(t, IsSupported("FACTURA.PDF"))
	assert.True(t, IsSupported("notas.txt"))
	assert.False(t, IsSupported("foto.jpg"))
	assert.False(t, IsSupported("datos.xlsx"))
}

func TestReadDocumentText_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "factura.txt", "FACTURA\nTotal: 121,00€\n")

	text, err := ReadDocumentText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Total: 121,00€")
}

func TestReadDocumentText_Unsupported(t *testing.T) {
	_, err := ReadDocumentText("foto.jpg")
	assert.Error(t, err)
}

func TestReadDocumentText_MissingPDF(t *testing.T) {
	_, err := ReadDocumentText(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestFindDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "a.pdf", "not really a pdf")
	writeFile(t, dir, "ignore.jpg", "jpg")
	writeFile(t, dir, "sub/c.txt", "c")
	writeFile(t, dir, ".hidden/d.txt", "d")

	paths, err := FindDocuments(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.txt"), paths[1])
	assert.Equal(t, filepath.Join(dir, "sub", "c.txt"), paths[2])
}

func TestFindDocuments_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "factura.txt", "x")

	paths, err := FindDocuments(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)

	_, err = FindDocuments(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
