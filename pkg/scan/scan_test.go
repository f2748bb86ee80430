package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqtrace/reqtrace/pkg/requirement"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFiles_DoublestarPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tests/python/test_a.py", "")
	writeFile(t, root, "tests/python/nested/test_b.py", "")
	writeFile(t, root, "tests/python/helper.txt", "")
	writeFile(t, root, "src/main.py", "")

	files := Files(root, []string{"tests/**/*.py"})
	require.Len(t, files, 2)
	assert.Contains(t, files[0], "test_a.py")
	assert.Contains(t, files[1], "test_b.py")
}

func TestFiles_MultiplePatternsNoDuplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tests/test_a.py", "")

	files := Files(root, []string{"tests/**/*.py", "**/test_*.py"})
	assert.Len(t, files, 1)
}

func TestFiles_MissingRoot(t *testing.T) {
	files := Files(filepath.Join(t.TempDir(), "absent"), []string{"**/*.py"})
	assert.Empty(t, files)
}

func TestDecodeText_UTF8(t *testing.T) {
	assert.Equal(t, "def test_a():", DecodeText([]byte("def test_a():")))
}

func TestDecodeText_UTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	assert.Equal(t, "hello", DecodeText(raw))
}

func TestDecodeText_UTF16LE(t *testing.T) {
	// "REQ" with a little-endian BOM.
	raw := []byte{0xFF, 0xFE, 'R', 0x00, 'E', 0x00, 'Q', 0x00}
	assert.Equal(t, "REQ", DecodeText(raw))
}

func TestDecodeText_UTF16BE(t *testing.T) {
	raw := []byte{0xFE, 0xFF, 0x00, 'R', 0x00, 'E', 0x00, 'Q'}
	assert.Equal(t, "REQ", DecodeText(raw))
}

func TestDecodeText_InvalidBytesNeverFatal(t *testing.T) {
	// Latin-1 "café" is invalid UTF-8; the fallback must keep the text
	// readable enough for identifier scanning.
	raw := []byte{'R', 'E', 'Q', '-', '0', '0', '1', ' ', 0xE9}
	out := DecodeText(raw)
	assert.Contains(t, out, "REQ-001")
}

func TestMap_AddAndMerge(t *testing.T) {
	m := Map{}
	m.Add("test_a", "REQ-001")
	m.Add("test_a", "REQ-001", "REQ-002")
	m.Add("test_b") // no ids: must not create an entry

	require.Len(t, m, 1)
	assert.Equal(t, []requirement.ID{"REQ-001", "REQ-002"}, m["test_a"].Sorted())

	other := Map{}
	other.Add("test_b", "REQ-003")
	m.Merge(other)
	assert.Len(t, m, 2)
	assert.Equal(t, []requirement.ID{"REQ-001", "REQ-002", "REQ-003"}, m.Requirements().Sorted())
}
