package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqtrace/reqtrace/pkg/requirement"
)

func TestLoad_DocumentForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.yaml")
	content := `requirements:
  - id: REQ-001
    title: Subcooling trip
  - id: req-2 # malformed, dropped
  - id: req-003
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ids, err := Load(path, requirement.NewPattern("REQ"))
	require.NoError(t, err)
	assert.Equal(t, []requirement.ID{"REQ-001", "REQ-003"}, ids.Sorted())
}

func TestLoad_BareListForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.yaml")
	content := `- id: REQ-010
- id: REQ-011
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ids, err := Load(path, requirement.NewPattern("REQ"))
	require.NoError(t, err)
	assert.Equal(t, 2, ids.Len())
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), requirement.NewPattern("REQ"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirements catalog")
}

func TestLoad_UnparsableIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.yaml")
	require.NoError(t, os.WriteFile(path, []byte("requirements: {{nope"), 0o644))

	_, err := Load(path, requirement.NewPattern("REQ"))
	assert.Error(t, err)
}

func TestSalvage_FindsIDsInDocsAndSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "srs.md"), []byte("REQ-001 and req-002"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.bin"), []byte("REQ-003"), 0o644))

	ids := Salvage([]string{root}, requirement.NewPattern("REQ"))
	assert.Equal(t, []requirement.ID{"REQ-001", "REQ-002"}, ids.Sorted())
}
