package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "lease.PDF")
	body := []byte("%PDF-1.4 not really")
	require.NoError(t, os.WriteFile(p, body, 0o600))

	doc, err := Inspect(p, nil)
	require.NoError(t, err)
	sum := sha256.Sum256(body)
	assert.Equal(t, hex.EncodeToString(sum[:]), doc.HashHex)
	assert.Equal(t, "pdf", doc.FileExt)
	assert.Equal(t, constants.PDF, doc.Format)
	assert.Equal(t, int64(len(body)), doc.SizeBytes)
	assert.True(t, filepath.IsAbs(doc.SourcePath))
}

func TestInspect_UnexpectedExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "lease.docx")
	require.NoError(t, os.WriteFile(p, []byte("PK"), 0o600))

	doc, err := Inspect(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "docx", doc.FileExt)
	assert.Equal(t, "", doc.Format)
}

func TestInspect_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Inspect(filepath.Join(dir, "missing.pdf"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDocumentAccess))
	assert.Equal(t, common.CodeDocumentAccess, common.CodeOf(err))

	_, err = Inspect(dir, nil)
	assert.True(t, errors.Is(err, common.ErrDocumentAccess))
}

func TestAllowedExt(t *testing.T) {
	assert.True(t, AllowedExt(".PDF"))
	assert.True(t, AllowedExt("pdf"))
	assert.False(t, AllowedExt(".docx"))
	assert.True(t, IsHidden("/tmp/.lease.pdf"))
	assert.False(t, IsHidden("/tmp/lease.pdf"))
}
