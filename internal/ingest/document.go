package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
)

// Document describes the lease file handed to one extraction run.
type Document struct {
	SourcePath string
	FileExt    string
	Format     string // constants.PDF, or "" for an unexpected extension
	SizeBytes  int64
	HashHex    string
	ModifiedAt time.Time
}

// Inspect resolves path, checks it is a readable regular file and hashes its contents.
// A missing or non-.pdf extension is only logged; the PDF reader has the final word.
func Inspect(path string, logger *slog.Logger) (Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var out Document

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, common.DocumentAccessError(path, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return out, common.DocumentAccessError(abs, err)
	}
	if st.IsDir() {
		return out, common.DocumentAccessError(abs, errors.New("is a directory"))
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if !AllowedExt(ext) {
		logger.Warn("unexpected file extension", "path", abs, "ext", ext)
	}
	if IsHidden(abs) {
		logger.Debug("hidden input file", "path", abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return out, common.DocumentAccessError(abs, err)
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			logger.Warn("close file error", "path", abs, "error", err)
		}
	}(f)

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return out, common.DocumentAccessError(abs, fmt.Errorf("hash: %w", err))
	}

	out = Document{
		SourcePath: abs,
		FileExt:    ext,
		Format:     constants.MapExtToFormat(ext),
		SizeBytes:  st.Size(),
		HashHex:    hex.EncodeToString(h.Sum(nil)),
		ModifiedAt: st.ModTime().UTC(),
	}
	return out, nil
}
