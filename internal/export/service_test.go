package export

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/entity"
)

func sampleResult() *entity.Result {
	meta := entity.NewRecord(constants.DefaultMetadataQuestions().Fields())
	meta.Set(constants.FieldCity, "Melbourne")

	fields := append(constants.DefaultAlterationQuestions().Fields(), constants.FieldSummaryOfAlteration)
	ok := entity.NewRecord(fields)
	ok.Set(constants.FieldCost, "$5,000")
	ok.Set(constants.FieldSummaryOfAlteration, "Tenant shall obtain consent for Alteration. Cost: $5,000.")
	failed := entity.NewRecord(fields)
	failed.Set(constants.FieldSummaryOfAlteration, "No alteration in common areas.")
	failed.Set(constants.FieldError, "model timed out")

	summary := "A retail lease."
	return &entity.Result{
		ExtractedData:     meta,
		Summary:           &summary,
		AlterationDetails: []*entity.Record{ok, failed},
		RunID:             "run-1",
		SourcePath:        "/tmp/lease.pdf",
		Pages:             3,
	}
}

func TestResultXLSX(t *testing.T) {
	b, err := NewService(nil).ResultXLSX(context.Background(), sampleResult())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetExtractedData, SheetSummary, SheetAlterations}, f.GetSheetList())

	meta, err := f.GetRows(SheetExtractedData)
	require.NoError(t, err)
	require.Len(t, meta, 9)
	assert.Equal(t, []string{"Field", "Value"}, meta[0])
	assert.Contains(t, meta, []string{constants.FieldCity, "Melbourne"})

	v, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "A retail lease.", v)

	rows, err := f.GetRows(SheetAlterations)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "#", rows[0][0])
	assert.Equal(t, constants.FieldConsent, rows[0][1])
	assert.Equal(t, constants.FieldError, rows[0][len(rows[0])-1])
	assert.Equal(t, "model timed out", rows[2][len(rows[0])-1])
	assert.Equal(t, "$5,000", rows[1][2])
}

func TestResultXLSX_EmptyResult(t *testing.T) {
	res := &entity.Result{ExtractedData: entity.NewRecord(nil)}
	b, err := NewService(nil).ResultXLSX(context.Background(), res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(SheetAlterations)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"#"}}, rows)

	_, err = NewService(nil).ResultXLSX(context.Background(), nil)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lease.xlsx")
	require.NoError(t, NewService(nil).WriteFile(context.Background(), sampleResult(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	v, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "run-1", v)
}

func TestWriteFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "lease.xlsx")
	err := NewService(nil).WriteFile(context.Background(), sampleResult(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "write "+path)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "é", truncate("éé", 1))
}
