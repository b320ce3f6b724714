package s3blob

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrgordon/spreadscan/internal/domain"
)

type recordingWriter struct {
	path        string
	contentType string
	body        []byte
	err         error
}

func (w *recordingWriter) Put(ctx context.Context, path string, data io.Reader, contentType string) error {
	if w.err != nil {
		return w.err
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	w.path = path
	w.contentType = contentType
	w.body = body
	return nil
}

func TestArchiveScanUploadsJSONSnapshot(t *testing.T) {
	w := &recordingWriter{}
	a := NewArchiver(w)

	res := domain.ScanResult{
		ID:              "scan-abc",
		PolymarketCount: 3,
		KalshiCount:     2,
		ScannedAt:       time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
	}

	key, err := a.ArchiveScan(context.Background(), res)
	require.NoError(t, err)

	assert.Equal(t, "scans/2026/08/29/scan-scan-abc.json", key)
	assert.Equal(t, key, w.path)
	assert.Equal(t, "application/json", w.contentType)

	var got domain.ScanResult
	require.NoError(t, json.Unmarshal(w.body, &got))
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, res.PolymarketCount, got.PolymarketCount)
	assert.True(t, got.ScannedAt.Equal(res.ScannedAt))
}

func TestArchiveScanKeyUsesUTCPartition(t *testing.T) {
	w := &recordingWriter{}
	a := NewArchiver(w)

	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	res := domain.ScanResult{
		ID:        "late",
		ScannedAt: time.Date(2026, 8, 28, 23, 30, 0, 0, loc),
	}

	key, err := a.ArchiveScan(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, "scans/2026/08/29/scan-late.json", key)
}

func TestArchiveScanWrapsWriterError(t *testing.T) {
	boom := errors.New("bucket gone")
	a := NewArchiver(&recordingWriter{err: boom})

	_, err := a.ArchiveScan(context.Background(), domain.ScanResult{ID: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "archive scan x")
}
