// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package codec_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/record"
	"github.com/pitchpolt/pitchpolt/pkg/errutil"
)

// limitedWriter accepts at most n bytes in total and then reports a short write.
type limitedWriter struct {
	buf bytes.Buffer
	n   int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		k, _ := w.buf.Write(p[:w.n])
		w.n = 0
		return k, nil
	}
	w.n -= len(p)
	return w.buf.Write(p)
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

// dirty fills the bytes after the terminator with junk so sanitization is observable.
func dirty(s string) record.Buffer {
	b := record.MustBuffer(s)
	for i := len(s) + 1; i < len(b); i++ {
		b[i] = 0xAA
	}
	return b
}

func sampleCatalog() []record.ItemDetails {
	return []record.ItemDetails{
		{Name: dirty("lantern"), Desc: dirty("a brass lantern with a cracked pane")},
		{Name: record.MustBuffer("rope"), Desc: record.MustBuffer("fifty feet of hemp")},
		{Name: dirty("flint"), Desc: dirty("flint")},
	}
}

func countHeader(n uint64) []byte {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], n)
	return buf[:]
}

func TestReadField(t *testing.T) {
	buf := make([]byte, 4)
	require.NoError(t, codec.ReadField(bytes.NewReader([]byte{1, 2, 3, 4, 5}), buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)

	err := codec.ReadField(bytes.NewReader([]byte{1, 2}), buf)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CODEC_SHORT_TRANSFER")
	errutil.AssertErrorContext(t, err, "transferred", 2)

	err = codec.ReadField(bytes.NewReader(nil), buf)
	errutil.AssertErrorCode(t, err, "CODEC_SHORT_TRANSFER")

	boom := errors.New("disk on fire")
	err = codec.ReadField(errReader{err: boom}, buf)
	require.ErrorIs(t, err, boom)

	// Zero-length reads succeed even at end of stream.
	assert.NoError(t, codec.ReadField(bytes.NewReader(nil), nil))
}

func TestWriteField(t *testing.T) {
	w := &limitedWriter{n: 3}
	require.NoError(t, codec.WriteField(w, []byte{1, 2}))

	err := codec.WriteField(w, []byte{3, 4})
	errutil.AssertErrorCode(t, err, "CODEC_SHORT_TRANSFER")
	errutil.AssertErrorContext(t, err, "op", "write")
	assert.Equal(t, []byte{1, 2, 3}, w.buf.Bytes())
}

func TestItemDetails_RoundTrip(t *testing.T) {
	orig := sampleCatalog()
	var buf bytes.Buffer
	require.NoError(t, codec.SaveItemDetails(&buf, orig))
	assert.Equal(t, 8+len(orig)*record.ItemDetailsSize, buf.Len())

	loaded, err := codec.LoadItemDetails(&buf)
	require.NoError(t, err)

	want := append([]record.ItemDetails(nil), orig...)
	record.SanitizeItemDetails(want)
	assert.Equal(t, want, loaded)
}

func TestSaveItemDetails_DoesNotMutateCaller(t *testing.T) {
	orig := sampleCatalog()
	before := append([]record.ItemDetails(nil), orig...)

	require.NoError(t, codec.SaveItemDetails(io.Discard, orig))
	assert.Equal(t, before, orig)
}

func TestSaveItemDetails_DeterministicOutput(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, codec.SaveItemDetails(&a, sampleCatalog()))

	clean := sampleCatalog()
	record.SanitizeItemDetails(clean)
	require.NoError(t, codec.SaveItemDetails(&b, clean))

	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestSaveItemDetails_InvalidWritesNothing(t *testing.T) {
	arr := sampleCatalog()
	arr[1].Name = record.MustBuffer("two words")

	var buf bytes.Buffer
	err := codec.SaveItemDetails(&buf, arr)
	errutil.AssertErrorCode(t, err, "RECORD_INVALID")
	assert.Zero(t, buf.Len())
}

func TestSaveItemDetails_ShortWrite(t *testing.T) {
	w := &limitedWriter{n: 8 + record.ItemDetailsSize}
	err := codec.SaveItemDetails(w, sampleCatalog())
	errutil.AssertErrorCode(t, err, "CODEC_SHORT_TRANSFER")
}

func TestLoadItemDetails_Empty(t *testing.T) {
	arr, err := codec.LoadItemDetails(bytes.NewReader(countHeader(0)))
	require.NoError(t, err)
	assert.Empty(t, arr)
}

func TestLoadItemDetails_Failures(t *testing.T) {
	var valid bytes.Buffer
	require.NoError(t, codec.SaveItemDetails(&valid, sampleCatalog()))
	stream := valid.Bytes()

	corrupt := bytes.Clone(stream)
	corrupt[8] = '\t'

	tests := []struct {
		name string
		data []byte
		code string
	}{
		{"missing count", nil, "CODEC_SHORT_TRANSFER"},
		{"partial count", stream[:5], "CODEC_SHORT_TRANSFER"},
		{"truncated records", stream[:len(stream)-1], "CODEC_SHORT_TRANSFER"},
		{"overflowing count", countHeader(1 << 62), "CODEC_OVERFLOW"},
		{"max count", countHeader(^uint64(0)), "CODEC_OVERFLOW"},
		{"count past limit", countHeader(codec.DefaultMaxBytes/record.ItemDetailsSize + 1), "CODEC_TOO_LARGE"},
		{"invalid record", corrupt, "RECORD_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr, err := codec.LoadItemDetails(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.Nil(t, arr)
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}
}

func TestDecoder_CustomLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.SaveItemDetails(&buf, sampleCatalog()))

	dec := codec.NewDecoder(codec.Limits{MaxBytes: 2 * record.ItemDetailsSize})
	arr, err := dec.LoadItemDetails(bytes.NewReader(buf.Bytes()))
	assert.Nil(t, arr)
	errutil.AssertErrorCode(t, err, "CODEC_TOO_LARGE")

	dec = codec.NewDecoder(codec.Limits{MaxBytes: 3 * record.ItemDetailsSize})
	arr, err = dec.LoadItemDetails(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, arr, 3)
}

func TestFingerprint(t *testing.T) {
	clean := sampleCatalog()
	record.SanitizeItemDetails(clean)

	assert.Equal(t, codec.Fingerprint(clean), codec.Fingerprint(sampleCatalog()))
	assert.Len(t, codec.Fingerprint(nil), 64)

	other := sampleCatalog()
	other[0].Name = record.MustBuffer("lamp")
	assert.NotEqual(t, codec.Fingerprint(clean), codec.Fingerprint(other))
}
