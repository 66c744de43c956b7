// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package codec

import (
	"encoding/hex"
	"io"
	"slices"

	"github.com/samber/oops"
	"golang.org/x/crypto/blake2b"

	"github.com/pitchpolt/pitchpolt/internal/record"
)

// Decoder loads record arrays under the given limits.
type Decoder struct {
	Limits Limits
}

// NewDecoder returns a Decoder enforcing limits.
func NewDecoder(limits Limits) *Decoder {
	return &Decoder{Limits: limits}
}

// SaveItemDetails validates arr and writes it to w as a catalog stream.
// arr itself is never modified; a sanitized copy is written.
func SaveItemDetails(w io.Writer, arr []record.ItemDetails) error {
	if err := record.ValidateItemDetailsAll(arr); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(len(arr))); err != nil {
		return oops.With("field", "count").Wrapf(err, "write catalog count")
	}

	clean := slices.Clone(arr)
	record.SanitizeItemDetails(clean)

	if err := WriteField(w, encodeItemDetails(clean)); err != nil {
		return oops.With("count", len(arr)).Wrapf(err, "write catalog records")
	}
	return nil
}

// LoadItemDetails reads a catalog stream using DefaultLimits.
func LoadItemDetails(r io.Reader) ([]record.ItemDetails, error) {
	return NewDecoder(DefaultLimits).LoadItemDetails(r)
}

// LoadItemDetails reads a catalog stream, validates every entry and returns
// the sanitized array. Nothing is returned on failure.
func (d *Decoder) LoadItemDetails(r io.Reader) ([]record.ItemDetails, error) {
	count, err := readUint64(r)
	if err != nil {
		return nil, oops.With("field", "count").Wrapf(err, "read catalog count")
	}

	size, err := d.Limits.allocSize(count, record.ItemDetailsSize)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	if err := ReadField(r, buf); err != nil {
		return nil, oops.With("count", count).Wrapf(err, "read catalog records")
	}

	arr := decodeItemDetails(buf)
	if err := record.ValidateItemDetailsAll(arr); err != nil {
		return nil, err
	}
	record.SanitizeItemDetails(arr)
	return arr, nil
}

// Fingerprint returns the BLAKE2b-256 digest of the canonical catalog block.
// Catalogs with equal logical content share a fingerprint.
func Fingerprint(arr []record.ItemDetails) string {
	clean := slices.Clone(arr)
	record.SanitizeItemDetails(clean)
	sum := blake2b.Sum256(encodeItemDetails(clean))
	return hex.EncodeToString(sum[:])
}

func encodeItemDetails(arr []record.ItemDetails) []byte {
	buf := make([]byte, len(arr)*record.ItemDetailsSize)
	for i := range arr {
		off := i * record.ItemDetailsSize
		copy(buf[off:], arr[i].Name[:])
		copy(buf[off+record.BufferSize:], arr[i].Desc[:])
	}
	return buf
}

func decodeItemDetails(buf []byte) []record.ItemDetails {
	arr := make([]record.ItemDetails, len(buf)/record.ItemDetailsSize)
	for i := range arr {
		off := i * record.ItemDetailsSize
		copy(arr[i].Name[:], buf[off:off+record.BufferSize])
		copy(arr[i].Desc[:], buf[off+record.BufferSize:off+record.ItemDetailsSize])
	}
	return arr
}
