// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package codec reads and writes pitchpolt records to raw byte streams.
//
// Catalog stream:   count:u64, then count × {name[C]; desc[C]} in one block.
// Character stream: count:u64, then per record characterID:u64,
// socialClass:u32, profession[C], name[C], inventorySize:u64 and
// inventorySize × {itemID:u64; quantity:u64}.
//
// Integers use the host byte order.
package codec

import (
	"encoding/binary"
	"io"

	"github.com/samber/oops"
)

var order = binary.NativeEndian

// ReadField fills buf with a single Read call. Anything other than exactly
// len(buf) bytes is a transfer fault; short reads are not resumed.
func ReadField(r io.Reader, buf []byte) error {
	n, err := r.Read(buf)
	return checkTransfer("read", n, len(buf), err)
}

// WriteField emits buf with a single Write call and fails unless every byte
// was accepted.
func WriteField(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	return checkTransfer("write", n, len(buf), err)
}

func checkTransfer(op string, n, size int, err error) error {
	if n == size && (err == nil || (err == io.EOF && op == "read")) {
		return nil
	}
	b := oops.Code("CODEC_SHORT_TRANSFER").
		With("op", op).
		With("transferred", n).
		With("expected", size)
	if err != nil {
		return b.Wrapf(err, "%s transferred %d of %d bytes", op, n, size)
	}
	return b.Errorf("%s transferred %d of %d bytes", op, n, size)
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := ReadField(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint64(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	order.PutUint64(buf[:], v)
	return WriteField(w, buf[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := ReadField(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	return WriteField(w, buf[:])
}
