// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package codec

import (
	"math"
	"math/bits"

	"github.com/samber/oops"
)

// DefaultMaxBytes caps the in-memory size of a decoded array.
const DefaultMaxBytes = 256 << 20

// Limits bounds what a decoder will allocate for an untrusted count.
type Limits struct {
	// MaxBytes is the largest count × record size accepted. Zero means
	// DefaultMaxBytes.
	MaxBytes uint64
}

// DefaultLimits is used by the package-level Load functions.
var DefaultLimits = Limits{MaxBytes: DefaultMaxBytes}

func (l Limits) maxBytes() uint64 {
	if l.MaxBytes == 0 {
		return DefaultMaxBytes
	}
	return l.MaxBytes
}

// allocSize returns count × size, rejecting products that overflow the
// platform int or exceed the configured limit.
func (l Limits) allocSize(count, size uint64) (int, error) {
	hi, lo := bits.Mul64(count, size)
	if hi != 0 || lo > math.MaxInt {
		return 0, oops.Code("CODEC_OVERFLOW").
			With("count", count).
			With("record_size", size).
			Errorf("record count %d overflows allocation size", count)
	}
	if lo > l.maxBytes() {
		return 0, oops.Code("CODEC_TOO_LARGE").
			With("count", count).
			With("record_size", size).
			With("max_bytes", l.maxBytes()).
			Errorf("record count %d needs %d bytes, limit is %d", count, lo, l.maxBytes())
	}
	return int(lo), nil
}
