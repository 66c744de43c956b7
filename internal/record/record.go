// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package record defines the fixed-shape game records persisted by pitchpolt:
// item catalog entries and player characters.
package record

import (
	"bytes"
	"fmt"
)

// Record shape limits.
const (
	// BufferSize is the capacity of every fixed string field, terminator included.
	BufferSize = 512
	// MaxItems bounds both the inventory slot count and the total carried quantity.
	MaxItems = 1000
)

// On-disk sizes in bytes.
const (
	ItemDetailsSize     = 2 * BufferSize
	ItemCarriedSize     = 16
	CharacterHeaderSize = 8 + 4 + BufferSize + BufferSize + 8
	CharacterSize       = CharacterHeaderSize + MaxItems*ItemCarriedSize
)

// Buffer is a NUL-terminated string stored in a fixed BufferSize array.
// Its logical content is everything before the first NUL byte.
type Buffer [BufferSize]byte

// NewBuffer copies s into a Buffer. It fails if s does not leave room for
// the terminator or contains a NUL byte.
func NewBuffer(s string) (Buffer, error) {
	var b Buffer
	if len(s) > BufferSize-1 {
		return b, &ValidationError{Field: "buffer", Message: fmt.Sprintf("exceeds maximum length of %d", BufferSize-1)}
	}
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return b, &ValidationError{Field: "buffer", Message: "cannot contain NUL bytes"}
	}
	copy(b[:], s)
	return b, nil
}

// MustBuffer is like NewBuffer but panics on error. Intended for tests and
// static data.
func MustBuffer(s string) Buffer {
	b, err := NewBuffer(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the logical length, never more than BufferSize.
func (b *Buffer) Len() int {
	if i := bytes.IndexByte(b[:], 0); i >= 0 {
		return i
	}
	return BufferSize
}

// String returns the logical content.
func (b *Buffer) String() string {
	return string(b[:b.Len()])
}

// ItemDetails is a catalog entry describing one kind of item.
type ItemDetails struct {
	Name Buffer
	Desc Buffer
}

// ItemCarried is one inventory slot. ItemID refers to a catalog entry and is
// not checked here.
type ItemCarried struct {
	ItemID   uint64
	Quantity uint64
}

// SocialClass is a character's standing.
type SocialClass uint32

// Social classes, lowest first.
const (
	Mendicant SocialClass = iota
	Labourer
	Merchant
	Gentry
	Aristocracy
)

var socialClassNames = [...]string{"mendicant", "labourer", "merchant", "gentry", "aristocracy"}

func (c SocialClass) String() string {
	if int(c) < len(socialClassNames) {
		return socialClassNames[c]
	}
	return fmt.Sprintf("SocialClass(%d)", uint32(c))
}

// ParseSocialClass maps a lower-case class name back to its value.
func ParseSocialClass(s string) (SocialClass, error) {
	for i, name := range socialClassNames {
		if name == s {
			return SocialClass(i), nil
		}
	}
	return 0, &ValidationError{Field: "social_class", Message: fmt.Sprintf("unknown class %q", s)}
}

// Character is a player record. Inventory has fixed capacity; only the first
// InventorySize slots are meaningful.
type Character struct {
	CharacterID   uint64
	SocialClass   SocialClass
	Profession    Buffer
	Name          Buffer
	InventorySize uint64
	Inventory     [MaxItems]ItemCarried
}

// Items returns the occupied inventory slots.
func (c *Character) Items() []ItemCarried {
	n := c.InventorySize
	if n > MaxItems {
		n = MaxItems
	}
	return c.Inventory[:n]
}
