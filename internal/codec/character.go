// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package codec

import (
	"io"
	"slices"

	"github.com/samber/oops"

	"github.com/pitchpolt/pitchpolt/internal/record"
)

// SaveCharacters validates arr and writes it to w as a character stream.
// Only the occupied inventory slots of each character are written.
func SaveCharacters(w io.Writer, arr []record.Character) error {
	if err := record.ValidateCharacters(arr); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(len(arr))); err != nil {
		return oops.With("field", "count").Wrapf(err, "write character count")
	}

	clean := slices.Clone(arr)
	record.SanitizeCharacters(clean)

	for i := range clean {
		if err := writeCharacter(w, &clean[i]); err != nil {
			return oops.With("index", i).Wrapf(err, "write character")
		}
	}
	return nil
}

// LoadCharacters reads a character stream using DefaultLimits.
func LoadCharacters(r io.Reader) ([]record.Character, error) {
	return NewDecoder(DefaultLimits).LoadCharacters(r)
}

// LoadCharacters reads a character stream. Every record must read in full
// before the array is validated as a whole; any failure discards all of it.
func (d *Decoder) LoadCharacters(r io.Reader) ([]record.Character, error) {
	count, err := readUint64(r)
	if err != nil {
		return nil, oops.With("field", "count").Wrapf(err, "read character count")
	}

	if _, err := d.Limits.allocSize(count, record.CharacterSize); err != nil {
		return nil, err
	}

	arr := make([]record.Character, count)
	for i := range arr {
		if err := readCharacter(r, &arr[i]); err != nil {
			return nil, oops.With("index", i).Wrapf(err, "read character")
		}
	}

	if err := record.ValidateCharacters(arr); err != nil {
		return nil, err
	}
	record.SanitizeCharacters(arr)
	return arr, nil
}

func writeCharacter(w io.Writer, c *record.Character) error {
	if err := writeUint64(w, c.CharacterID); err != nil {
		return withField(err, "character_id")
	}
	if err := writeUint32(w, uint32(c.SocialClass)); err != nil {
		return withField(err, "social_class")
	}
	if err := WriteField(w, c.Profession[:]); err != nil {
		return withField(err, "profession")
	}
	if err := WriteField(w, c.Name[:]); err != nil {
		return withField(err, "name")
	}
	if err := writeUint64(w, c.InventorySize); err != nil {
		return withField(err, "inventory_size")
	}
	if err := WriteField(w, encodeInventory(c.Items())); err != nil {
		return withField(err, "inventory")
	}
	return nil
}

func readCharacter(r io.Reader, c *record.Character) error {
	var err error
	if c.CharacterID, err = readUint64(r); err != nil {
		return withField(err, "character_id")
	}
	class, err := readUint32(r)
	if err != nil {
		return withField(err, "social_class")
	}
	c.SocialClass = record.SocialClass(class)
	if err := ReadField(r, c.Profession[:]); err != nil {
		return withField(err, "profession")
	}
	if err := ReadField(r, c.Name[:]); err != nil {
		return withField(err, "name")
	}
	if c.InventorySize, err = readUint64(r); err != nil {
		return withField(err, "inventory_size")
	}
	// The slot array has fixed capacity, so an oversized count cannot be read.
	if c.InventorySize > record.MaxItems {
		return oops.Code("RECORD_INVALID").
			With("field", "inventory_size").
			With("inventory_size", c.InventorySize).
			Errorf("inventory size %d exceeds maximum of %d", c.InventorySize, record.MaxItems)
	}

	buf := make([]byte, c.InventorySize*record.ItemCarriedSize)
	if err := ReadField(r, buf); err != nil {
		return withField(err, "inventory")
	}
	decodeInventory(buf, c.Inventory[:c.InventorySize])
	return nil
}

func withField(err error, field string) error {
	return oops.With("field", field).Wrap(err)
}

func encodeInventory(items []record.ItemCarried) []byte {
	buf := make([]byte, len(items)*record.ItemCarriedSize)
	for i, it := range items {
		off := i * record.ItemCarriedSize
		order.PutUint64(buf[off:], it.ItemID)
		order.PutUint64(buf[off+8:], it.Quantity)
	}
	return buf
}

func decodeInventory(buf []byte, items []record.ItemCarried) {
	for i := range items {
		off := i * record.ItemCarriedSize
		items[i].ItemID = order.Uint64(buf[off:])
		items[i].Quantity = order.Uint64(buf[off+8:])
	}
}
