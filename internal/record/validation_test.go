// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package record_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchpolt/pitchpolt/internal/record"
	"github.com/pitchpolt/pitchpolt/pkg/errutil"
)

// rawBuffer builds a Buffer without the NewBuffer length and NUL checks.
func rawBuffer(s string) record.Buffer {
	var b record.Buffer
	copy(b[:], s)
	return b
}

func TestIsValidName(t *testing.T) {
	full := rawBuffer(strings.Repeat("x", record.BufferSize))
	maxLen := rawBuffer(strings.Repeat("x", record.BufferSize-1))

	tests := []struct {
		name  string
		buf   record.Buffer
		valid bool
	}{
		{"single token", rawBuffer("sword"), true},
		{"punctuation", rawBuffer("half-plate+1"), true},
		{"empty", rawBuffer(""), false},
		{"contains space", rawBuffer("long sword"), false},
		{"leading space", rawBuffer(" sword"), false},
		{"tab", rawBuffer("a\tb"), false},
		{"control byte", rawBuffer("a\x01"), false},
		{"high byte", rawBuffer("caf\xc3\xa9"), false},
		{"longest allowed", maxLen, true},
		{"no terminator", full, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, record.IsValidName(&tt.buf))
		})
	}
}

func TestIsValidName_IgnoresGarbageAfterTerminator(t *testing.T) {
	b := rawBuffer("axe\x00 \x01\x02garbage")
	assert.True(t, record.IsValidName(&b))
}

func TestIsValidMultiword(t *testing.T) {
	maxLen := rawBuffer("a" + strings.Repeat(" b", (record.BufferSize-2)/2))
	require.Equal(t, record.BufferSize-1, maxLen.Len())

	tests := []struct {
		name  string
		buf   record.Buffer
		valid bool
	}{
		{"three words", rawBuffer("a b c"), true},
		{"single word", rawBuffer("sword"), true},
		{"double space inside", rawBuffer("a  b"), true},
		{"empty", rawBuffer(""), false},
		{"leading space", rawBuffer(" a"), false},
		{"trailing space", rawBuffer("a "), false},
		{"only space", rawBuffer(" "), false},
		{"tab", rawBuffer("a\tb"), false},
		{"newline", rawBuffer("a\nb"), false},
		{"longest allowed", maxLen, true},
		{"no terminator", rawBuffer(strings.Repeat("a", record.BufferSize)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, record.IsValidMultiword(&tt.buf))
		})
	}
}

func TestIsValidMultiword_TrailingSpaceAtCapacity(t *testing.T) {
	b := rawBuffer(strings.Repeat("a", record.BufferSize-2) + " ")
	assert.False(t, record.IsValidMultiword(&b))
}

func TestIsValidItemDetails(t *testing.T) {
	valid := record.ItemDetails{Name: rawBuffer("lantern"), Desc: rawBuffer("a brass lantern")}
	assert.True(t, record.IsValidItemDetails(&valid))

	badName := record.ItemDetails{Name: rawBuffer("brass lantern"), Desc: rawBuffer("lamp")}
	assert.False(t, record.IsValidItemDetails(&badName))

	badDesc := record.ItemDetails{Name: rawBuffer("lantern"), Desc: rawBuffer("lamp ")}
	assert.False(t, record.IsValidItemDetails(&badDesc))
}

func TestItemDetails_ValidateMessage(t *testing.T) {
	spaced := record.ItemDetails{Name: rawBuffer("lantern"), Desc: rawBuffer("a  brass lantern")}
	require.NoError(t, spaced.Validate())

	bad := record.ItemDetails{Name: rawBuffer("lantern"), Desc: rawBuffer(" lamp")}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "separated by spaces")
	assert.NotContains(t, err.Error(), "single spaces")
}

func newCharacter(slots ...record.ItemCarried) record.Character {
	c := record.Character{
		CharacterID:   7,
		SocialClass:   record.Merchant,
		Profession:    rawBuffer("chandler"),
		Name:          rawBuffer("Ada of Lyme"),
		InventorySize: uint64(len(slots)),
	}
	copy(c.Inventory[:], slots)
	return c
}

func TestIsValidCharacter(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *record.Character)
		valid  bool
	}{
		{"empty inventory", func(*record.Character) {}, true},
		{"quantity at cap", func(c *record.Character) {
			c.InventorySize = 2
			c.Inventory[0] = record.ItemCarried{ItemID: 1, Quantity: record.MaxItems - 1}
			c.Inventory[1] = record.ItemCarried{ItemID: 2, Quantity: 1}
		}, true},
		{"quantity over cap", func(c *record.Character) {
			c.InventorySize = 2
			c.Inventory[0] = record.ItemCarried{ItemID: 1, Quantity: record.MaxItems}
			c.Inventory[1] = record.ItemCarried{ItemID: 2, Quantity: 1}
		}, false},
		{"quantity sum would wrap", func(c *record.Character) {
			c.InventorySize = 2
			c.Inventory[0] = record.ItemCarried{Quantity: 1}
			c.Inventory[1] = record.ItemCarried{Quantity: ^uint64(0)}
		}, false},
		{"quantities past inventory size ignored", func(c *record.Character) {
			c.InventorySize = 1
			c.Inventory[0] = record.ItemCarried{Quantity: 5}
			c.Inventory[1] = record.ItemCarried{Quantity: record.MaxItems}
		}, true},
		{"inventory size over cap", func(c *record.Character) {
			c.InventorySize = record.MaxItems + 1
		}, false},
		{"profession with space", func(c *record.Character) {
			c.Profession = rawBuffer("tallow chandler")
		}, false},
		{"empty name", func(c *record.Character) {
			c.Name = rawBuffer("")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCharacter()
			tt.mutate(&c)
			assert.Equal(t, tt.valid, record.IsValidCharacter(&c))
		})
	}
}

func TestValidateItemDetailsAll_RejectsWholeArray(t *testing.T) {
	arr := []record.ItemDetails{
		{Name: rawBuffer("rope"), Desc: rawBuffer("fifty feet of hemp")},
		{Name: rawBuffer("bad name"), Desc: rawBuffer("oops")},
	}

	err := record.ValidateItemDetailsAll(arr)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "RECORD_INVALID")
	errutil.AssertErrorContext(t, err, "index", 1)

	assert.NoError(t, record.ValidateItemDetailsAll(arr[:1]))
	assert.NoError(t, record.ValidateItemDetailsAll(nil))
}

func TestValidateCharacters_RejectsWholeArray(t *testing.T) {
	good := newCharacter(record.ItemCarried{ItemID: 3, Quantity: 2})
	bad := newCharacter()
	bad.InventorySize = record.MaxItems + 1

	err := record.ValidateCharacters([]record.Character{good, bad})
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "RECORD_INVALID")
	errutil.AssertErrorContext(t, err, "kind", "character")

	var verr *record.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "inventory_size", verr.Field)
}
