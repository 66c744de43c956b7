// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package record

import (
	"fmt"

	"github.com/samber/oops"
)

// ValidationError represents a record field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// isGraph reports whether c is a visible ASCII character, space excluded.
func isGraph(c byte) bool {
	return c > ' ' && c < 0x7f
}

// IsValidName reports whether b holds a non-empty single token of visible
// characters terminated within capacity.
func IsValidName(b *Buffer) bool {
	i := 0
	for ; i < BufferSize; i++ {
		if i < BufferSize-1 {
			if b[i] == 0 {
				break
			}
			if !isGraph(b[i]) {
				return false
			}
		} else if b[i] != 0 {
			return false
		}
	}
	return i != 0
}

// IsValidMultiword reports whether b holds visible tokens separated by
// spaces, with no leading or trailing space, terminated within capacity.
func IsValidMultiword(b *Buffer) bool {
	i := 0
	for ; i < BufferSize; i++ {
		if i == BufferSize-1 {
			if b[i] != 0 {
				return false
			}
			break
		}
		if b[i] == 0 {
			break
		}
		if b[i] == ' ' {
			if i == 0 {
				return false
			}
		} else if !isGraph(b[i]) {
			return false
		}
	}
	return i != 0 && b[i-1] != ' '
}

// IsValidItemDetails reports whether both fields of r are well formed.
func IsValidItemDetails(r *ItemDetails) bool {
	return IsValidName(&r.Name) && IsValidMultiword(&r.Desc)
}

// IsValidCharacter reports whether c is well formed: valid profession and
// name, at most MaxItems slots, and at most MaxItems items carried in total.
func IsValidCharacter(c *Character) bool {
	return c.validate() == nil
}

// Validate returns a ValidationError naming the first bad field of r.
func (r *ItemDetails) Validate() error {
	if !IsValidName(&r.Name) {
		return &ValidationError{Field: "name", Message: "must be a single printable token"}
	}
	if !IsValidMultiword(&r.Desc) {
		return &ValidationError{Field: "desc", Message: "must be printable words separated by spaces"}
	}
	return nil
}

// Validate returns a ValidationError naming the first bad field of c.
func (c *Character) Validate() error {
	return c.validate()
}

func (c *Character) validate() error {
	if !IsValidName(&c.Profession) {
		return &ValidationError{Field: "profession", Message: "must be a single printable token"}
	}
	if !IsValidMultiword(&c.Name) {
		return &ValidationError{Field: "name", Message: "must be printable words separated by spaces"}
	}
	if c.InventorySize > MaxItems {
		return &ValidationError{Field: "inventory_size", Message: fmt.Sprintf("exceeds maximum of %d", MaxItems)}
	}
	var total uint64
	for _, slot := range c.Inventory[:c.InventorySize] {
		// Checked per slot so the running total cannot wrap.
		if slot.Quantity > MaxItems-total {
			return &ValidationError{Field: "inventory", Message: fmt.Sprintf("carries more than %d items", MaxItems)}
		}
		total += slot.Quantity
	}
	return nil
}

// ValidateItemDetailsAll checks every entry of arr and rejects the whole
// array on the first failure.
func ValidateItemDetailsAll(arr []ItemDetails) error {
	for i := range arr {
		if err := arr[i].Validate(); err != nil {
			return oops.Code("RECORD_INVALID").
				With("kind", "item_details").
				With("index", i).
				Wrap(err)
		}
	}
	return nil
}

// ValidateCharacters checks every entry of arr and rejects the whole array on
// the first failure.
func ValidateCharacters(arr []Character) error {
	for i := range arr {
		if err := arr[i].validate(); err != nil {
			return oops.Code("RECORD_INVALID").
				With("kind", "character").
				With("index", i).
				With("character_id", arr[i].CharacterID).
				Wrap(err)
		}
	}
	return nil
}
