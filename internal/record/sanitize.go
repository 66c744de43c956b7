// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package record

// SanitizeBuffer zeroes every byte after the logical content of b.
func SanitizeBuffer(b *Buffer) {
	clear(b[b.Len():])
}

// SanitizeItemDetails canonicalizes the string fields of every entry in arr.
func SanitizeItemDetails(arr []ItemDetails) {
	for i := range arr {
		SanitizeBuffer(&arr[i].Name)
		SanitizeBuffer(&arr[i].Desc)
	}
}

// SanitizeCharacters canonicalizes the string fields of every character in
// arr and zeroes the unused inventory slots.
func SanitizeCharacters(arr []Character) {
	for i := range arr {
		c := &arr[i]
		SanitizeBuffer(&c.Profession)
		SanitizeBuffer(&c.Name)
		clear(c.Inventory[len(c.Items()):])
	}
}
