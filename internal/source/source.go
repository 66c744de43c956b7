// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package source reads and writes the YAML files game designers author
// catalogs and character rosters in, and converts them to records.
package source

import (
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/pitchpolt/pitchpolt/internal/record"
)

// Catalog is an items.yaml file.
type Catalog struct {
	Items []Item `json:"items" yaml:"items" jsonschema:"required"`
}

// Item is one catalog entry.
type Item struct {
	Name string `json:"name" yaml:"name" jsonschema:"required,minLength=1,maxLength=511,pattern=^[!-~]+$"`
	Desc string `json:"desc" yaml:"desc" jsonschema:"required,minLength=1,maxLength=511,pattern=^[!-~]+( +[!-~]+)*$"`
}

// Roster is a characters.yaml file.
type Roster struct {
	Characters []Character `json:"characters" yaml:"characters" jsonschema:"required"`
}

// Character is one player record.
type Character struct {
	ID          uint64    `json:"id" yaml:"id" jsonschema:"required,minimum=0"`
	SocialClass string    `json:"social_class" yaml:"social_class" jsonschema:"required,enum=mendicant,enum=labourer,enum=merchant,enum=gentry,enum=aristocracy"`
	Profession  string    `json:"profession" yaml:"profession" jsonschema:"required,minLength=1,maxLength=511,pattern=^[!-~]+$"`
	Name        string    `json:"name" yaml:"name" jsonschema:"required,minLength=1,maxLength=511,pattern=^[!-~]+( +[!-~]+)*$"`
	Inventory   []Carried `json:"inventory,omitempty" yaml:"inventory,omitempty" jsonschema:"maxItems=1000"`
}

// Carried is one inventory slot.
type Carried struct {
	ItemID   uint64 `json:"item_id" yaml:"item_id" jsonschema:"required,minimum=0"`
	Quantity uint64 `json:"quantity" yaml:"quantity" jsonschema:"required,minimum=0,maximum=1000"`
}

// ParseCatalog validates data against the catalog schema and decodes it.
func ParseCatalog(data []byte) (*Catalog, error) {
	if err := ValidateSchema(KindCatalog, data); err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, oops.Code("SOURCE_INVALID_YAML").Wrap(err)
	}
	return &c, nil
}

// ParseRoster validates data against the roster schema and decodes it.
func ParseRoster(data []byte) (*Roster, error) {
	if err := ValidateSchema(KindRoster, data); err != nil {
		return nil, err
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, oops.Code("SOURCE_INVALID_YAML").Wrap(err)
	}
	return &r, nil
}

// Marshal encodes a Catalog or Roster as YAML.
func Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, oops.Code("SOURCE_MARSHAL_FAILED").Wrap(err)
	}
	return data, nil
}

// ItemDetails converts the catalog to records. Strings that cannot fit a
// record buffer are rejected; record-level rules are left to the codec.
func (c *Catalog) ItemDetails() ([]record.ItemDetails, error) {
	arr := make([]record.ItemDetails, len(c.Items))
	for i, it := range c.Items {
		var err error
		if arr[i].Name, err = record.NewBuffer(it.Name); err != nil {
			return nil, oops.Code("SOURCE_INVALID_ITEM").With("index", i).With("field", "name").Wrap(err)
		}
		if arr[i].Desc, err = record.NewBuffer(it.Desc); err != nil {
			return nil, oops.Code("SOURCE_INVALID_ITEM").With("index", i).With("field", "desc").Wrap(err)
		}
	}
	return arr, nil
}

// CatalogFrom builds a Catalog from records.
func CatalogFrom(arr []record.ItemDetails) *Catalog {
	c := &Catalog{Items: make([]Item, len(arr))}
	for i := range arr {
		c.Items[i] = Item{Name: arr[i].Name.String(), Desc: arr[i].Desc.String()}
	}
	return c
}

// Records converts the roster to character records.
func (r *Roster) Records() ([]record.Character, error) {
	arr := make([]record.Character, len(r.Characters))
	for i, src := range r.Characters {
		fail := oops.Code("SOURCE_INVALID_CHARACTER").With("index", i).With("id", src.ID)
		c := &arr[i]
		c.CharacterID = src.ID

		class, err := record.ParseSocialClass(src.SocialClass)
		if err != nil {
			return nil, fail.Wrap(err)
		}
		c.SocialClass = class

		if c.Profession, err = record.NewBuffer(src.Profession); err != nil {
			return nil, fail.With("field", "profession").Wrap(err)
		}
		if c.Name, err = record.NewBuffer(src.Name); err != nil {
			return nil, fail.With("field", "name").Wrap(err)
		}
		if len(src.Inventory) > record.MaxItems {
			return nil, fail.With("field", "inventory").Errorf("%d inventory slots exceed maximum of %d", len(src.Inventory), record.MaxItems)
		}
		c.InventorySize = uint64(len(src.Inventory))
		for j, slot := range src.Inventory {
			c.Inventory[j] = record.ItemCarried{ItemID: slot.ItemID, Quantity: slot.Quantity}
		}
	}
	return arr, nil
}

// RosterFrom builds a Roster from records.
func RosterFrom(arr []record.Character) *Roster {
	r := &Roster{Characters: make([]Character, len(arr))}
	for i := range arr {
		c := &arr[i]
		src := Character{
			ID:          c.CharacterID,
			SocialClass: c.SocialClass.String(),
			Profession:  c.Profession.String(),
			Name:        c.Name.String(),
		}
		for _, slot := range c.Items() {
			src.Inventory = append(src.Inventory, Carried{ItemID: slot.ItemID, Quantity: slot.Quantity})
		}
		r.Characters[i] = src
	}
	return r
}
