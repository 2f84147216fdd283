// Package dex holds the closed vocabularies that back the packed format.
//
// Every category (species, items, abilities, moves, natures, tera types) is
// an ordered list of display names. A name's position in its list is the
// numeric code written on the wire, so the order of a vocabulary is part of
// the format: reordering a source file invalidates every record packed with
// the previous order.
//
// A Dex keeps two views of each category:
//
//	table: [ "", "Bulbasaur", "Ivysaur", ... ]   code -> name, O(1)
//	map:   { "": 0, "bulbasaur": 1, ... }        lower(name) -> code, O(1)
//
// A Dex is immutable once built and safe for concurrent use.
package dex

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Category identifies one closed vocabulary.
type Category int

const (
	Species Category = iota
	Items
	Abilities
	Moves
	Natures
	Teras

	numCategories
)

// Categories lists every category in source order.
var Categories = []Category{Species, Items, Abilities, Moves, Natures, Teras}

var categoryNames = [numCategories]string{
	Species:   "species",
	Items:     "items",
	Abilities: "abilities",
	Moves:     "moves",
	Natures:   "natures",
	Teras:     "teras",
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// FileName is the vocabulary source file for the category.
func (c Category) FileName() string {
	return c.String() + ".txt"
}

// ParseCategory resolves a category by name, case-insensitively. Singular
// forms and "tera"/"type" are accepted for convenience on the command line.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "species", "pokemon", "name", "names":
		return Species, nil
	case "items", "item":
		return Items, nil
	case "abilities", "ability":
		return Abilities, nil
	case "moves", "move":
		return Moves, nil
	case "natures", "nature":
		return Natures, nil
	case "teras", "tera", "type", "types":
		return Teras, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// ErrCodeOutOfRange is returned when a numeric code has no entry in its
// table. Seeing it means the packed data was produced with a different
// vocabulary than the one loaded.
var ErrCodeOutOfRange = errors.New("code out of range")

// CodeError reports a code lookup that fell outside a table.
type CodeError struct {
	Category Category
	Code     int
	Size     int
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("%s code %d out of range (table has %d entries)", e.Category, e.Code, e.Size)
}

func (e *CodeError) Unwrap() error {
	return ErrCodeOutOfRange
}

// Sources holds one ordered line list per category.
type Sources map[Category][]string

// Dex is a built set of tables and their case-insensitive inverses.
type Dex struct {
	tables [numCategories][]string
	maps   [numCategories]map[string]int
}

// Build constructs the tables and maps for every category. Lines are kept
// verbatim; map keys are lower-cased and a duplicate key keeps the index of
// its last occurrence. Categories missing from src are left empty.
func Build(src Sources) *Dex {
	d := &Dex{}
	for _, c := range Categories {
		lines := slices.Clone(src[c])
		d.tables[c] = lines
		d.maps[c] = buildMap(lines)
	}
	return d
}

func buildMap(table []string) map[string]int {
	m := make(map[string]int, len(table))
	for i, name := range table {
		m[strings.ToLower(name)] = i
	}
	return m
}

// Code returns the wire code for name. The lookup ignores case. The boolean
// is false when the name is not in the vocabulary.
func (d *Dex) Code(c Category, name string) (int, bool) {
	if c < 0 || c >= numCategories {
		return 0, false
	}
	i, ok := d.maps[c][strings.ToLower(name)]
	return i, ok
}

// Name returns the display name stored at code.
func (d *Dex) Name(c Category, code int) (string, error) {
	if c < 0 || c >= numCategories {
		return "", fmt.Errorf("unknown category %d", int(c))
	}
	table := d.tables[c]
	if code < 0 || code >= len(table) {
		return "", &CodeError{Category: c, Code: code, Size: len(table)}
	}
	return table[code], nil
}

// Len returns the number of entries in a category.
func (d *Dex) Len(c Category) int {
	if c < 0 || c >= numCategories {
		return 0
	}
	return len(d.tables[c])
}

// Table returns a copy of the category's ordered names.
func (d *Dex) Table(c Category) []string {
	if c < 0 || c >= numCategories {
		return nil
	}
	return slices.Clone(d.tables[c])
}
