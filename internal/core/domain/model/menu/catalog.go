package menu

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"canteen/internal/pkg/errs"
)

// Currency is the fixed currency tag for all menu prices.
const Currency = "INR"

// ErrEntryIsNotConstructed is returned when an Entry was not created via NewEntry.
var ErrEntryIsNotConstructed = errs.NewValueIsRequiredError("Entry must be created via NewEntry")

// Entry is an immutable menu item: a canonical name mapped to a unit price.
// Names are trimmed of surrounding whitespace at construction; matching against
// the catalog is exact and case-sensitive.
type Entry struct {
	name      string
	unitPrice int64

	isConstructed bool
}

// NewEntry creates a menu entry with a trimmed, non-empty name and a
// non-negative unit price in whole currency units.
func NewEntry(name string, unitPrice int64) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, errs.NewValueIsRequiredError("name")
	}
	if unitPrice < 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return Entry{
		name:          name,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was created via NewEntry.
func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// Name returns the canonical item name.
func (e Entry) Name() string {
	return e.name
}

// UnitPrice returns the price for one unit of the item.
func (e Entry) UnitPrice() int64 {
	return e.unitPrice
}

// Currency returns the fixed currency tag.
func (e Entry) Currency() string {
	return Currency
}

// Catalog is an immutable mapping from item name to menu entry.
// It is loaded once at process start and supports pure lookups only.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog builds a catalog from the given entries.
// The entry set must be non-empty and free of duplicate names.
func NewCatalog(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errs.NewValueIsRequiredError("entries")
	}

	byName := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[entry.name]; exists {
			return nil, errs.NewValueIsInvalidErrorWithCause("entries",
				fmt.Errorf("duplicate menu item %q", entry.name))
		}
		byName[entry.name] = entry
	}

	return &Catalog{entries: byName}, nil
}

// Validate ensures the catalog was created via NewCatalog.
func (c *Catalog) Validate() error {
	if c == nil || c.entries == nil {
		return errs.NewValueIsRequiredError("Catalog must be created via NewCatalog")
	}
	return nil
}

// Lookup resolves a menu entry by name. The name is trimmed of surrounding
// whitespace before matching; matching is exact and case-sensitive.
// Returns an ObjectNotFoundError when the item is not on the menu. This is a
// validation-time condition, not a system fault.
func (c *Catalog) Lookup(name string) (Entry, error) {
	name = strings.TrimSpace(name)
	entry, ok := c.entries[name]
	if !ok {
		return Entry{}, errs.NewObjectNotFoundError("menu item", name)
	}
	return entry, nil
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all menu entries sorted by name.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries
}

// entryJSON is the wire shape of one menu item in a menu file.
type entryJSON struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
}

// FromJSON builds a catalog from a JSON array of {name, unitPrice} objects.
func FromJSON(data []byte) (*Catalog, error) {
	var raw []entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("menu", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		entry, err := NewEntry(item.Name, item.UnitPrice)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return NewCatalog(entries)
}

// Default returns the built-in counter menu used when no menu file is configured.
func Default() *Catalog {
	items := []struct {
		name  string
		price int64
	}{
		{"Plain Maggi", 50},
		{"Cheese Maggi", 70},
		{"Veg Sandwich", 60},
		{"Grilled Cheese Sandwich", 80},
		{"Samosa", 20},
		{"Cold Coffee", 60},
		{"Masala Chai", 25},
		{"Coca Cola", 35},
		{"Water Bottle", 20},
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entry, err := NewEntry(item.name, item.price)
		if err != nil {
			// Built-in menu data is static and always valid.
			panic(err)
		}
		entries = append(entries, entry)
	}

	catalog, err := NewCatalog(entries)
	if err != nil {
		panic(err)
	}
	return catalog
}
