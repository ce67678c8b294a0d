// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage backends, and utils can all import types without
// depending on each other.
package types

// MenuItem represents a single item on the restaurant menu as it is
// stored and returned to clients.
//
// Description is a pointer so that "not set" encodes as JSON null
// instead of an empty string.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

// Draft is a MenuItem that has not passed schema validation yet.
// A nil field means the field is absent.
//
// The validate:"..." tags are the schema every store enforces before a
// write:
//
//   - Name must be present and non-empty.
//   - Price must be present (zero is a valid stored price).
type Draft struct {
	Name        *string  `validate:"required,min=1"`
	Description *string
	Price       *float64 `validate:"required"`
}

// DraftOf returns a Draft holding the current fields of item.
// Stores use it as the base when merging an update.
func DraftOf(item MenuItem) Draft {
	name := item.Name
	price := item.Price

	d := Draft{Name: &name, Price: &price}
	if item.Description != nil {
		desc := *item.Description
		d.Description = &desc
	}
	return d
}

// Item converts a validated Draft into a MenuItem with the given id.
// Call Validate first: absent required fields come out as zero values.
func (d Draft) Item(id string) MenuItem {
	item := MenuItem{ID: id, Description: d.Description}
	if d.Name != nil {
		item.Name = *d.Name
	}
	if d.Price != nil {
		item.Price = *d.Price
	}
	return item
}
