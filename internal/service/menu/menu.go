// Package menu holds the restaurant's fixed catalog and the pure filter that
// derives the visible list from a category selection and free-text search.
package menu

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

// CategoryAll is the selector sentinel that disables category filtering.
const CategoryAll = "All"

// Category labels offered by the menu selector.
const (
	CategoryStarters = "Starters"
	CategoryMains    = "Mains"
	CategoryDesserts = "Desserts"
	CategoryDrinks   = "Drinks"
)

var (
	ErrDuplicateID  = errors.New("duplicate menu item id")
	ErrItemNotFound = errors.New("menu item not found")
)

// Item is a single catalog entry. Price is a display string; ImageRef is an
// opaque asset handle the client resolves.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	ImageRef    string
}

// Categories returns the selector set in display order, starting with CategoryAll.
func Categories() []string {
	return []string{CategoryAll, CategoryStarters, CategoryMains, CategoryDesserts, CategoryDrinks}
}

// Criteria are the two independent inputs of the filter.
type Criteria struct {
	ActiveCategory string
	SearchText     string
}

// DefaultCriteria is what the menu screen shows before the user touches anything.
func DefaultCriteria() Criteria {
	return Criteria{ActiveCategory: CategoryStarters}
}

// Matches reports whether item passes both the category and the search predicate.
func (c Criteria) Matches(item Item) bool {
	return c.matchesCategory(item) && c.matchesSearch(item)
}

func (c Criteria) matchesCategory(item Item) bool {
	return c.ActiveCategory == CategoryAll || item.Category == c.ActiveCategory
}

// An empty search admits everything.
func (c Criteria) matchesSearch(item Item) bool {
	if c.SearchText == "" {
		return true
	}
	needle := strings.ToLower(c.SearchText)
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}

// Filter lazily yields the items matching criteria, in their original order.
func Filter(items []Item, criteria Criteria) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, item := range items {
			if !criteria.Matches(item) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Apply collects Filter into a slice. The result is never nil.
func Apply(items []Item, criteria Criteria) []Item {
	return collect(Filter(items, criteria))
}

// collect never returns nil so an empty result encodes as [].
func collect(seq iter.Seq[Item]) []Item {
	out := slices.Collect(seq)
	if out == nil {
		return []Item{}
	}
	return out
}
