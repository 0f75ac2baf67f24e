package menu

import (
	"fmt"
	"iter"
	"slices"
)

// Catalog is an ordered, immutable collection of menu items.
type Catalog struct {
	items []Item
	index map[string]int
}

// NewCatalog builds a catalog preserving the given order. IDs must be unique.
func NewCatalog(items ...Item) (*Catalog, error) {
	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, dup := index[item.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, item.ID)
		}
		index[item.ID] = i
	}
	return &Catalog{items: slices.Clone(items), index: index}, nil
}

// Items returns a copy of the catalog in display order.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Get looks an item up by ID.
func (c *Catalog) Get(id string) (Item, error) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return c.items[i], nil
}

// Filter yields the catalog items matching criteria.
func (c *Catalog) Filter(criteria Criteria) iter.Seq[Item] {
	return Filter(c.items, criteria)
}

// Apply returns the catalog items matching criteria as a slice.
func (c *Catalog) Apply(criteria Criteria) []Item {
	return collect(c.Filter(criteria))
}

// DefaultCatalog returns the Little Lemon menu.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems...)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultItems = []Item{
	{
		ID:          "1",
		Name:        "Greek Salad",
		Description: "The famous greek salad of crispy lettuce, peppers, olives and our Chicago style feta cheese.",
		Price:       "$12.99",
		Category:    CategoryStarters,
		ImageRef:    "images/greek-salad.png",
	},
	{
		ID:          "2",
		Name:        "Bruschetta",
		Description: "Our Bruschetta is made from grilled bread that has been smeared with garlic and seasoned with salt and olive oil.",
		Price:       "$7.99",
		Category:    CategoryStarters,
		ImageRef:    "images/bruschetta.png",
	},
	{
		ID:          "3",
		Name:        "Grilled Fish",
		Description: "Fresh fish, grilled to perfection and served with a side of vegetables and our special sauce.",
		Price:       "$18.99",
		Category:    CategoryMains,
		ImageRef:    "images/grilled-fish.png",
	},
	{
		ID:          "4",
		Name:        "Pasta",
		Description: "Homemade pasta with your choice of sauce - marinara, alfredo, or pesto.",
		Price:       "$14.99",
		Category:    CategoryMains,
		ImageRef:    "images/pasta.png",
	},
	{
		ID:          "5",
		Name:        "Lemon Dessert",
		Description: "This comes straight from grandma's recipe book, every last ingredient has been sourced and is as authentic as can be imagined.",
		Price:       "$6.99",
		Category:    CategoryDesserts,
		ImageRef:    "images/lemon-dessert.png",
	},
	{
		ID:          "6",
		Name:        "Cheesecake",
		Description: "Rich and creamy New York style cheesecake topped with seasonal berries.",
		Price:       "$8.99",
		Category:    CategoryDesserts,
		ImageRef:    "images/cheesecake.png",
	},
	{
		ID:          "7",
		Name:        "Lemonade",
		Description: "Freshly squeezed lemons with just the right amount of sweetness.",
		Price:       "$3.99",
		Category:    CategoryDrinks,
		ImageRef:    "images/lemonade.png",
	},
	{
		ID:          "8",
		Name:        "Wine",
		Description: "A selection of fine wines from our cellar, perfect to pair with your meal.",
		Price:       "$9.99",
		Category:    CategoryDrinks,
		ImageRef:    "images/wine.png",
	},
}
