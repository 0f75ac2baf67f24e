package menu

import menusvc "github.com/janisto/little-lemon/internal/service/menu"

// MenuItem is the wire representation of a catalog entry.
type MenuItem struct {
	ID          string `json:"id"          doc:"Stable item identifier"        example:"3"`
	Name        string `json:"name"        doc:"Dish name"                     example:"Grilled Fish"`
	Description string `json:"description" doc:"Short description"             example:"Fresh fish, grilled to perfection."`
	Price       string `json:"price"       doc:"Display price"                 example:"$18.99"`
	Category    string `json:"category"    doc:"Menu category"                 example:"Mains"`
	Image       string `json:"image"       doc:"Opaque image reference"        example:"images/grilled-fish.png"`
}

func toHTTPItem(item menusvc.Item) MenuItem {
	return MenuItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.ImageRef,
	}
}
