package menu

import "github.com/janisto/little-lemon/internal/platform/pagination"

// MenuListInput defines query parameters for filtering the menu.
type MenuListInput struct {
	pagination.Params
	Category string `query:"category" doc:"Selected category; All disables the category filter" default:"Starters" enum:"All,Starters,Mains,Desserts,Drinks"`
	Search   string `query:"search"   doc:"Case-insensitive text matched against name and description" maxLength:"100" example:"lemon"`
}

// MenuGetInput identifies a single item.
type MenuGetInput struct {
	ID string `path:"id" doc:"Menu item ID" maxLength:"64" example:"4"`
}
