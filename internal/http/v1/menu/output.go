package menu

// ListData is the response body containing the filtered page of the menu.
type ListData struct {
	Items []MenuItem `json:"items" doc:"Items matching the filter, in catalog order"`
	Total int        `json:"total" doc:"Total count of items matching the filter" example:"2"`
}

// MenuListOutput is the response wrapper with pagination Link header.
type MenuListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// CategoriesData lists the selector set.
type CategoriesData struct {
	Categories []string `json:"categories" doc:"Selector values in display order" example:"[\"All\",\"Starters\",\"Mains\",\"Desserts\",\"Drinks\"]"`
	Default    string   `json:"default"    doc:"Category selected when the menu first opens" example:"Starters"`
}

// CategoriesOutput wraps CategoriesData.
type CategoriesOutput struct {
	Body CategoriesData
}

// MenuGetOutput wraps a single item.
type MenuGetOutput struct {
	Body MenuItem
}
