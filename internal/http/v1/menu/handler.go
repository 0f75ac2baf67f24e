package menu

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/little-lemon/internal/platform/pagination"
	menusvc "github.com/janisto/little-lemon/internal/service/menu"
)

const cursorType = "menu-item"

// Register wires menu routes into the provided API router.
func Register(api huma.API, catalog *menusvc.Catalog, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-menu",
		Method:      http.MethodGet,
		Path:        "/menu",
		Summary:     "Filter the menu",
		Description: "Returns catalog items in the selected category whose name or description contains the search text. " +
			"An empty search matches everything. Use the cursor from the Link header to page through results.",
		Tags: []string{"Menu"},
	}, func(_ context.Context, input *MenuListInput) (*MenuListOutput, error) {
		cursor, err := pagination.ParseCursor(input.Cursor, cursorType)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		query := url.Values{}
		query.Set("category", input.Category)
		if input.Search != "" {
			query.Set("search", input.Search)
		}

		pager := pagination.Pager[menusvc.Item]{
			Kind:  cursorType,
			Limit: input.PageSize(),
			Key:   func(item menusvc.Item) string { return item.ID },
			Path:  prefix + "/menu",
			Query: query,
		}
		page, err := pager.Slice(catalog.Apply(menusvc.Criteria{
			ActiveCategory: input.Category,
			SearchText:     input.Search,
		}), cursor)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		items := make([]MenuItem, 0, len(page.Items))
		for _, item := range page.Items {
			items = append(items, toHTTPItem(item))
		}

		return &MenuListOutput{
			Link: page.Link,
			Body: ListData{
				Items: items,
				Total: page.Total,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-menu-categories",
		Method:      http.MethodGet,
		Path:        "/menu/categories",
		Summary:     "List menu categories",
		Description: "Returns the category selector set and the initially selected category.",
		Tags:        []string{"Menu"},
	}, func(_ context.Context, _ *struct{}) (*CategoriesOutput, error) {
		return &CategoriesOutput{
			Body: CategoriesData{
				Categories: menusvc.Categories(),
				Default:    menusvc.DefaultCriteria().ActiveCategory,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-menu-item",
		Method:      http.MethodGet,
		Path:        "/menu/{id}",
		Summary:     "Get a menu item",
		Tags:        []string{"Menu"},
	}, func(_ context.Context, input *MenuGetInput) (*MenuGetOutput, error) {
		item, err := catalog.Get(input.ID)
		if err != nil {
			if errors.Is(err, menusvc.ErrItemNotFound) {
				return nil, huma.Error404NotFound("menu item not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &MenuGetOutput{Body: toHTTPItem(item)}, nil
	})
}
