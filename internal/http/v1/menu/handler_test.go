package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/little-lemon/internal/platform/logging"
	appmiddleware "github.com/janisto/little-lemon/internal/platform/middleware"
	"github.com/janisto/little-lemon/internal/platform/pagination"
	"github.com/janisto/little-lemon/internal/platform/respond"
	menusvc "github.com/janisto/little-lemon/internal/service/menu"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("MenuTest", "test"))
	Register(api, menusvc.DefaultCatalog(), "")
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "menu-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) ListData {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var data ListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return data
}

func itemNames(items []MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestListDefaultsToStarters(t *testing.T) {
	data := decodeList(t, get(t, newTestRouter(), "/menu"))

	if data.Total != 2 {
		t.Fatalf("expected 2 starters, got %d", data.Total)
	}
	for _, item := range data.Items {
		if item.Category != menusvc.CategoryStarters {
			t.Fatalf("expected only starters, got %+v", item)
		}
	}
}

func TestListScenarios(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"mains", "category=Mains", []string{"Grilled Fish", "Pasta"}},
		{"all lemon", "category=All&search=lemon", []string{"Lemon Dessert", "Lemonade"}},
		{"all uppercase lemon", "category=All&search=LEMON", []string{"Lemon Dessert", "Lemonade"}},
		{"drinks fish", "category=Drinks&search=fish", []string{}},
	}
	router := newTestRouter()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := decodeList(t, get(t, router, "/menu?"+tc.query))
			got := itemNames(data.Items)
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if data.Total != len(tc.want) {
				t.Fatalf("expected total %d, got %d", len(tc.want), data.Total)
			}
		})
	}
}

func TestListEmptyResultIsArray(t *testing.T) {
	resp := get(t, newTestRouter(), "/menu?category=Drinks&search=fish")
	if !strings.Contains(resp.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", resp.Body.String())
	}
}

func TestListAllReturnsCatalogInOrder(t *testing.T) {
	data := decodeList(t, get(t, newTestRouter(), "/menu?category=All"))
	catalog := menusvc.DefaultCatalog().Items()
	if data.Total != len(catalog) {
		t.Fatalf("expected %d items, got %d", len(catalog), data.Total)
	}
	for i, item := range data.Items {
		if item.ID != catalog[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, catalog[i].ID, item.ID)
		}
	}
}

func TestListRejectsUnknownCategory(t *testing.T) {
	resp := get(t, newTestRouter(), "/menu?category=Kids")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestListRejectsLongSearch(t *testing.T) {
	resp := get(t, newTestRouter(), "/menu?search="+strings.Repeat("a", 101))
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestListPagination(t *testing.T) {
	router := newTestRouter()

	first := get(t, router, "/menu?category=All&limit=3")
	data := decodeList(t, first)
	if len(data.Items) != 3 || data.Total != 8 {
		t.Fatalf("expected 3 of 8 items, got %d of %d", len(data.Items), data.Total)
	}
	link := first.Header().Get("Link")
	if !strings.Contains(link, `rel="next"`) || strings.Contains(link, `rel="prev"`) {
		t.Fatalf("unexpected Link header %q", link)
	}
	if !strings.Contains(link, "category=All") {
		t.Fatalf("Link header should keep the filter, got %q", link)
	}

	next := pagination.Cursor{Kind: cursorType, After: data.Items[2].ID}.Encode()
	second := decodeList(t, get(t, router, "/menu?category=All&limit=3&cursor="+url.QueryEscape(next)))
	if second.Items[0].ID != "4" {
		t.Fatalf("expected second page to start at 4, got %s", second.Items[0].ID)
	}
}

func TestListInvalidCursors(t *testing.T) {
	router := newTestRouter()
	tests := map[string]string{
		"garbage":       "!!!",
		"wrong type":    pagination.Cursor{Kind: "item", After: "1"}.Encode(),
		"filtered away": pagination.Cursor{Kind: cursorType, After: "7"}.Encode(),
	}
	for name, cursor := range tests {
		t.Run(name, func(t *testing.T) {
			resp := get(t, router, "/menu?category=Mains&cursor="+url.QueryEscape(cursor))
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
	}
}

func TestListCBOR(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/menu?category=Drinks", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %q", ct)
	}
	var data ListData
	if err := cbor.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if got := itemNames(data.Items); strings.Join(got, ",") != "Lemonade,Wine" {
		t.Fatalf("unexpected drinks %v", got)
	}
}

func TestCategories(t *testing.T) {
	resp := get(t, newTestRouter(), "/menu/categories")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var data CategoriesData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if strings.Join(data.Categories, ",") != "All,Starters,Mains,Desserts,Drinks" {
		t.Fatalf("unexpected categories %v", data.Categories)
	}
	if data.Default != "Starters" {
		t.Fatalf("expected default Starters, got %s", data.Default)
	}
}

func TestGetItem(t *testing.T) {
	router := newTestRouter()

	resp := get(t, router, "/menu/3")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var item MenuItem
	if err := json.Unmarshal(resp.Body.Bytes(), &item); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if item.Name != "Grilled Fish" || item.Image != "images/grilled-fish.png" {
		t.Fatalf("unexpected item %+v", item)
	}

	if resp := get(t, router, "/menu/99"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
