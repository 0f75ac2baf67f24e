package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Page is one window over a listing.
type Page[T any] struct {
	Items []T
	Total int
	Next  string
	Prev  string
	Link  string
}

// Pager slices listings of T into pages keyed by Key. Path and Query build
// the RFC 8288 Link header so followers keep the same filter.
type Pager[T any] struct {
	Kind  string
	Limit int
	Key   func(T) string
	Path  string
	Query url.Values
}

// Slice returns the page that follows c.
func (p Pager[T]) Slice(items []T, c Cursor) (Page[T], error) {
	start, err := p.offset(items, c)
	if err != nil {
		return Page[T]{}, err
	}
	limit := max(p.Limit, 1)
	end := min(start+limit, len(items))

	page := Page[T]{Items: items[start:end], Total: len(items)}
	if end < len(items) {
		page.Next = Cursor{Kind: p.Kind, After: p.Key(items[end-1])}.Encode()
	}
	if start > 0 {
		prev := Cursor{Kind: p.Kind}
		if start > limit {
			prev.After = p.Key(items[start-limit-1])
		}
		page.Prev = prev.Encode()
	}
	page.Link = p.link(limit, page.Next, page.Prev)
	return page, nil
}

func (p Pager[T]) offset(items []T, c Cursor) (int, error) {
	if c.Kind != p.Kind {
		return 0, ErrCursorKind
	}
	if c.After == "" {
		return 0, nil
	}
	for i, item := range items {
		if p.Key(item) == c.After {
			return i + 1, nil
		}
	}
	return 0, ErrCursorPosition
}

func (p Pager[T]) link(limit int, next, prev string) string {
	var links []string
	for _, rel := range []struct{ name, cursor string }{{"next", next}, {"prev", prev}} {
		if rel.cursor == "" {
			continue
		}
		q := url.Values{}
		for k, v := range p.Query {
			q[k] = append([]string(nil), v...)
		}
		q.Set("limit", strconv.Itoa(limit))
		q.Set("cursor", rel.cursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", p.Path, q.Encode(), rel.name))
	}
	return strings.Join(links, ", ")
}
