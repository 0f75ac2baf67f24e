package pagination

// DefaultLimit is the page size used when a request does not set one.
const DefaultLimit = 20

// Params embeds into Huma input structs for pagination.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque cursor taken from a Link header"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                  default:"20" minimum:"1" maximum:"100"`
}

// PageSize returns Limit, or DefaultLimit when unset.
func (p Params) PageSize() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}
