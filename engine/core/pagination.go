package core

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// PageQuery is the offset/limit pagination contract shared by all list
// operations.
type PageQuery struct {
	Offset int
	Limit  int
}

// Normalize clamps the query to sane bounds and applies the default page
// size when none was requested.
func (p PageQuery) Normalize() PageQuery {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}
