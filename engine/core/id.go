package core

import (
	"fmt"
	"strconv"
)

// ID identifies a stored entity. Values are assigned by the repository and
// are opaque to callers; zero means "not yet stored".
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsZero reports whether the ID has been assigned.
func (id ID) IsZero() bool { return id == 0 }

// ParseID parses a path or query parameter into an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(n), nil
}
