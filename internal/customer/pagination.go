package customer

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	DefaultMaxSize  = 100
)

type PaginationConfig struct {
	DefaultSize int `json:"default_size"`
	MaxSize     int `json:"max_size"`
}

// PaginationParameters selects a window of customers: Page is 1-based,
// Size is the page length.
type PaginationParameters struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Normalize clamps p into a valid window.
func (p PaginationParameters) Normalize(cfg PaginationConfig) PaginationParameters {
	defaultSize := cfg.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	defaultSize = min(defaultSize, maxSize)

	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Size < 1:
		p.Size = defaultSize
	case p.Size > maxSize:
		p.Size = maxSize
	}
	// keep Size*(Page-1) within int
	if maxPage := math.MaxInt/p.Size + 1; p.Page > maxPage {
		p.Page = maxPage
	}

	return p
}

func (p PaginationParameters) Offset() int {
	return p.Size * (p.Page - 1)
}

// ParsePagination reads page and size from query values. ok is false when
// neither is present.
func ParsePagination(q url.Values) (p PaginationParameters, ok bool, err error) {
	if !q.Has("page") && !q.Has("size") {
		return p, false, nil
	}

	if v := q.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil {
			return p, true, fmt.Errorf("invalid page %q", v)
		}
	}
	if v := q.Get("size"); v != "" {
		if p.Size, err = strconv.Atoi(v); err != nil {
			return p, true, fmt.Errorf("invalid size %q", v)
		}
	}

	return p, true, nil
}
