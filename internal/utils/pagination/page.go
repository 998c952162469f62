package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
)

// SortDirection orders a paginated query.
type SortDirection string

const (
	Asc  SortDirection = "ASC"
	Desc SortDirection = "DESC"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// PageRequest carries page index, page size and sort order to repositories.
type PageRequest struct {
	Page      int           // zero-based
	Size      int           // > 0
	SortField string        // entity specific, validated against a whitelist
	Direction SortDirection // ASC or DESC
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is a slice of results plus the paging metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPage builds a Page and derives TotalPages.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[R]{
		Items:      out,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// SortSpec describes the sort fields an entity accepts and its default order.
type SortSpec struct {
	Allowed          []string
	DefaultField     string
	DefaultDirection SortDirection
}

func (s SortSpec) allows(field string) bool {
	for _, f := range s.Allowed {
		if f == field {
			return true
		}
	}
	return false
}

// Limits bounds the page size accepted from clients.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits are used when the caller does not configure any.
var DefaultLimits = Limits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}

// ParsePageRequest validates raw query values. Empty values fall back to defaults;
// anything malformed yields apperrors.ErrValidation.
func ParsePageRequest(page, size, sortField, direction string, spec SortSpec, limits Limits) (PageRequest, error) {
	if limits.DefaultSize <= 0 {
		limits = DefaultLimits
	}
	req := PageRequest{
		Page:      0,
		Size:      limits.DefaultSize,
		SortField: spec.DefaultField,
		Direction: spec.DefaultDirection,
	}
	if req.Direction == "" {
		req.Direction = Asc
	}

	if page = strings.TrimSpace(page); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return PageRequest{}, apperrors.Validation("page must be a non-negative integer, got %q", page)
		}
		req.Page = n
	}

	if size = strings.TrimSpace(size); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			return PageRequest{}, apperrors.Validation("size must be a positive integer, got %q", size)
		}
		if limits.MaxSize > 0 && n > limits.MaxSize {
			return PageRequest{}, apperrors.Validation("size must not exceed %d", limits.MaxSize)
		}
		req.Size = n
	}

	if req.Page > math.MaxInt/req.Size {
		return PageRequest{}, apperrors.Validation("page %d is out of range for size %d", req.Page, req.Size)
	}

	if sortField = strings.TrimSpace(sortField); sortField != "" {
		if !spec.allows(sortField) {
			return PageRequest{}, apperrors.Validation("cannot sort by %q, allowed fields: %s", sortField, strings.Join(spec.Allowed, ", "))
		}
		req.SortField = sortField
	}

	if direction = strings.TrimSpace(direction); direction != "" {
		switch SortDirection(strings.ToUpper(direction)) {
		case Asc:
			req.Direction = Asc
		case Desc:
			req.Direction = Desc
		default:
			return PageRequest{}, apperrors.Validation("direction must be ASC or DESC, got %q", direction)
		}
	}

	return req, nil
}

// Normalize fills defaults for a request built in code rather than parsed from a query.
func (p PageRequest) Normalize(spec SortSpec) PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.SortField == "" || !spec.allows(p.SortField) {
		p.SortField = spec.DefaultField
	}
	if p.Direction != Asc && p.Direction != Desc {
		p.Direction = spec.DefaultDirection
		if p.Direction == "" {
			p.Direction = Asc
		}
	}
	return p
}
