package listings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/pagination"
)

// Reserved query keys never become filters.
var reservedKeys = map[string]struct{}{
	"select":   {},
	"sort":     {},
	"page":     {},
	"limit":    {},
	"search":   {},
	"location": {},
}

// filterableColumns maps public field names to SQL columns and value kinds.
// Anything outside this table is rejected, so arbitrary identifiers can
// never reach the SQL layer.
var filterableColumns = map[string]fieldSpec{
	"name":       {column: "name", kind: kindString},
	"location":   {column: "location", kind: kindString},
	"price":      {column: "price", kind: kindNumber},
	"rating":     {column: "rating", kind: kindNumber},
	"category":   {column: "category_id", kind: kindUUID},
	"isFeatured": {column: "is_featured", kind: kindBool},
	"isVerified": {column: "is_verified", kind: kindBool},
	"createdAt":  {column: "created_at", kind: kindTime},
}

var sortableColumns = map[string]string{
	"name":      "name",
	"location":  "location",
	"price":     "price",
	"rating":    "rating",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// selectableFields are the DTO field names a client may project.
var selectableFields = map[string]struct{}{
	"id": {}, "name": {}, "category": {}, "location": {}, "price": {},
	"rating": {}, "description": {}, "images": {}, "amenities": {},
	"tags": {}, "owner": {}, "attributes": {}, "features": {}, "hours": {},
	"website": {}, "contactEmail": {}, "contactPhone": {}, "isVerified": {},
	"isFeatured": {}, "addedBy": {}, "createdAt": {}, "updatedAt": {},
}

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindBool
	kindUUID
	kindTime
)

type fieldSpec struct {
	column string
	kind   valueKind
}

var operatorSQL = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// Filter is a single translated predicate.
type Filter struct {
	Column string
	Op     string // one of = > >= < <= IN
	Value  any    // []any when Op is IN
}

// SortField is one ordering term; '-' prefixed input means descending.
type SortField struct {
	Column string
	Desc   bool
}

// ListQuery is the fully translated browse request.
type ListQuery struct {
	Filters  []Filter
	Search   string
	Location string
	Sort     []SortField
	Select   []string
	Page     int
	Limit    int
}

// ParseListQuery translates the raw URL query into a ListQuery:
// reserved keys are stripped, remaining keys become whitelisted filters
// (with optional [gt|gte|lt|lte|in] suffix operators), then search,
// location, select, sort and pagination are read from the reserved keys.
func ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{
		Search:   strings.TrimSpace(values.Get("search")),
		Location: strings.TrimSpace(values.Get("location")),
		Page:     pagination.DefaultPage,
		Limit:    pagination.DefaultLimit,
	}

	for key := range values {
		base, op := splitOperator(key)
		if _, reserved := reservedKeys[base]; reserved && op == "" {
			continue
		}

		spec, ok := filterableColumns[base]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cannot filter on field %q", base))
		}

		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			continue
		}

		filter, err := buildFilter(spec, base, op, raw)
		if err != nil {
			return nil, err
		}
		q.Filters = append(q.Filters, filter)
	}

	if err := parseSelect(values.Get("select"), q); err != nil {
		return nil, err
	}
	if err := parseSort(values.Get("sort"), q); err != nil {
		return nil, err
	}
	if err := parsePagination(values, q); err != nil {
		return nil, err
	}

	return q, nil
}

func splitOperator(key string) (string, string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func buildFilter(spec fieldSpec, field, op, raw string) (Filter, error) {
	switch op {
	case "":
		value, err := parseValue(spec.kind, field, raw)
		if err != nil {
			return Filter{}, err
		}
		return Filter{Column: spec.column, Op: "=", Value: value}, nil
	case "gt", "gte", "lt", "lte":
		value, err := parseValue(spec.kind, field, raw)
		if err != nil {
			return Filter{}, err
		}
		return Filter{Column: spec.column, Op: operatorSQL[op], Value: value}, nil
	case "in":
		parts := strings.Split(raw, ",")
		list := make([]any, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			value, err := parseValue(spec.kind, field, part)
			if err != nil {
				return Filter{}, err
			}
			list = append(list, value)
		}
		if len(list) == 0 {
			return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("empty in() list for field %q", field))
		}
		return Filter{Column: spec.column, Op: "IN", Value: list}, nil
	default:
		return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported operator %q on field %q", op, field))
	}
}

func parseValue(kind valueKind, field, raw string) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindNumber:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q requires a numeric value", field))
		}
		return value, nil
	case kindBool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q requires a boolean value", field))
		}
		return value, nil
	case kindUUID:
		value, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q requires a valid id", field))
		}
		return value, nil
	case kindTime:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if value, err := time.Parse(layout, raw); err == nil {
				return value, nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q requires an RFC3339 timestamp or date", field))
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q is not filterable", field))
}

func parseSelect(raw string, q *ListQuery) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, part := range strings.Split(raw, ",") {
		field := strings.TrimSpace(part)
		if field == "" {
			continue
		}
		if _, ok := selectableFields[field]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cannot select field %q", field))
		}
		q.Select = append(q.Select, field)
	}
	return nil
}

func parseSort(raw string, q *ListQuery) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		// Newest first is the contract default.
		q.Sort = []SortField{{Column: "created_at", Desc: true}}
		return nil
	}
	for _, part := range strings.Split(raw, ",") {
		field := strings.TrimSpace(part)
		if field == "" {
			continue
		}
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		column, ok := sortableColumns[field]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cannot sort on field %q", field))
		}
		q.Sort = append(q.Sort, SortField{Column: column, Desc: desc})
	}
	if len(q.Sort) == 0 {
		q.Sort = []SortField{{Column: "created_at", Desc: true}}
	}
	return nil
}

func parsePagination(values url.Values, q *ListQuery) error {
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "page must be numeric")
		}
		q.Page = pagination.NormalizePage(page)
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "limit must be numeric")
		}
		q.Limit = pagination.NormalizeLimit(limit)
	}
	return nil
}
