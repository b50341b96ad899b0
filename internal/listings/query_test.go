package listings

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/pagination"
)

func mustParse(t *testing.T, rawQuery string) *ListQuery {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parse query string: %v", err)
	}
	q, err := ParseListQuery(values)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	return q
}

func expectValidation(t *testing.T, rawQuery string) {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parse query string: %v", err)
	}
	_, err = ParseListQuery(values)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for %q, got %v", rawQuery, err)
	}
}

func TestParseDefaults(t *testing.T) {
	q := mustParse(t, "")
	if q.Page != pagination.DefaultPage || q.Limit != pagination.DefaultLimit {
		t.Fatalf("default pagination = %d/%d", q.Page, q.Limit)
	}
	if len(q.Sort) != 1 || q.Sort[0].Column != "created_at" || !q.Sort[0].Desc {
		t.Fatalf("default sort should be created_at DESC, got %+v", q.Sort)
	}
	if len(q.Filters) != 0 || len(q.Select) != 0 {
		t.Fatalf("empty query should produce no filters or projection")
	}
}

func TestParseEqualityFilter(t *testing.T) {
	q := mustParse(t, "name=Blue+Bottle")
	if len(q.Filters) != 1 {
		t.Fatalf("filters = %+v", q.Filters)
	}
	f := q.Filters[0]
	if f.Column != "name" || f.Op != "=" || f.Value != "Blue Bottle" {
		t.Fatalf("unexpected filter %+v", f)
	}
}

func TestParseComparisonOperators(t *testing.T) {
	tests := []struct {
		raw    string
		column string
		op     string
		value  float64
	}{
		{"price[gt]=100", "price", ">", 100},
		{"price[gte]=100.5", "price", ">=", 100.5},
		{"rating[lt]=3", "rating", "<", 3},
		{"rating[lte]=4.5", "rating", "<=", 4.5},
	}
	for _, tt := range tests {
		q := mustParse(t, tt.raw)
		if len(q.Filters) != 1 {
			t.Fatalf("%q: filters = %+v", tt.raw, q.Filters)
		}
		f := q.Filters[0]
		if f.Column != tt.column || f.Op != tt.op || f.Value != tt.value {
			t.Fatalf("%q: unexpected filter %+v", tt.raw, f)
		}
	}
}

func TestParseInOperator(t *testing.T) {
	q := mustParse(t, "name[in]=cafe,bar,+,pub")
	f := q.Filters[0]
	if f.Op != "IN" {
		t.Fatalf("op = %s", f.Op)
	}
	list, ok := f.Value.([]any)
	if !ok || len(list) != 3 {
		t.Fatalf("blank entries should be dropped, got %+v", f.Value)
	}
}

func TestParseInOperatorEmptyList(t *testing.T) {
	expectValidation(t, "name[in]=,+,")
}

func TestParseUnknownFilterField(t *testing.T) {
	expectValidation(t, "passwordHash=x")
	expectValidation(t, "drop_table=1")
}

func TestParseUnknownOperator(t *testing.T) {
	expectValidation(t, "price[between]=1")
}

func TestParseTypedValues(t *testing.T) {
	id := uuid.New()
	q := mustParse(t, "category="+id.String()+"&isFeatured=true")
	if len(q.Filters) != 2 {
		t.Fatalf("filters = %+v", q.Filters)
	}
	for _, f := range q.Filters {
		switch f.Column {
		case "category_id":
			if f.Value != id {
				t.Fatalf("category value = %v", f.Value)
			}
		case "is_featured":
			if f.Value != true {
				t.Fatalf("isFeatured value = %v", f.Value)
			}
		default:
			t.Fatalf("unexpected column %s", f.Column)
		}
	}
}

func TestParseTypedValueErrors(t *testing.T) {
	expectValidation(t, "price=cheap")
	expectValidation(t, "isVerified=maybe")
	expectValidation(t, "category=not-a-uuid")
	expectValidation(t, "createdAt=yesterday")
}

func TestParseCreatedAtAcceptsDateAndTimestamp(t *testing.T) {
	mustParse(t, "createdAt[gte]=2024-01-02")
	mustParse(t, "createdAt[lt]=2024-01-02T15:04:05Z")
}

// A bare location is the substring search shortcut; location[op] is a
// regular typed filter.
func TestParseLocationDualRole(t *testing.T) {
	q := mustParse(t, "location=austin")
	if q.Location != "austin" || len(q.Filters) != 0 {
		t.Fatalf("bare location should not become a filter: %+v", q)
	}

	q = mustParse(t, "location[in]=austin,dallas")
	if q.Location != "" {
		t.Fatalf("suffixed key should not set the search shortcut: %q", q.Location)
	}
	if len(q.Filters) != 1 || q.Filters[0].Op != "IN" {
		t.Fatalf("suffixed location should become a filter: %+v", q.Filters)
	}
}

func TestParseSearch(t *testing.T) {
	q := mustParse(t, "search=coffee")
	if q.Search != "coffee" {
		t.Fatalf("search = %q", q.Search)
	}
}

func TestParseSort(t *testing.T) {
	q := mustParse(t, "sort=-price,name")
	if len(q.Sort) != 2 {
		t.Fatalf("sort = %+v", q.Sort)
	}
	if q.Sort[0].Column != "price" || !q.Sort[0].Desc {
		t.Fatalf("first sort = %+v", q.Sort[0])
	}
	if q.Sort[1].Column != "name" || q.Sort[1].Desc {
		t.Fatalf("second sort = %+v", q.Sort[1])
	}
}

func TestParseSortUnknownField(t *testing.T) {
	expectValidation(t, "sort=passwordHash")
}

func TestParseSelect(t *testing.T) {
	q := mustParse(t, "select=name,price,rating")
	if len(q.Select) != 3 {
		t.Fatalf("select = %+v", q.Select)
	}
}

func TestParseSelectUnknownField(t *testing.T) {
	expectValidation(t, "select=name,passwordHash")
}

func TestParsePagination(t *testing.T) {
	q := mustParse(t, "page=3&limit=25")
	if q.Page != 3 || q.Limit != 25 {
		t.Fatalf("pagination = %d/%d", q.Page, q.Limit)
	}

	q = mustParse(t, "page=0&limit=1000")
	if q.Page != pagination.DefaultPage {
		t.Fatalf("page should clamp to default, got %d", q.Page)
	}
	if q.Limit != pagination.MaxLimit {
		t.Fatalf("limit should clamp to max, got %d", q.Limit)
	}
}

func TestParsePaginationNonNumeric(t *testing.T) {
	expectValidation(t, "page=one")
	expectValidation(t, "limit=ten")
}
