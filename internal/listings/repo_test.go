package listings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupListingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categoriesDDL := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL,
  description TEXT,
  icon TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	listingsDDL := `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL,
  location TEXT NOT NULL,
  price NUMERIC NOT NULL,
  rating REAL NOT NULL DEFAULT 4,
  description TEXT NOT NULL,
  images TEXT,
  amenities TEXT,
  tags TEXT,
  owner TEXT,
  attributes TEXT,
  features TEXT,
  hours TEXT,
  website TEXT,
  contact_email TEXT,
  contact_phone TEXT,
  is_verified INTEGER NOT NULL DEFAULT 0,
  is_featured INTEGER NOT NULL DEFAULT 0,
  added_by_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categoriesDDL).Error)
	require.NoError(t, db.Exec(listingsDDL).Error)
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:     uuid.New(),
		Name:   name,
		Slug:   name,
		Active: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedListing(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, price int64, createdAt time.Time, mutate func(*models.Listing)) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		ID:          uuid.New(),
		Name:        name,
		CategoryID:  categoryID,
		Location:    "Austin",
		Price:       decimal.NewFromInt(price),
		Rating:      4,
		Description: "a place",
		AddedByID:   uuid.New(),
		CreatedAt:   createdAt,
	}
	if mutate != nil {
		mutate(listing)
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func TestListCountMatchesPredicate(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, uuid.NewString())

	base := time.Now().UTC()
	seedListing(t, db, category.ID, "cheap-"+uuid.NewString(), 10, base, nil)
	seedListing(t, db, category.ID, "mid-"+uuid.NewString(), 50, base.Add(time.Second), nil)
	seedListing(t, db, category.ID, "pricey-"+uuid.NewString(), 200, base.Add(2*time.Second), nil)

	q := &ListQuery{
		Filters: []Filter{
			{Column: "category_id", Op: "=", Value: category.ID},
			{Column: "price", Op: ">", Value: float64(20)},
		},
		Sort:  []SortField{{Column: "price", Desc: false}},
		Page:  1,
		Limit: 1,
	}

	rows, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "count reflects the filtered set, not the page")
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Price.Equal(decimal.NewFromInt(50)), "ascending price sort")

	// A page past the end still reports the same total.
	q.Page = 5
	rows, total, err = repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Empty(t, rows)
}

func TestListInFilter(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, uuid.NewString())

	now := time.Now().UTC()
	a := seedListing(t, db, category.ID, "alpha-"+uuid.NewString(), 10, now, nil)
	seedListing(t, db, category.ID, "beta-"+uuid.NewString(), 20, now, nil)

	q := &ListQuery{
		Filters: []Filter{{Column: "name", Op: "IN", Value: []any{a.Name, "missing"}}},
		Sort:    []SortField{{Column: "created_at", Desc: true}},
		Page:    1,
		Limit:   10,
	}
	rows, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, uuid.NewString())

	now := time.Now().UTC()
	needle := "XyzzyRoasters" + uuid.NewString()[:8]
	seedListing(t, db, category.ID, needle, 10, now, nil)
	seedListing(t, db, category.ID, "other-"+uuid.NewString(), 10, now, nil)

	q := &ListQuery{
		Search: needle[:5],
		Sort:   []SortField{{Column: "created_at", Desc: true}},
		Page:   1,
		Limit:  10,
	}
	rows, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, needle, rows[0].Name)
}

func TestListPreloadsCategory(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, uuid.NewString())
	seedListing(t, db, category.ID, "with-cat-"+uuid.NewString(), 10, time.Now().UTC(), nil)

	q := &ListQuery{
		Filters: []Filter{{Column: "category_id", Op: "=", Value: category.ID}},
		Sort:    []SortField{{Column: "created_at", Desc: true}},
		Page:    1,
		Limit:   10,
	}
	rows, _, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, category.Name, rows[0].Category.Name)
}

func TestListFeaturedCapAndOrder(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, uuid.NewString())

	base := time.Now().UTC().Add(time.Hour)
	featured := func(l *models.Listing) { l.IsFeatured = true }
	for i := 0; i < featuredCap+2; i++ {
		seedListing(t, db, category.ID, "feat-"+uuid.NewString(), 10, base.Add(time.Duration(i)*time.Second), featured)
	}
	newest := seedListing(t, db, category.ID, "newest-feat-"+uuid.NewString(), 10, base.Add(time.Hour), featured)
	seedListing(t, db, category.ID, "plain-"+uuid.NewString(), 10, base.Add(2*time.Hour), nil)

	rows, err := repo.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, featuredCap)
	assert.Equal(t, newest.ID, rows[0].ID, "newest featured listing comes first")
	for _, row := range rows {
		assert.True(t, row.IsFeatured)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
