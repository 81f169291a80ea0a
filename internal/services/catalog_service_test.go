package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/domain"
	"shopmate/internal/repos"
	"shopmate/internal/services"
)

func TestSearchByTag(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCatalogRepo(db))

	items, err := svc.Search("coffee", "", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "coffee-beans", items[0].ID)
}

func TestSearchByNameSubstring(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCatalogRepo(db))

	items, err := svc.Search("milk", "", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Insertion order is the tie-break.
	assert.Equal(t, "whole-milk", items[0].ID)
	assert.Equal(t, "oat-milk", items[1].ID)
}

func TestSearchCategoryFilter(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCatalogRepo(db))

	items, err := svc.Search("milk", "Dairy", 10)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.Search("milk", "bakery", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchNoMatchIsEmptyNotError(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCatalogRepo(db))

	items, err := svc.Search("nonexistent", "", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetCaseInsensitive(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCatalogRepo(db))

	it, err := svc.Get("WHOLE-MILK")
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", it.Name)

	_, err = svc.Get("no-such-item")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSearchLimitClamp(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCatalogRepo(db))

	// 'a' hits most seeded names; limit 2 must truncate.
	items, err := svc.Search("a", "", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
