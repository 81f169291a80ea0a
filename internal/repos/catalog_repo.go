package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"shopmate/internal/domain"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Get(id string) (domain.CatalogItem, error) {
	var it domain.CatalogItem
	err := r.db.Get(&it, `
	  SELECT id, name, category, price,
	         COALESCE(brand,'') AS brand, COALESCE(size,'') AS size, COALESCE(units,'') AS units, tags
	  FROM catalog
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CatalogItem{}, domain.ErrItemNotFound
	}
	return it, err
}

// Search matches the query against a name substring or an exact tag,
// case-insensitively. Results keep insertion (rowid) order. An empty
// result is not an error.
func (r *CatalogRepo) Search(query, category string, limit int) ([]domain.CatalogItem, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	where := `(LOWER(name) LIKE ? OR (',' || tags || ',') LIKE ?)`
	args := []any{"%" + q + "%", "%," + q + ",%"}
	if category != "" {
		where += ` AND LOWER(category) = ?`
		args = append(args, strings.ToLower(category))
	}
	args = append(args, limit)

	out := []domain.CatalogItem{}
	err := r.db.Select(&out, `
	  SELECT id, name, category, price,
	         COALESCE(brand,'') AS brand, COALESCE(size,'') AS size, COALESCE(units,'') AS units, tags
	  FROM catalog
	  WHERE `+where+`
	  ORDER BY rowid
	  LIMIT ?
	`, args...)
	return out, err
}
