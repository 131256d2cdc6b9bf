package repos

import (
	"bathstore/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
  FROM categories
  ORDER BY name
`)
	return out, err
}

func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
  FROM categories WHERE LOWER(name)=LOWER(?)`, name)
	return c, err
}

func (r *CategoryRepo) Create(name string) (domain.Category, error) {
	c := domain.Category{ID: uuid.NewString(), Name: name}
	_, err := r.db.Exec(`INSERT INTO categories(id,name) VALUES(?,?)`, c.ID, c.Name)
	return c, err
}

// ResolveOrCreate looks a category up by name, creating it when absent.
func (r *CategoryRepo) ResolveOrCreate(name string) (domain.Category, error) {
	if c, err := r.ByName(name); err == nil {
		return c, nil
	} else if !IsNotFound(err) {
		return domain.Category{}, err
	}
	return r.Create(name)
}
