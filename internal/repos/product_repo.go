package repos

import (
	"fmt"

	"bathstore/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, category_id, name, description, price, discount_percentage, rating,
    stock_quantity, image_url, active,
    created_at, COALESCE(updated_at,'') AS updated_at`

// sortClause whitelists the user-facing sort keys. Anything else falls back
// to newest-first.
func sortClause(sort string) string {
	switch sort {
	case "price_asc":
		return `price ASC`
	case "price_desc":
		return `price DESC`
	case "name_asc":
		return `LOWER(name) ASC`
	case "name_desc":
		return `LOWER(name) DESC`
	}
	return `created_at DESC`
}

func (r *ProductRepo) List(sort string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE active = 1
  ORDER BY `+sortClause(sort)+`
  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *ProductRepo) ListByCategory(catID, sort string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE category_id = ? AND active = 1
  ORDER BY `+sortClause(sort)+`
  LIMIT ? OFFSET ?`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
  SELECT `+productCols+`
  FROM products
  WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Search(q, catID string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}

	sql := `
  SELECT ` + productCols + `
  FROM products
  WHERE ` + where + `
  ORDER BY created_at DESC
  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,name,description,price,discount_percentage,stock_quantity,image_url,active)
	  VALUES(?,?,?,?,?,?,?,?,1)`,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price.String(), p.DiscountPercentage, p.StockQuantity, p.ImageURL)
	return err
}

// Deactivate soft-deletes a product so quotation and order snapshots keep a
// valid reference.
func (r *ProductRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE products SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

func (r *ProductRepo) UpdatePrice(id string, price decimal.Decimal) error {
	_, err := r.db.Exec(`UPDATE products SET price=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, price.String(), id)
	return err
}

func (r *ProductRepo) UpsertStock(id string, qty int) error {
	_, err := r.db.Exec(`UPDATE products SET stock_quantity=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, qty, id)
	return err
}

func (r *ProductRepo) Qty(id string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT stock_quantity FROM products WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// DeductStock atomically subtracts "by" units if enough stock exists.
func (r *ProductRepo) DeductStock(id string, by int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET stock_quantity = stock_quantity - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock_quantity >= ?`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient stock for %s", id)
	}
	return nil
}
