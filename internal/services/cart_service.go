package services

import (
	"errors"

	"bathstore/internal/repos"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock = errors.New("product is out of stock")
	ErrBadQty     = errors.New("quantity must be at least 1")
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if !p.Active || !p.InStock() {
		return ErrOutOfStock
	}
	return s.Carts.Add(userID, productID, qty)
}

type CartView struct {
	Items    []repos.CartItemRow
	Subtotal decimal.Decimal
}

func (s *CartService) View(userID string) (CartView, error) {
	items, err := s.Carts.ListByUser(userID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return CartView{Items: items, Subtotal: total}, nil
}

// UpdateQty rejects values below 1 before touching the database.
func (s *CartService) UpdateQty(lineID, userID string, qty int) error {
	if qty < 1 {
		return ErrBadQty
	}
	return s.Carts.UpdateQty(lineID, userID, qty)
}

func (s *CartService) Remove(lineID, userID string) error {
	return s.Carts.Delete(lineID, userID)
}
