package services

import (
	"math"

	"shopmate/internal/domain"
	"shopmate/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Items *repos.CatalogRepo
}

func NewCartService(carts *repos.CartRepo, items *repos.CatalogRepo) *CartService {
	return &CartService{Carts: carts, Items: items}
}

type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

// round2 keeps totals at currency precision.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Add resolves the item against the catalog, then merges into the cart:
// an existing line for the same item gains quantity, it never duplicates.
// Returns the post-merge line and the new cart total.
func (s *CartService) Add(sessionID, itemID string, qty int, notes string) (domain.CartLine, float64, error) {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.CartLine{}, 0, err
	}
	item, err := s.Items.Get(itemID)
	if err != nil {
		return domain.CartLine{}, 0, err
	}
	line := domain.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Qty:       qty,
		Notes:     notes,
	}
	if err := s.Carts.UpsertLine(cartID, line); err != nil {
		return domain.CartLine{}, 0, err
	}
	merged, err := s.Carts.Line(cartID, item.ID)
	if err != nil {
		return domain.CartLine{}, 0, err
	}
	total, err := s.total(cartID)
	return merged, total, err
}

func (s *CartService) Remove(sessionID, itemID string) (float64, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return 0, err
	}
	if err := s.Carts.Remove(cartID, itemID); err != nil {
		return 0, err
	}
	return s.total(cartID)
}

// SetQuantity sets a line's quantity directly; a quantity below one
// behaves exactly like Remove. It never adds a missing item.
func (s *CartService) SetQuantity(sessionID, itemID string, qty int) (float64, error) {
	if qty < 1 {
		return s.Remove(sessionID, itemID)
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return 0, err
	}
	if err := s.Carts.SetQty(cartID, itemID, qty); err != nil {
		return 0, err
	}
	return s.total(cartID)
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Lines: lines, Total: sumLines(lines)}, nil
}

// AddRecipe applies the fixed recipe mapping with Add semantics, one of
// each ingredient. Unknown names are a soft miss (found=false), and
// ingredients absent from the catalog are skipped, not fatal.
func (s *CartService) AddRecipe(sessionID, name string) (added []domain.CartLine, total float64, found bool, err error) {
	itemIDs, ok := LookupRecipe(name)
	if !ok {
		return nil, 0, false, nil
	}
	for _, id := range itemIDs {
		line, t, aerr := s.Add(sessionID, id, 1, "")
		if aerr != nil {
			if aerr == domain.ErrItemNotFound {
				continue
			}
			return nil, 0, true, aerr
		}
		added = append(added, line)
		total = t
	}
	return added, total, true, nil
}

func (s *CartService) total(cartID string) (float64, error) {
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return 0, err
	}
	return sumLines(lines), nil
}

func sumLines(lines []domain.CartLine) float64 {
	t := 0.0
	for _, l := range lines {
		t += l.UnitPrice * float64(l.Qty)
	}
	return round2(t)
}
