package services

import (
	"time"

	"github.com/google/uuid"

	"shopmate/internal/domain"
	applog "shopmate/internal/log"
	"shopmate/internal/report"
	"shopmate/internal/repos"
)

type OrderService struct {
	Carts    *repos.CartRepo
	Orders   *repos.OrderRepo
	Summary  *report.SummaryWriter
	Progress *Progression
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, summary *report.SummaryWriter, progress *Progression) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, Summary: summary, Progress: progress}
}

// Place checks out the session's cart: freezes the total, snapshots every
// line, writes the order durably (clearing the cart in the same
// transaction), then kicks off background fulfillment. The returned order
// is queryable the moment this succeeds.
func (s *OrderService) Place(sessionID, customerName, address string) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	o := domain.Order{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Customer:  customerName,
		Address:   address,
		Total:     sumLines(lines),
		Status:    domain.StatusReceived,
		Lines:     make([]domain.OrderLine, 0, len(lines)),
	}
	for _, l := range lines {
		o.Lines = append(o.Lines, domain.OrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Qty:       l.Qty,
			Notes:     l.Notes,
		})
	}

	if err := s.Orders.Create(o, cartID); err != nil {
		return domain.Order{}, err
	}

	// The summary artifact is best-effort; the order is already durable.
	if s.Summary != nil {
		if err := s.Summary.Append(report.Summary{
			OrderID: o.ID, Customer: o.Customer, Total: o.Total, Timestamp: now,
		}); err != nil {
			applog.Error(nil, "order.summary.fail", err, map[string]any{"order_id": o.ID})
		}
	}

	if s.Progress != nil {
		s.Progress.Spawn(o.ID)
	}

	return o, nil
}

func (s *OrderService) Get(orderID string) (domain.Order, error) {
	return s.Orders.Get(orderID)
}

func (s *OrderService) Cancel(orderID string) error {
	return s.Orders.Cancel(orderID)
}
