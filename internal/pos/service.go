package pos

import (
	"context"
	"fmt"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/catalog"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

// CatalogPort is the slice of the product catalog the POS needs.
type CatalogPort interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

// CartView is the response shape after every transition: current items
// plus freshly recomputed totals.
type CartView struct {
	SessionID string                 `json:"session_id"`
	Items     []CartLine             `json:"items"`
	Totals    pricing.DocumentTotals `json:"totals"`
}

// Service glues the catalog, the session store and the cart state
// machine. Stock rejections from the cart pass through unchanged so the
// handler can surface the reason verbatim.
type Service struct {
	catalog  CatalogPort
	sessions *SessionStore
}

func NewService(catalog CatalogPort, sessions *SessionStore) *Service {
	return &Service{catalog: catalog, sessions: sessions}
}

// StartSession opens an empty cart.
func (s *Service) StartSession(ctx context.Context) (CartView, error) {
	id, err := s.sessions.Create(ctx)
	if err != nil {
		return CartView{}, fmt.Errorf("start session: %w", err)
	}
	return view(id, NewCart()), nil
}

// GetCart returns the current cart state.
func (s *Service) GetCart(ctx context.Context, sessionID string) (CartView, error) {
	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return view(sessionID, cart), nil
}

// AddProduct looks the product up in the catalog and adds it to the
// cart, capturing price, tax rate and stock ceiling at this moment.
func (s *Service) AddProduct(ctx context.Context, sessionID string, productID int64) (CartView, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	return s.mutate(ctx, sessionID, func(cart *Cart) error {
		return cart.Add(*product)
	})
}

// IncrementLine raises a line quantity by one, subject to the stock
// ceiling.
func (s *Service) IncrementLine(ctx context.Context, sessionID string, productID int64) (CartView, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) error {
		return cart.Increment(productID)
	})
}

// DecrementLine lowers a line quantity by one, subject to the floor.
func (s *Service) DecrementLine(ctx context.Context, sessionID string, productID int64) (CartView, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) error {
		return cart.Decrement(productID)
	})
}

// RemoveLine deletes a line unconditionally.
func (s *Service) RemoveLine(ctx context.Context, sessionID string, productID int64) (CartView, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) error {
		cart.Remove(productID)
		return nil
	})
}

// ResetCart clears all lines but keeps the session alive for the next
// transaction.
func (s *Service) ResetCart(ctx context.Context, sessionID string) (CartView, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) error {
		cart.Reset()
		return nil
	})
}

// Submit renders the persistence payload for the cart and discards the
// session. Posting the payload to the persistence API is the caller's
// concern.
func (s *Service) Submit(ctx context.Context, sessionID string) (pricing.SubmissionPayload, error) {
	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return pricing.SubmissionPayload{}, err
	}
	payload := pricing.BuildSubmissionPayload(cart.LineItems())
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return pricing.SubmissionPayload{}, err
	}
	return payload, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(cart *Cart) error) (CartView, error) {
	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if err := fn(cart); err != nil {
		return CartView{}, err
	}
	if err := s.sessions.Save(ctx, sessionID, cart); err != nil {
		return CartView{}, err
	}
	return view(sessionID, cart), nil
}

func view(sessionID string, cart *Cart) CartView {
	return CartView{
		SessionID: sessionID,
		Items:     cart.Items(),
		Totals:    cart.Totals(),
	}
}
