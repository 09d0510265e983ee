package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"beautyboosters/models"

	"go.uber.org/zap"
)

// ErrInvalidItem is returned when an add-to-cart payload fails validation.
var ErrInvalidItem = errors.New("cart: invalid item")

// Store is the ordered collection of line items of one browser session.
// Every mutation is written to its SessionStorage before the call returns.
// A Store is not safe for concurrent use; Manager serialises access per session.
type Store struct {
	storage SessionStorage
	logger  *zap.Logger
	now     func() time.Time
	seq     uint64
	items   []models.CartItem
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for id minting.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store and rehydrates it from storage. An absent or malformed
// record yields an empty cart.
func NewStore(ctx context.Context, storage SessionStorage, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		storage: storage,
		logger:  logger,
		now:     time.Now,
		items:   []models.CartItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	data, err := s.storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			s.logger.Warn("cart: failed to read persisted cart, starting empty", zap.Error(err))
		}
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("cart: persisted cart is malformed, starting empty", zap.Error(err))
		return
	}
	if items != nil {
		s.items = items
	}
}

// AddToCart mints a fresh id for the item and appends it to the end of the cart.
func (s *Store) AddToCart(ctx context.Context, in models.CartItemInput) (models.CartItem, error) {
	if err := ValidateInput(in); err != nil {
		return models.CartItem{}, err
	}

	item := models.CartItem{
		ID:            s.mintID(in.TemplateID),
		Name:          in.Name,
		Description:   in.Description,
		BasePrice:     in.BasePrice,
		Duration:      in.Duration,
		Category:      in.Category,
		People:        in.People,
		Boosters:      in.Boosters,
		FinalPrice:    in.FinalPrice,
		TotalDuration: in.TotalDuration,
	}
	if len(in.GroupPricing) > 0 {
		item.GroupPricing = make(map[int]float64, len(in.GroupPricing))
		for size, price := range in.GroupPricing {
			item.GroupPricing[size] = price
		}
	}

	s.items = append(s.items, item)
	s.persist(ctx)
	return item, nil
}

// RemoveFromCart removes the first item with the given id. Unknown ids are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	s.persist(ctx)
	return false
}

// ClearCart empties the cart and erases the persisted entry.
func (s *Store) ClearCart(ctx context.Context) {
	s.items = []models.CartItem{}
	if err := s.storage.Delete(ctx); err != nil {
		s.logger.Warn("cart: failed to erase persisted cart", zap.Error(err))
	}
}

// Items returns a copy of the ordered collection.
func (s *Store) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) GetTotalPrice() float64 {
	total := 0.0
	for _, it := range s.items {
		total += it.FinalPrice
	}
	return total
}

func (s *Store) GetTotalDuration() float64 {
	total := 0.0
	for _, it := range s.items {
		total += it.TotalDuration
	}
	return total
}

func (s *Store) GetItemCount() int {
	return len(s.items)
}

// Checkout returns the hand-off summary for the checkout page.
func (s *Store) Checkout() models.CartSummary {
	return models.CartSummary{
		Items:         s.Items(),
		TotalPrice:    s.GetTotalPrice(),
		TotalDuration: s.GetTotalDuration(),
		ItemCount:     s.GetItemCount(),
	}
}

// mintID derives an id from the template id, the wall clock and a per-store sequence.
func (s *Store) mintID(templateID string) string {
	for {
		s.seq++
		id := templateID + "-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + strconv.FormatUint(s.seq, 10)
		if !s.has(id) {
			return id
		}
	}
}

func (s *Store) has(id string) bool {
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("cart: failed to serialize cart", zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, data); err != nil {
		s.logger.Warn("cart: failed to persist cart", zap.Error(err), zap.Int("items", len(s.items)))
	}
}

// ValidateInput checks an add-to-cart payload.
func ValidateInput(in models.CartItemInput) error {
	switch {
	case in.TemplateID == "":
		return fmt.Errorf("%w: templateId is required", ErrInvalidItem)
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case in.People < 1:
		return fmt.Errorf("%w: people must be at least 1", ErrInvalidItem)
	case in.Boosters < 1:
		return fmt.Errorf("%w: boosters must be at least 1", ErrInvalidItem)
	case in.FinalPrice < 0:
		return fmt.Errorf("%w: finalPrice must not be negative", ErrInvalidItem)
	case in.TotalDuration < 0:
		return fmt.Errorf("%w: totalDuration must not be negative", ErrInvalidItem)
	}
	for size := range in.GroupPricing {
		if size < 1 || size > 4 {
			return fmt.Errorf("%w: groupPricing party size %d outside 1..4", ErrInvalidItem, size)
		}
	}
	return nil
}
