package memory

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/cart/ports"
)

var (
	_ ports.Store    = (*Store)(nil)
	_ ports.Sessions = (*Registry)(nil)
)

// Store is an in-memory cart for a single session.
type Store struct {
	mu    sync.RWMutex
	items domain.Cart
}

func NewStore() *Store {
	return &Store{items: domain.Cart{}}
}

func (s *Store) AddItem(item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.ProductID == item.ProductID {
			s.items[i] = existing.WithQuantity(existing.Quantity + item.Quantity)
			return nil
		}
	}
	s.items = append(s.items, item)
	return nil
}

func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) SetQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}
	for i, existing := range s.items {
		if existing.ProductID == productID {
			s.items[i] = existing.WithQuantity(quantity)
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = domain.Cart{}
}

func (s *Store) Items() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Clone()
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.TotalPrice()
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.IsEmpty()
}

func (s *Store) removeLocked(productID int64) {
	kept := s.items[:0]
	for _, existing := range s.items {
		if existing.ProductID != productID {
			kept = append(kept, existing)
		}
	}
	s.items = kept
}

type session struct {
	store *Store
	seen  time.Time
}

// Registry keeps one cart store per shopping session. Sessions left idle are
// dropped by Evict.
type Registry struct {
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry() *Registry {
	return &Registry{now: time.Now, sessions: map[string]*session{}}
}

// ForSession returns the session cart, creating an empty one on first use.
func (r *Registry) ForSession(sessionID string) ports.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &session{store: NewStore()}
		r.sessions[sessionID] = s
	}
	s.seen = r.now()
	return s.store
}

// Lookup returns the session cart without creating one.
func (r *Registry) Lookup(sessionID string) (ports.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.seen = r.now()
	return s.store, true
}

// Evict drops carts untouched for longer than idle, except sessions keep
// reports as still in use. It returns the number of carts dropped.
func (r *Registry) Evict(idle time.Duration, keep func(sessionID string) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	dropped := 0
	for id, s := range r.sessions {
		if !s.seen.Before(cutoff) || (keep != nil && keep(id)) {
			continue
		}
		delete(r.sessions, id)
		dropped++
	}
	return dropped
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
