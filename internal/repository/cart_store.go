package repository

import (
	"sync"
	"time"

	"coffeeshop/internal/domain"

	"github.com/sirupsen/logrus"
)

type cartEntry struct {
	cart     *domain.Cart
	lastSeen time.Time
}

type memoryCartStore struct {
	mu      sync.Mutex
	carts   map[string]*cartEntry
	idleTTL time.Duration
	log     *logrus.Logger
}

// NewMemoryCartStore backs shopping sessions with process-local carts. Carts
// are in-memory only: they last for the lifetime of the session and are gone
// after a restart. The only durable artifact of shopping is a placed order.
func NewMemoryCartStore(idleTTL time.Duration, logger *logrus.Logger) domain.CartStore {
	return &memoryCartStore{
		carts:   make(map[string]*cartEntry),
		idleTTL: idleTTL,
		log:     logger,
	}
}

func (s *memoryCartStore) GetOrCreate(sessionID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.carts[sessionID]; ok {
		entry.lastSeen = time.Now()
		return entry.cart
	}

	cart := domain.NewCart()
	s.carts[sessionID] = &cartEntry{cart: cart, lastSeen: time.Now()}
	s.log.Debugf("CartStore: Created cart for session %s (%d active)", sessionID, len(s.carts))
	return cart
}

func (s *memoryCartStore) Get(sessionID string) (*domain.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[sessionID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.cart, true
}

func (s *memoryCartStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// StartJanitor evicts carts idle longer than the TTL. It runs until done is
// closed. The sweep interval is floored so a tiny or zero TTL cannot produce
// a non-positive ticker.
func (s *memoryCartStore) StartJanitor(done <-chan struct{}) {
	interval := s.idleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.evictIdle()
			}
		}
	}()
}

func (s *memoryCartStore) evictIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.idleTTL)
	evicted := 0
	for id, entry := range s.carts {
		if entry.lastSeen.Before(cutoff) {
			delete(s.carts, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Infof("CartStore: Evicted %d idle carts (%d remaining)", evicted, len(s.carts))
	}
}
