package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store is one session's cart. Every mutation rewrites the whole line
// collection to storage; the open flag is presentational and never saved.
type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	logger  zerolog.Logger

	lines []Line
	open  bool
}

// Snapshot is a consistent read of a store.
type Snapshot struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsOpen     bool            `json:"isOpen"`
}

// NewStore builds a store and restores whatever was saved under key.
// Unreadable or corrupt state is logged and the store starts empty.
func NewStore(ctx context.Context, key string, storage Storage, logger zerolog.Logger) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		logger:  logger.With().Str("cart", key).Logger(),
		lines:   []Line{},
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNoState) {
			s.logger.Error().Err(err).Msg("load cart state")
		}
		return
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn().Err(err).Msg("ignoring corrupt cart state")
		return
	}
	if lines != nil {
		s.lines = lines
	}
}

// persistLocked must be called with s.mu held.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode cart state")
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.logger.Error().Err(err).Msg("save cart state")
	}
}

func (s *Store) indexLocked(id string) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// AddItem bumps an existing line by one, capped at the maxQuantity recorded on
// that line, or appends a new line with quantity 1 and the given maxQuantity.
func (s *Store) AddItem(ctx context.Context, item Item, maxQuantity *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(item.ID); i >= 0 {
		s.lines[i].Quantity = s.lines[i].clamp(s.lines[i].Quantity + 1)
	} else {
		s.lines = append(s.lines, Line{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Image:       item.Image,
			Quantity:    1,
			MaxQuantity: maxQuantity,
		})
	}
	s.persistLocked(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persistLocked(ctx)
}

// UpdateQuantity stores clamp(q, 0, maxQuantity). Zero keeps the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, q int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.lines[i].Quantity = s.lines[i].clamp(q)
	s.persistLocked(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []Line{}
	s.persistLocked(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

func (s *Store) itemsLocked() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.lines)
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.lines)
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Items:      s.itemsLocked(),
		TotalItems: totalItems(s.lines),
		TotalPrice: totalPrice(s.lines),
		IsOpen:     s.open,
	}
}

func totalItems(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func totalPrice(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}
