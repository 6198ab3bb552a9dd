package itinerary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
	"github.com/FACorreiaa/go-routeplanner/internal/app/observability/metrics"
)

// State is one published snapshot of the editor. Snapshots are never mutated
// after they are stored; every edit publishes a new one.
type State struct {
	Itinerary  *models.ItineraryData `json:"itinerary"`
	Essentials models.Essentials     `json:"essentials"`
	Loading    bool                  `json:"loading"`
	Error      string                `json:"error,omitempty"`
	Version    uint64                `json:"version"`
}

// Store owns the current itinerary. Writers are serialised; readers load the
// latest snapshot without locking.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[State]
	newID   func() string
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces uuid-based ids, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates an empty store with no itinerary loaded.
func NewStore(logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		newID:  func() string { return uuid.NewString() },
		logger: logger.With(zap.String("component", "ItineraryStore")),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&State{})
	return s
}

// Snapshot returns the latest published state.
func (s *Store) Snapshot() *State {
	return s.current.Load()
}

// BeginLoading drops the current itinerary and marks an extraction as pending.
func (s *Store) BeginLoading() {
	s.publish(func(cur State) State {
		return State{Loading: true}
	})
}

// Load replaces the whole aggregate with a freshly extracted one.
func (s *Store) Load(data *models.ItineraryData, essentials models.Essentials) *State {
	st := s.publish(func(cur State) State {
		return State{Itinerary: data.Clone(), Essentials: essentials}
	})
	metrics.Get().LoadedItemsGauge.Record(context.Background(), int64(data.ItemCount()))
	s.logger.Info("Itinerary loaded",
		zap.Int("days", len(data.Days)),
		zap.Int("items", data.ItemCount()),
		zap.String("airport", essentials.Airport),
		zap.String("hotel", essentials.Hotel))
	return st
}

// Fail leaves no itinerary loaded and records a user-facing message.
func (s *Store) Fail(message string) {
	s.publish(func(cur State) State {
		return State{Error: message}
	})
}

// SetEssentials overwrites the quick-reference pair. It is independent of the
// items and is not recomputed from them.
func (s *Store) SetEssentials(e models.Essentials) (*State, error) {
	var err error
	st := s.publish(func(cur State) State {
		if cur.Itinerary == nil {
			err = models.ErrNoItinerary
			return cur
		}
		cur.Essentials = e
		return cur
	})
	return st, s.report("SetEssentials", err)
}

// AddItem appends a new stop with a fresh id to the end of the day.
func (s *Store) AddItem(dayIndex int) (*State, error) {
	id := s.newID()
	return s.mutate("AddItem", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return AddItem(d, dayIndex, id)
	})
}

// ExcludeItem moves a scheduled stop into the unscheduled pool.
func (s *Store) ExcludeItem(dayIndex, itemIndex int) (*State, error) {
	return s.mutate("ExcludeItem", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return ExcludeItem(d, dayIndex, itemIndex)
	})
}

// IncludeItem schedules a pool item at the end of the target day.
func (s *Store) IncludeItem(unscheduledIndex, targetDayIndex int) (*State, error) {
	return s.mutate("IncludeItem", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return IncludeItem(d, unscheduledIndex, targetDayIndex)
	})
}

// MoveItem swaps a stop with its neighbour in the given direction.
func (s *Store) MoveItem(dayIndex, itemIndex int, dir models.Direction) (*State, error) {
	return s.mutate("MoveItem", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return MoveItem(d, dayIndex, itemIndex, dir)
	})
}

// UpdateItem replaces one editable field of a stop.
func (s *Store) UpdateItem(dayIndex, itemIndex int, field models.ItemField, value string) (*State, error) {
	return s.mutate("UpdateItem", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return UpdateItem(d, dayIndex, itemIndex, field, value)
	})
}

// CycleCategory advances a stop's category.
func (s *Store) CycleCategory(dayIndex, itemIndex int) (*State, error) {
	return s.mutate("CycleCategory", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return CycleCategory(d, dayIndex, itemIndex)
	})
}

// ToggleVote flips a member's vote on a stop.
func (s *Store) ToggleVote(dayIndex, itemIndex int, member string) (*State, error) {
	return s.mutate("ToggleVote", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return ToggleVote(d, dayIndex, itemIndex, member)
	})
}

// AddUnscheduled appends suggested stops to the pool.
func (s *Store) AddUnscheduled(items []models.ItineraryItem) (*State, error) {
	return s.mutate("AddUnscheduled", func(d *models.ItineraryData) (*models.ItineraryData, error) {
		return AddUnscheduled(d, items)
	})
}

// NewID hands out an id from the store's generator.
func (s *Store) NewID() string {
	return s.newID()
}

// mutate runs op against the current itinerary. On error the current state
// stays published and the error is logged and returned.
func (s *Store) mutate(name string, op func(*models.ItineraryData) (*models.ItineraryData, error)) (*State, error) {
	var err error
	st := s.publish(func(cur State) State {
		if cur.Itinerary == nil {
			err = models.ErrNoItinerary
			return cur
		}
		var next *models.ItineraryData
		next, err = op(cur.Itinerary)
		if err != nil {
			return cur
		}
		cur.Itinerary = next
		return cur
	})
	if err == nil {
		metrics.Get().ItineraryMutationsTotal.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("operation", name)))
	}
	return st, s.report(name, err)
}

// publish applies fn to a copy of the current state and stores the result
// under the write lock. Returning the input unchanged skips the version bump.
func (s *Store) publish(fn func(cur State) State) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	next := fn(*cur)
	if next == *cur {
		return cur
	}
	next.Version = cur.Version + 1
	s.current.Store(&next)
	return &next
}

func (s *Store) report(op string, err error) error {
	if err == nil {
		return nil
	}
	reason := "invalid"
	if errors.Is(err, models.ErrNoItinerary) {
		reason = "no_itinerary"
	} else if errors.Is(err, models.ErrIndexOutOfRange) {
		reason = "out_of_range"
	}
	metrics.Get().ItineraryRejectedMutations.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("operation", op), attribute.String("reason", reason)))
	s.logger.Warn("Ignored itinerary mutation", zap.String("method", op), zap.Error(err))
	return err
}
