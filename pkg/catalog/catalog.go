package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/avalder/keel/pkg/instrument"
)

var ErrInstrumentNotPresent = errors.New("instrument is not present in catalog")

// Catalog is the live table of instrument definitions keyed by id. Writes
// replace whole values under the lock, readers always observe a complete
// definition, never a partially updated one.
type Catalog struct {
	mu       sync.RWMutex
	entries  map[instrument.ID]instrument.Any
	onUpdate UpdateHandler
	logger   *zap.Logger
}

type Option func(*Catalog)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		entries: make(map[instrument.ID]instrument.Any),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUpdate registers a handler invoked after every applied definition.
// Handlers run on the caller of Apply, in registration order.
func (c *Catalog) OnUpdate(handler UpdateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onUpdate == nil {
		c.onUpdate = handler
		return
	}
	c.onUpdate = MergeHandlers(c.onUpdate, handler)
}

// Apply stores the definition, replacing any previous definition of the
// same instrument. Reports whether an existing entry was superseded.
func (c *Catalog) Apply(def Definition) bool {
	id := def.Instrument.ID()

	c.mu.Lock()
	_, replaced := c.entries[id]
	c.entries[id] = def.Instrument
	handler := c.onUpdate
	c.mu.Unlock()

	c.logger.Debug("definition applied",
		zap.String("event_id", def.EventID.String()),
		zap.Stringer("id", id),
		zap.Bool("replaced", replaced))

	if handler != nil {
		handler(def)
	}
	return replaced
}

func (c *Catalog) Contains(id instrument.ID) bool {
	if _, err := c.Get(id); err != nil {
		return false
	}
	return true
}

func (c *Catalog) Get(id instrument.ID) (instrument.Any, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return instrument.Any{}, fmt.Errorf("unable to get instrument with id %s: %w", id, ErrInstrumentNotPresent)
	}
	return entry, nil
}

func (c *Catalog) MustGet(id instrument.ID) instrument.Any {
	entry, err := c.Get(id)
	if err != nil {
		panic(err.Error())
	}
	return entry
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot copies the current definitions, ordered by id.
func (c *Catalog) Snapshot() []instrument.Any {
	c.mu.RLock()
	entries := make([]instrument.Any, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID().String() < entries[j].ID().String()
	})
	return entries
}
