package catalog

import (
	"github.com/google/uuid"

	"github.com/avalder/keel/pkg/instrument"
)

// Definition is one reference-data update carrying a complete instrument
// value. Instruments are never patched in place, a new Definition
// supersedes the previous one wholesale.
type Definition struct {
	EventID    uuid.UUID      `json:"event_id"`
	Instrument instrument.Any `json:"instrument"`
}

func NewDefinition(inst instrument.Any) Definition {
	return Definition{
		EventID:    uuid.Must(uuid.NewV7()),
		Instrument: inst,
	}
}

type UpdateHandler func(Definition)

func MergeHandlers(handlers ...UpdateHandler) UpdateHandler {
	return func(def Definition) {
		for _, handler := range handlers {
			handler(def)
		}
	}
}
