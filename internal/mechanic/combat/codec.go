package combat

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes combat events to the stable tagged wire format.
type Codec struct{}

// Domain returns the combat domain tag.
func (Codec) Domain() string { return "combat" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a combat event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal combat event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case DamageDealt{}.Kind():
		evt = &DamageDealt{}
	case Defeated{}.Kind():
		evt = &Defeated{}
	case Rejected{}.Kind():
		evt = &Rejected{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown combat event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal combat event %s: %w", kind, err)
	}
	return evt, nil
}
