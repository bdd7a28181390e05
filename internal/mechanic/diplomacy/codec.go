package diplomacy

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes diplomacy events to the stable tagged wire format.
type Codec struct{}

// Domain returns the diplomacy domain tag.
func (Codec) Domain() string { return "diplomacy" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a diplomacy event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal diplomacy event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case ArgumentLanded{}.Kind():
		evt = &ArgumentLanded{}
	case ArgumentDismissed{}.Kind():
		evt = &ArgumentDismissed{}
	case Rejected{}.Kind():
		evt = &Rejected{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown diplomacy event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal diplomacy event %s: %w", kind, err)
	}
	return evt, nil
}
