package evolution

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes evolution events to the stable tagged wire format.
type Codec struct{}

// Domain returns the evolution domain tag.
func (Codec) Domain() string { return "evolution" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not an evolution event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal evolution event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case TraitShifted{}.Kind():
		evt = &TraitShifted{}
	case FitnessChanged{}.Kind():
		evt = &FitnessChanged{}
	case Extinct{}.Kind():
		evt = &Extinct{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown evolution event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal evolution event %s: %w", kind, err)
	}
	return evt, nil
}
