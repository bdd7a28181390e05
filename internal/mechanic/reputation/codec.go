package reputation

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes reputation events to the stable tagged wire format.
type Codec struct{}

// Domain returns the reputation domain tag.
func (Codec) Domain() string { return "reputation" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a reputation event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal reputation event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case Changed{}.Kind():
		evt = &Changed{}
	case ThresholdCrossed{}.Kind():
		evt = &ThresholdCrossed{}
	case Rejected{}.Kind():
		evt = &Rejected{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown reputation event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal reputation event %s: %w", kind, err)
	}
	return evt, nil
}
