package perception

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes perception events to the stable tagged wire format.
type Codec struct{}

// Domain returns the perception domain tag.
func (Codec) Domain() string { return "perception" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a perception event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal perception event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case Observed{}.Kind():
		evt = &Observed{}
	case Faded{}.Kind():
		evt = &Faded{}
	case Forgotten{}.Kind():
		evt = &Forgotten{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown perception event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal perception event %s: %w", kind, err)
	}
	return evt, nil
}
