package inventory

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes inventory events to the stable tagged wire format.
type Codec struct{}

// Domain returns the inventory domain tag.
func (Codec) Domain() string { return "inventory" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not an inventory event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal inventory event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case Stored{}.Kind():
		evt = &Stored{}
	case Removed{}.Kind():
		evt = &Removed{}
	case Rejected{}.Kind():
		evt = &Rejected{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown inventory event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal inventory event %s: %w", kind, err)
	}
	return evt, nil
}
