package contagion

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes contagion events to the stable tagged wire format.
type Codec struct{}

// Domain returns the contagion domain tag.
func (Codec) Domain() string { return "contagion" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a contagion event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal contagion event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case Transmitted{}.Kind():
		evt = &Transmitted{}
	case Progressed{}.Kind():
		evt = &Progressed{}
	case Waned{}.Kind():
		evt = &Waned{}
	case Recovered{}.Kind():
		evt = &Recovered{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown contagion event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal contagion event %s: %w", kind, err)
	}
	return evt, nil
}
