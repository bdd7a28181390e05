package exchange

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes exchange events to the stable tagged wire format.
type Codec struct{}

// Domain returns the exchange domain tag.
func (Codec) Domain() string { return "exchange" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not an exchange event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal exchange event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case TradeCompleted{}.Kind():
		evt = &TradeCompleted{}
	case TradeRejected{}.Kind():
		evt = &TradeRejected{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown exchange event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal exchange event %s: %w", kind, err)
	}
	return evt, nil
}
