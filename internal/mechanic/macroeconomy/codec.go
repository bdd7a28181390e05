package macroeconomy

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes macroeconomy events to the stable tagged wire format.
type Codec struct{}

// Domain returns the macroeconomy domain tag.
func (Codec) Domain() string { return "macroeconomy" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a macroeconomy event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal macroeconomy event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case IndicatorsUpdated{}.Kind():
		evt = &IndicatorsUpdated{}
	case ContractionStarted{}.Kind():
		evt = &ContractionStarted{}
	case ContractionEnded{}.Kind():
		evt = &ContractionEnded{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown macroeconomy event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal macroeconomy event %s: %w", kind, err)
	}
	return evt, nil
}
