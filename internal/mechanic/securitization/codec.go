package securitization

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec serializes securitization events to the stable tagged wire format.
type Codec struct{}

// Domain returns the securitization domain tag.
func (Codec) Domain() string { return "securitization" }

// Encode marshals an event into its kind tag and JSON payload.
func (Codec) Encode(evt any) (string, []byte, error) {
	e, ok := evt.(Event)
	if !ok {
		return "", nil, fmt.Errorf("not a securitization event: %T", evt)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal securitization event: %w", err)
	}
	return e.Kind(), payload, nil
}

// Decode unmarshals a kind-tagged payload back into its event.
func (Codec) Decode(kind string, payload []byte) (any, error) {
	var evt Event
	switch kind {
	case CollateralDeposited{}.Kind():
		evt = &CollateralDeposited{}
	case Issued{}.Kind():
		evt = &Issued{}
	case Redeemed{}.Kind():
		evt = &Redeemed{}
	case CollateralWithdrawn{}.Kind():
		evt = &CollateralWithdrawn{}
	case Rejected{}.Kind():
		evt = &Rejected{}
	default:
		return nil, apperrors.New(apperrors.CodeReplayUnknownKind, "unknown securitization event kind: "+kind)
	}
	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal securitization event %s: %w", kind, err)
	}
	return evt, nil
}
