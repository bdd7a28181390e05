package rights

import "github.com/louisbranch/emergent.world/internal/sim"

// TransferPolicy decides whether a claim may change hands.
type TransferPolicy interface {
	// Allowed returns a rejection reason when the transfer must not apply.
	Allowed(claim Claim, in Input, cfg *Config) (ok bool, reason RejectReason)
}

// RecognitionPolicy decides which observers accept a completed transfer.
type RecognitionPolicy interface {
	// Recognize partitions the observers into those that accept the
	// transfer. Observers not returned are unrecognizing.
	Recognize(claim Claim, observers []sim.ObserverID, cfg *Config) []sim.ObserverID
}

// SystemPolicy decides which unrecognizing observers escalate to a contest.
type SystemPolicy interface {
	// Contest filters the unrecognizing observers down to those that
	// formally dispute the transfer.
	Contest(claim Claim, unrecognized []sim.ObserverID, cfg *Config) []sim.ObserverID
}

// StrictTransfer enforces holdership and transferability.
type StrictTransfer struct{}

// Allowed rejects transfers not initiated by the holder, transfers of
// non-transferable claims, and transfers back to the holder.
func (StrictTransfer) Allowed(claim Claim, in Input, cfg *Config) (bool, RejectReason) {
	if claim.Holder != in.From {
		return false, ReasonNotHolder
	}
	if !claim.Transferable {
		return false, ReasonNonTransferable
	}
	if in.From == in.To {
		return false, ReasonSelfTransfer
	}
	return true, ""
}

// SeizureTransfer lets any entity take a transferable claim, the holder
// check is skipped. Conquest style systems use this.
type SeizureTransfer struct{}

// Allowed rejects only non-transferable claims and self transfers.
func (SeizureTransfer) Allowed(claim Claim, in Input, cfg *Config) (bool, RejectReason) {
	if !claim.Transferable {
		return false, ReasonNonTransferable
	}
	if claim.Holder == in.To {
		return false, ReasonSelfTransfer
	}
	return true, ""
}

// UniversalRecognition has every observer accept the transfer.
type UniversalRecognition struct{}

// Recognize returns all observers.
func (UniversalRecognition) Recognize(claim Claim, observers []sim.ObserverID, cfg *Config) []sim.ObserverID {
	return observers
}

// WitnessRecognition requires a quorum of observers to be present. With the
// quorum met everyone recognizes, without it nobody does.
type WitnessRecognition struct{}

// Recognize returns all observers when at least the configured witness
// count saw the transfer, otherwise none.
func (WitnessRecognition) Recognize(claim Claim, observers []sim.ObserverID, cfg *Config) []sim.ObserverID {
	if len(observers) < cfg.Witnesses {
		return nil
	}
	return observers
}

// NoContest swallows unrecognized transfers silently.
type NoContest struct{}

// Contest returns no contestants.
func (NoContest) Contest(claim Claim, unrecognized []sim.ObserverID, cfg *Config) []sim.ObserverID {
	return nil
}

// FullContest escalates every unrecognizing observer to a formal dispute.
type FullContest struct{}

// Contest returns all unrecognizing observers.
func (FullContest) Contest(claim Claim, unrecognized []sim.ObserverID, cfg *Config) []sim.ObserverID {
	return unrecognized
}
