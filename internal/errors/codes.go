// Package errors provides structured error handling for the mechanics core.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Config errors (detected at construction; never surface from Step)
	CodeConfigValueOutOfRange Code = "CONFIG_VALUE_OUT_OF_RANGE"
	CodeConfigInvalidSchedule Code = "CONFIG_INVALID_SCHEDULE"

	// Primitive errors
	CodeScalarOutOfRange Code = "SCALAR_OUT_OF_RANGE"
	CodeIdentifierEmpty  Code = "IDENTIFIER_EMPTY"
	CodeSeedOutOfRange   Code = "SEED_OUT_OF_RANGE"

	// Topology errors (structural edits happen outside Step)
	CodeTopologyNodeExists  Code = "TOPOLOGY_NODE_EXISTS"
	CodeTopologyNodeUnknown Code = "TOPOLOGY_NODE_UNKNOWN"
	CodeTopologyEdgeInvalid Code = "TOPOLOGY_EDGE_INVALID"
	CodeTopologyWeightRange Code = "TOPOLOGY_WEIGHT_OUT_OF_RANGE"

	// Registry errors
	CodeRegistryDuplicateDomain Code = "REGISTRY_DUPLICATE_DOMAIN"
	CodeRegistryUnknownDomain   Code = "REGISTRY_UNKNOWN_DOMAIN"
	CodeRegistryInvalidVariant  Code = "REGISTRY_INVALID_VARIANT"

	// Host adapter errors
	CodePluginInvalidConfig   Code = "PLUGIN_INVALID_CONFIG"
	CodePluginDuplicateDomain Code = "PLUGIN_DUPLICATE_DOMAIN"
	CodePluginUnknownMessage  Code = "PLUGIN_UNKNOWN_MESSAGE"

	// Journal/replay errors
	CodeNotFound              Code = "NOT_FOUND"
	CodeJournalClosed         Code = "JOURNAL_CLOSED"
	CodeJournalHashMismatch   Code = "JOURNAL_HASH_MISMATCH"
	CodeRecordingHeaderBroken Code = "RECORDING_HEADER_BROKEN"
	CodeReplayDiverged        Code = "REPLAY_DIVERGED"
	CodeReplayUnknownKind     Code = "REPLAY_UNKNOWN_EVENT_KIND"
)

// GRPCCode maps domain codes to gRPC status codes for hosts that expose a
// gRPC surface.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - bad input values
	case CodeConfigValueOutOfRange,
		CodeConfigInvalidSchedule,
		CodeScalarOutOfRange,
		CodeIdentifierEmpty,
		CodeSeedOutOfRange,
		CodeTopologyEdgeInvalid,
		CodeTopologyWeightRange,
		CodeRegistryInvalidVariant,
		CodePluginInvalidConfig:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeTopologyNodeExists,
		CodeRegistryDuplicateDomain,
		CodePluginDuplicateDomain,
		CodeJournalClosed,
		CodeJournalHashMismatch,
		CodeRecordingHeaderBroken,
		CodeReplayDiverged:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeTopologyNodeUnknown,
		CodeRegistryUnknownDomain,
		CodePluginUnknownMessage,
		CodeReplayUnknownKind:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
