// Package organization implements the membership mechanic: a fit policy
// slot scores how well an organization's size and role coverage serve it,
// expressed as an efficiency that moves with joins and departures.
package organization

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidOptimalSize indicates a non-positive optimal size.
	ErrInvalidOptimalSize = apperrors.New(apperrors.CodeConfigValueOutOfRange, "optimal size must be positive")
	// ErrNoRoles indicates an empty required role set for role coverage.
	ErrNoRoles = apperrors.New(apperrors.CodeConfigValueOutOfRange, "required roles must not be empty")
)

// Role tags what a member does for the organization.
type Role string

// Config holds the read-only organization parameters.
type Config struct {
	// OptimalSize is the member count at which size fit peaks.
	OptimalSize int
	// RequiredRoles is the role set coverage fit scores against.
	RequiredRoles []Role
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.OptimalSize <= 0 {
		return ErrInvalidOptimalSize
	}
	if len(c.RequiredRoles) == 0 {
		return ErrNoRoles
	}
	return nil
}

// Org is one organization's membership and standing efficiency.
type Org struct {
	Members    map[sim.MemberID]Role
	Efficiency float64
}

// State holds every organization.
type State struct {
	Orgs map[sim.FactionID]*Org
}

// NewState creates an empty organization state.
func NewState() *State {
	return &State{Orgs: make(map[sim.FactionID]*Org)}
}

// AddOrg registers an empty organization.
func (s *State) AddOrg(id sim.FactionID) *Org {
	o := &Org{Members: make(map[sim.MemberID]Role)}
	s.Orgs[id] = o
	return o
}

// Op selects the membership operation for one step.
type Op string

const (
	// OpJoin admits a member.
	OpJoin Op = "join"
	// OpLeave removes a member.
	OpLeave Op = "leave"
)

// Input is the command for one organization step.
type Input struct {
	OrgID    sim.FactionID
	MemberID sim.MemberID
	Role     Role
	Op       Op
	Elapsed  sim.Duration
}

// RejectReason tags a declined membership operation.
type RejectReason string

const (
	// ReasonUnknownOrg indicates the organization is not in state.
	ReasonUnknownOrg RejectReason = "unknown_org"
	// ReasonAlreadyMember indicates a join of an existing member.
	ReasonAlreadyMember RejectReason = "already_member"
	// ReasonNotMember indicates a departure of a non-member.
	ReasonNotMember RejectReason = "not_member"
	// ReasonUnknownOp indicates an unrecognized operation.
	ReasonUnknownOp RejectReason = "unknown_op"
)

// Event is the sealed union of organization events.
type Event interface {
	Kind() string
	isEvent()
}

// MemberJoined records an admission.
type MemberJoined struct {
	OrgID    sim.FactionID `json:"org_id"`
	MemberID sim.MemberID  `json:"member_id"`
	Role     Role          `json:"role"`
	Size     int           `json:"size"`
}

// Kind returns the event kind tag.
func (MemberJoined) Kind() string { return "member_joined" }
func (MemberJoined) isEvent()     {}

// MemberLeft records a departure.
type MemberLeft struct {
	OrgID    sim.FactionID `json:"org_id"`
	MemberID sim.MemberID  `json:"member_id"`
	Size     int           `json:"size"`
}

// Kind returns the event kind tag.
func (MemberLeft) Kind() string { return "member_left" }
func (MemberLeft) isEvent()     {}

// EfficiencyChanged records the fit score moving after a membership change.
type EfficiencyChanged struct {
	OrgID  sim.FactionID `json:"org_id"`
	Before float64       `json:"before"`
	After  float64       `json:"after"`
}

// Kind returns the event kind tag.
func (EfficiencyChanged) Kind() string { return "efficiency_changed" }
func (EfficiencyChanged) isEvent()     {}

// Rejected records a declined membership operation.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the organization descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "organization",
		Inputs: []string{"join", "leave"},
		Events: []string{
			MemberJoined{}.Kind(), MemberLeft{}.Kind(),
			EfficiencyChanged{}.Kind(), Rejected{}.Kind(),
		},
	}
}
