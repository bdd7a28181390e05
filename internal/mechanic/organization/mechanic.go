package organization

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the organization driver parameterized by its fit policy.
type Mechanic[F FitPolicy] struct {
	fit F
}

// New assembles an organization mechanic from its policy.
func New[F FitPolicy](fit F) Mechanic[F] {
	return Mechanic[F]{fit: fit}
}

// Step applies one membership operation and rescores efficiency. Declined
// operations emit Rejected and leave the organization untouched.
func (m Mechanic[F]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	org, ok := st.Orgs[in.OrgID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownOrg})
		return
	}

	switch in.Op {
	case OpJoin:
		if _, member := org.Members[in.MemberID]; member {
			em.Emit(Rejected{Reason: ReasonAlreadyMember})
			return
		}
		org.Members[in.MemberID] = in.Role
		em.Emit(MemberJoined{OrgID: in.OrgID, MemberID: in.MemberID, Role: in.Role, Size: len(org.Members)})

	case OpLeave:
		if _, member := org.Members[in.MemberID]; !member {
			em.Emit(Rejected{Reason: ReasonNotMember})
			return
		}
		delete(org.Members, in.MemberID)
		em.Emit(MemberLeft{OrgID: in.OrgID, MemberID: in.MemberID, Size: len(org.Members)})

	default:
		em.Emit(Rejected{Reason: ReasonUnknownOp})
		return
	}

	efficiency := m.fit.Fit(org, cfg)
	if efficiency != org.Efficiency {
		em.Emit(EfficiencyChanged{OrgID: in.OrgID, Before: org.Efficiency, After: efficiency})
		org.Efficiency = efficiency
	}
}
