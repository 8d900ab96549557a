package domain

// invitableRoles maps an actor role to the set of roles it may invite.
// Owners may invite everything below them, admins everything below
// admin, producers only freelancers. Finance and freelancer have no
// invite capability.
var invitableRoles = map[Role][]Role{
	RoleOwner:    {RoleAdmin, RoleProducer, RoleFinance, RoleFreelancer},
	RoleAdmin:    {RoleProducer, RoleFinance, RoleFreelancer},
	RoleProducer: {RoleFreelancer},
}

// InvitableRoles returns the set of roles the actor may invite.
// Unknown or non-inviting roles get an empty set.
func InvitableRoles(actor Role) map[Role]bool {
	set := make(map[Role]bool, len(invitableRoles[actor]))
	for _, r := range invitableRoles[actor] {
		set[r] = true
	}
	return set
}

// CanInvite reports whether the actor may invite the target role.
func CanInvite(actor, target Role) bool {
	for _, r := range invitableRoles[actor] {
		if r == target {
			return true
		}
	}
	return false
}

// CanRemoveMember reports whether the actor may remove the target member.
// Nobody removes themselves or the organization's master owner. Owners
// may remove anyone else; admins remove producer, finance and
// freelancer; producers remove only freelancers.
func CanRemoveMember(actor Role, isSelf, targetIsMasterOwner bool, target Role) bool {
	if isSelf || targetIsMasterOwner {
		return false
	}
	switch actor {
	case RoleOwner:
		return true
	case RoleAdmin:
		return target == RoleProducer || target == RoleFinance || target == RoleFreelancer
	case RoleProducer:
		return target == RoleFreelancer
	default:
		return false
	}
}

// CanEditFinancialRecord reports whether the actor may create or mutate
// bank accounts and transactions. Deliberately stricter than the role
// order: financial mutation is admin-gated.
func CanEditFinancialRecord(actor Role) bool {
	return actor == RoleAdmin
}

// CanChangeMemberRole reports whether the actor may change another
// member's effective role. Role assignment is owner-gated.
func CanChangeMemberRole(actor Role) bool {
	return actor == RoleOwner
}
