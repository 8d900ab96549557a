package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"setflow/internal/domain"
)

func TestInvitableRoles(t *testing.T) {
	cases := []struct {
		actor domain.Role
		want  []domain.Role
	}{
		{domain.RoleOwner, []domain.Role{domain.RoleAdmin, domain.RoleProducer, domain.RoleFinance, domain.RoleFreelancer}},
		{domain.RoleAdmin, []domain.Role{domain.RoleProducer, domain.RoleFinance, domain.RoleFreelancer}},
		{domain.RoleProducer, []domain.Role{domain.RoleFreelancer}},
		{domain.RoleFinance, nil},
		{domain.RoleFreelancer, nil},
		{domain.Role("intern"), nil},
	}
	for _, tc := range cases {
		set := domain.InvitableRoles(tc.actor)
		assert.Len(t, set, len(tc.want), "actor %s", tc.actor)
		for _, r := range tc.want {
			assert.True(t, set[r], "actor %s should invite %s", tc.actor, r)
		}
	}
}

func TestCanInvite_AdminCannotInviteOwner(t *testing.T) {
	assert.False(t, domain.CanInvite(domain.RoleAdmin, domain.RoleOwner))
	assert.False(t, domain.CanInvite(domain.RoleOwner, domain.RoleOwner))
	assert.True(t, domain.CanInvite(domain.RoleOwner, domain.RoleAdmin))
}

func TestCanRemoveMember_MasterOwnerAlwaysProtected(t *testing.T) {
	for role := range domain.ValidRoles {
		assert.False(t, domain.CanRemoveMember(role, false, true, domain.RoleFreelancer),
			"actor %s must not remove the master owner", role)
	}
}

func TestCanRemoveMember_NeverSelf(t *testing.T) {
	assert.False(t, domain.CanRemoveMember(domain.RoleOwner, true, false, domain.RoleFreelancer))
}

func TestCanRemoveMember_Matrix(t *testing.T) {
	cases := []struct {
		actor, target domain.Role
		want          bool
	}{
		{domain.RoleOwner, domain.RoleAdmin, true},
		{domain.RoleOwner, domain.RoleOwner, true},
		{domain.RoleAdmin, domain.RoleProducer, true},
		{domain.RoleAdmin, domain.RoleFinance, true},
		{domain.RoleAdmin, domain.RoleFreelancer, true},
		{domain.RoleAdmin, domain.RoleAdmin, false},
		{domain.RoleAdmin, domain.RoleOwner, false},
		{domain.RoleProducer, domain.RoleFreelancer, true},
		{domain.RoleProducer, domain.RoleFinance, false},
		{domain.RoleFinance, domain.RoleFreelancer, false},
		{domain.RoleFreelancer, domain.RoleFreelancer, false},
	}
	for _, tc := range cases {
		got := domain.CanRemoveMember(tc.actor, false, false, tc.target)
		assert.Equal(t, tc.want, got, "%s removing %s", tc.actor, tc.target)
	}
}

func TestCanEditFinancialRecord_AdminGated(t *testing.T) {
	assert.True(t, domain.CanEditFinancialRecord(domain.RoleAdmin))
	for _, role := range []domain.Role{domain.RoleOwner, domain.RoleProducer, domain.RoleFinance, domain.RoleFreelancer} {
		assert.False(t, domain.CanEditFinancialRecord(role), "role %s", role)
	}
}

func TestCanChangeMemberRole_OwnerGated(t *testing.T) {
	assert.True(t, domain.CanChangeMemberRole(domain.RoleOwner))
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleProducer, domain.RoleFinance, domain.RoleFreelancer} {
		assert.False(t, domain.CanChangeMemberRole(role), "role %s", role)
	}
}

func TestRoleRank_TotalOrder(t *testing.T) {
	assert.Greater(t, domain.RoleOwner.Rank(), domain.RoleAdmin.Rank())
	assert.Greater(t, domain.RoleAdmin.Rank(), domain.RoleProducer.Rank())
	assert.Greater(t, domain.RoleProducer.Rank(), domain.RoleFinance.Rank())
	assert.Greater(t, domain.RoleFinance.Rank(), domain.RoleFreelancer.Rank())
	assert.Equal(t, 0, domain.Role("intern").Rank())
}
