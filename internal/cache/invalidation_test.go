package cache_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"setflow/internal/cache"
)

func TestDependents_InviteAcceptedStalesMembers(t *testing.T) {
	cols := cache.Dependents(cache.MutationInviteAccepted)
	assert.Contains(t, cols, cache.CollectionInvites)
	assert.Contains(t, cols, cache.CollectionMembers)
}

func TestDependents_UnknownMutationEmpty(t *testing.T) {
	assert.Empty(t, cache.Dependents(cache.Mutation("bogus")))
}

func TestStore_InvalidateDropsOnlyDependentCollections(t *testing.T) {
	store := cache.NewStore()
	orgID := uuid.New()

	store.Put(orgID, cache.CollectionMembers, []string{"a"})
	store.Put(orgID, cache.CollectionInvites, []string{"b"})
	store.Put(orgID, cache.CollectionClients, []string{"c"})

	store.Invalidate(orgID, cache.MutationInviteAccepted)

	_, ok := store.Get(orgID, cache.CollectionMembers)
	assert.False(t, ok)
	_, ok = store.Get(orgID, cache.CollectionInvites)
	assert.False(t, ok)
	_, ok = store.Get(orgID, cache.CollectionClients)
	assert.True(t, ok, "unrelated collections survive")
}

func TestStore_InvalidateIsOrgScoped(t *testing.T) {
	store := cache.NewStore()
	orgA := uuid.New()
	orgB := uuid.New()

	store.Put(orgA, cache.CollectionMembers, 1)
	store.Put(orgB, cache.CollectionMembers, 2)

	store.Invalidate(orgA, cache.MutationMemberWrite)

	_, ok := store.Get(orgA, cache.CollectionMembers)
	assert.False(t, ok)
	v, ok := store.Get(orgB, cache.CollectionMembers)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
