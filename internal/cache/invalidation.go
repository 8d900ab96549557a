// Package cache provides a small in-process read cache for list-heavy
// endpoints, with an explicit dependency table mapping each mutation
// kind to the cached collections it invalidates. The table is plain
// data so the invalidation rules are testable on their own.
package cache

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Collection identifies a cached, org-scoped collection.
type Collection string

const (
	CollectionMembers      Collection = "members"
	CollectionInvites      Collection = "invites"
	CollectionProposals    Collection = "proposals"
	CollectionProjects     Collection = "projects"
	CollectionClients      Collection = "clients"
	CollectionCatalog      Collection = "catalog"
	CollectionSuppliers    Collection = "suppliers"
	CollectionBankAccounts Collection = "bank_accounts"
)

// Mutation identifies a kind of entity write.
type Mutation string

const (
	MutationMemberWrite      Mutation = "member_write"
	MutationInviteWrite      Mutation = "invite_write"
	MutationInviteAccepted   Mutation = "invite_accepted"
	MutationProposalWrite    Mutation = "proposal_write"
	MutationProposalApproved Mutation = "proposal_approved"
	MutationProjectWrite     Mutation = "project_write"
	MutationClientWrite      Mutation = "client_write"
	MutationCatalogWrite     Mutation = "catalog_write"
	MutationSupplierWrite    Mutation = "supplier_write"
	MutationTransactionWrite Mutation = "transaction_write"
)

// dependents maps a mutation kind to every collection whose cached
// reads it stales. An accepted invite changes the member list as well
// as the invite list; an approved proposal spawns a project.
var dependents = map[Mutation][]Collection{
	MutationMemberWrite:      {CollectionMembers},
	MutationInviteWrite:      {CollectionInvites},
	MutationInviteAccepted:   {CollectionInvites, CollectionMembers, CollectionSuppliers},
	MutationProposalWrite:    {CollectionProposals},
	MutationProposalApproved: {CollectionProposals, CollectionProjects},
	MutationProjectWrite:     {CollectionProjects},
	MutationClientWrite:      {CollectionClients},
	MutationCatalogWrite:     {CollectionCatalog, CollectionProposals},
	MutationSupplierWrite:    {CollectionSuppliers},
	MutationTransactionWrite: {CollectionBankAccounts},
}

// Dependents returns the collections invalidated by a mutation kind.
func Dependents(m Mutation) []Collection {
	return dependents[m]
}

// Store is a concurrency-safe cache of org-scoped collection snapshots.
type Store struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]interface{})}
}

func entryKey(orgID uuid.UUID, c Collection) string {
	return fmt.Sprintf("%s/%s", orgID, c)
}

// Get returns the cached snapshot for an org's collection, if present.
func (s *Store) Get(orgID uuid.UUID, c Collection) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[entryKey(orgID, c)]
	return v, ok
}

// Put stores a snapshot for an org's collection.
func (s *Store) Put(orgID uuid.UUID, c Collection, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entryKey(orgID, c)] = v
}

// Invalidate drops every collection staled by the mutation kind for the
// given org. Called after each successful write.
func (s *Store) Invalidate(orgID uuid.UUID, m Mutation) {
	cols := dependents[m]
	if len(cols) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cols {
		delete(s.entries, entryKey(orgID, c))
	}
}
