package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/cart"
	"salesdesk/internal/catalog"
	"salesdesk/internal/checkout"
	"salesdesk/internal/domain"
)

// Store keeps the live sessions in memory, keyed by a uuid handle.
type Store struct {
	catalog     *catalog.Index
	refs        *catalog.ReferenceData
	newWorkflow func() *checkout.Workflow

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(idx *catalog.Index, refs *catalog.ReferenceData, newWorkflow func() *checkout.Workflow) *Store {
	return &Store{
		catalog:     idx,
		refs:        refs,
		newWorkflow: newWorkflow,
		sessions:    make(map[string]*Session),
	}
}

// Create opens an empty composition session.
func (st *Store) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		catalog:   st.catalog,
		refs:      st.refs,
		workflow:  st.newWorkflow(),
		engine:    cart.NewEngine(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session or domain.ErrNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// Delete abandons the session. Any in-flight submission finishes on its own;
// the handle is simply forgotten.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
