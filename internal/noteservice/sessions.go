package noteservice

import "sync"

// syncMap is a mutex-guarded note-ID to session map. The stdlib sync.Map
// loses the concrete type; the vault holds few open sessions, so a plain
// map under a mutex is simpler and type-safe.
type syncMap struct {
	mu sync.Mutex
	m  map[string]*session
}

func (sm *syncMap) Load(id string) (*session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sess, ok := sm.m[id]
	return sess, ok
}

// LoadOrStore stores sess under id unless another session won the race, in
// which case the existing one is returned.
func (sm *syncMap) LoadOrStore(id string, sess *session) *session {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if existing, ok := sm.m[id]; ok {
		return existing
	}
	if sm.m == nil {
		sm.m = make(map[string]*session)
	}
	sm.m[id] = sess
	return sess
}

func (sm *syncMap) Delete(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.m, id)
}
