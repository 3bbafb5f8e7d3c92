package app

import "sync"

// Conn is a live transport handle for one connected session
type Conn interface {
	Send(message any) error
	Close() error
}

// Registry maps session ids to live connections and tracks game-room
// membership. It is safe for concurrent join/leave across games.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Conn                // sessionID -> conn
	rooms map[string]map[string]struct{} // gameID -> session ids
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Conn),
		rooms: make(map[string]map[string]struct{}),
	}
}

// Register adds a session's connection to a game room. Registering an
// already-known session replaces its connection, which covers reconnects.
func (r *Registry) Register(gameID, sessionID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[sessionID] = conn
	room, ok := r.rooms[gameID]
	if !ok {
		room = make(map[string]struct{})
		r.rooms[gameID] = room
	}
	room[sessionID] = struct{}{}
}

// Unregister removes a session from its room, dropping the room entry when
// it becomes empty
func (r *Registry) Unregister(gameID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, sessionID)
	if room, ok := r.rooms[gameID]; ok {
		delete(room, sessionID)
		if len(room) == 0 {
			delete(r.rooms, gameID)
		}
	}
}

// Evict removes a session and returns its connection so the caller can send
// a final notice before closing it
func (r *Registry) Evict(gameID, sessionID string) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[sessionID]
	delete(r.conns, sessionID)
	if room, roomOK := r.rooms[gameID]; roomOK {
		delete(room, sessionID)
		if len(room) == 0 {
			delete(r.rooms, gameID)
		}
	}
	return conn, ok
}

// Conn returns the live connection for a session, if any
func (r *Registry) Conn(sessionID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[sessionID]
	return conn, ok
}

// Sessions returns the session ids currently in a game room
func (r *Registry) Sessions(gameID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[gameID]
	sessions := make([]string, 0, len(room))
	for sessionID := range room {
		sessions = append(sessions, sessionID)
	}
	return sessions
}

// SessionCount returns the number of live connections across all rooms
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
