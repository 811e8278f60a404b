package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceManager tracks what every connected user is doing in the editor:
// pointer position over the preview, selected clip IDs, and playhead frame.
// One entry per user, replaced wholesale on each update — partial presence
// merges are not worth the bookkeeping at update rates of a few per second.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> latest presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

// Update records a user's latest presence.
func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = p
}

// Remove forgets a user, typically when their last session leaves the room.
func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

// Snapshot returns a copy of the current presence map.
func (pm *PresenceManager) Snapshot() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	out := make(map[string]*PresencePayload, len(pm.presences))
	for userID, p := range pm.presences {
		out[userID] = p
	}
	return out
}

// StateMessage packages the whole room's presence for a newly joined client,
// so their cursors and playheads appear without waiting for the next update.
func (pm *PresenceManager) StateMessage() *Message {
	payload, err := json.Marshal(PresenceStatePayload{Presences: pm.Snapshot()})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
