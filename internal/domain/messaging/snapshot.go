package messaging

// Snapshot is a plain serializable copy of the full store state. It is the
// contract with the key-value persistence layer: Restore replaces in-memory
// state wholesale, there are no merge semantics.
type Snapshot struct {
	Conversations []Conversation              `json:"conversations"`
	ReadCursors   map[string]map[string]int64 `json:"read_cursors"`
	LastStamp     int64                       `json:"last_stamp"`
}

// Snapshot captures the current state of the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		Conversations: make([]Conversation, 0, len(s.conversations)),
		ReadCursors:   make(map[string]map[string]int64, len(s.cursors)),
		LastStamp:     s.lastStamp,
	}
	for _, conversation := range s.conversations {
		snapshot.Conversations = append(snapshot.Conversations, *cloneConversation(conversation))
	}
	for conversationID, userCursors := range s.cursors {
		copied := make(map[string]int64, len(userCursors))
		for userID, stamp := range userCursors {
			copied[userID] = stamp
		}
		snapshot.ReadCursors[conversationID] = copied
	}
	return snapshot
}

// Restore replaces the store's state with the snapshot. Indexes and the
// monotonic stamp floor are re-derived so later posts keep strictly
// increasing timestamps.
func (s *Store) Restore(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversations := make([]*Conversation, 0, len(snapshot.Conversations))
	byID := make(map[string]*Conversation, len(snapshot.Conversations))
	byKey := make(map[string]*Conversation, len(snapshot.Conversations))
	lastStamp := snapshot.LastStamp

	for i := range snapshot.Conversations {
		conversation := cloneConversation(&snapshot.Conversations[i])
		if conversation.ID == "" || len(conversation.Participants) != 2 {
			return ErrInvalidParticipants
		}
		conversations = append(conversations, conversation)
		byID[conversation.ID] = conversation
		byKey[conversationKey(conversation.Participants[0], conversation.Participants[1], conversation.Subject)] = conversation
		for _, message := range conversation.Messages {
			if message.SentAt > lastStamp {
				lastStamp = message.SentAt
			}
		}
	}

	cursors := make(map[string]map[string]int64, len(snapshot.ReadCursors))
	for conversationID, userCursors := range snapshot.ReadCursors {
		copied := make(map[string]int64, len(userCursors))
		for userID, stamp := range userCursors {
			copied[userID] = stamp
			if stamp > lastStamp {
				lastStamp = stamp
			}
		}
		cursors[conversationID] = copied
	}

	s.conversations = conversations
	s.byID = byID
	s.byKey = byKey
	s.cursors = cursors
	s.lastStamp = lastStamp
	return nil
}
