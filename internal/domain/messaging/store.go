package messaging

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns conversations, their messages and per-user read cursors. All
// operations are safe for concurrent use; find-then-create runs under a single
// lock so the same participant pair and subject can never produce two threads.
type Store struct {
	mu            sync.RWMutex
	conversations []*Conversation
	byID          map[string]*Conversation
	byKey         map[string]*Conversation
	cursors       map[string]map[string]int64
	lastStamp     int64
	now           func() time.Time
}

// NewStore builds an empty store using wall-clock time.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock builds an empty store with an injectable clock.
func NewStoreWithClock(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		byID:    make(map[string]*Conversation),
		byKey:   make(map[string]*Conversation),
		cursors: make(map[string]map[string]int64),
		now:     now,
	}
}

// FindOrCreate returns the conversation between the two users about the given
// subject, creating it when none exists yet. Participant order does not matter
// for the lookup; repeated calls with the same arguments return the same id.
func (s *Store) FindOrCreate(userA, userB, subject string) (string, error) {
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	subject = strings.TrimSpace(subject)
	if userA == "" || userB == "" || userA == userB {
		return "", ErrInvalidParticipants
	}
	if subject == "" {
		return "", ErrSubjectRequired
	}

	key := conversationKey(userA, userB, subject)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byKey[key]; ok {
		return existing.ID, nil
	}
	conversation := &Conversation{
		ID:           uuid.NewString(),
		Participants: []string{userA, userB},
		Subject:      subject,
		CreatedAt:    s.now().UTC(),
	}
	s.conversations = append(s.conversations, conversation)
	s.byID[conversation.ID] = conversation
	s.byKey[key] = conversation
	return conversation.ID, nil
}

// Post appends a message to the conversation and advances the sender's read
// cursor so senders never count their own messages as unread.
func (s *Store) Post(conversationID, senderID, text string) (Message, error) {
	senderID = strings.TrimSpace(senderID)
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrTextRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conversation, ok := s.byID[conversationID]
	if !ok {
		return Message{}, ErrConversationNotFound
	}
	if !conversation.HasParticipant(senderID) {
		return Message{}, ErrNotAParticipant
	}
	message := Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Text:           text,
		SentAt:         s.stamp(),
	}
	conversation.Messages = append(conversation.Messages, message)
	s.setCursor(conversation.ID, senderID, message.SentAt)
	return message, nil
}

// MarkRead moves the user's read cursor past every message currently in the
// conversation. Calls for non-participants are silently ignored so the UI can
// invoke it speculatively.
func (s *Store) MarkRead(conversationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation, ok := s.byID[conversationID]
	if !ok {
		return ErrConversationNotFound
	}
	if !conversation.HasParticipant(strings.TrimSpace(userID)) {
		return nil
	}
	s.setCursor(conversation.ID, strings.TrimSpace(userID), s.stamp())
	return nil
}

// UnreadCount counts counterpart messages newer than the user's read cursor.
// A never-read conversation counts every counterpart message.
func (s *Store) UnreadCount(conversationID, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conversation, ok := s.byID[conversationID]
	if !ok {
		return 0, ErrConversationNotFound
	}
	return s.unreadLocked(conversation, userID), nil
}

// TotalUnreadFor sums unread counts across every conversation the user
// participates in.
func (s *Store) TotalUnreadFor(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, conversation := range s.conversations {
		if conversation.HasParticipant(userID) {
			total += s.unreadLocked(conversation, userID)
		}
	}
	return total
}

// Get returns a defensive copy of a conversation.
func (s *Store) Get(conversationID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conversation, ok := s.byID[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return cloneConversation(conversation), nil
}

// ConversationsFor returns copies of every conversation the user participates
// in, in insertion order.
func (s *Store) ConversationsFor(userID string) []*Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Conversation, 0)
	for _, conversation := range s.conversations {
		if conversation.HasParticipant(userID) {
			result = append(result, cloneConversation(conversation))
		}
	}
	return result
}

// Len reports the number of conversations in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

func (s *Store) unreadLocked(conversation *Conversation, userID string) int {
	cursor := int64(0)
	if userCursors, ok := s.cursors[conversation.ID]; ok {
		cursor = userCursors[userID]
	}
	count := 0
	for _, message := range conversation.Messages {
		if message.SenderID != userID && message.SentAt > cursor {
			count++
		}
	}
	return count
}

func (s *Store) setCursor(conversationID, userID string, stamp int64) {
	userCursors, ok := s.cursors[conversationID]
	if !ok {
		userCursors = make(map[string]int64)
		s.cursors[conversationID] = userCursors
	}
	if stamp > userCursors[userID] {
		userCursors[userID] = stamp
	}
}

// stamp returns a unix-millisecond timestamp that is strictly greater than any
// stamp handed out before, even when the wall clock has not advanced.
// Callers must hold the write lock.
func (s *Store) stamp() int64 {
	stamp := s.now().UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp
	return stamp
}

func conversationKey(userA, userB, subject string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "\x00" + userB + "\x00" + subject
}
