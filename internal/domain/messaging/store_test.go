package messaging

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenClock() func() time.Time {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestFindOrCreateIsIdempotentAcrossParticipantOrder(t *testing.T) {
	store := NewStore()

	first, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	second, err := store.FindOrCreate("owner-1", "tenant-1", "Sunshine PG")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Len())
}

func TestFindOrCreateSeparatesBySubject(t *testing.T) {
	store := NewStore()

	first, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	second, err := store.FindOrCreate("tenant-1", "owner-1", "Metro Heights Studio")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, store.Len())
}

func TestFindOrCreateValidation(t *testing.T) {
	store := NewStore()

	_, err := store.FindOrCreate("", "owner-1", "Sunshine PG")
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	_, err = store.FindOrCreate("tenant-1", "tenant-1", "Sunshine PG")
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	_, err = store.FindOrCreate("tenant-1", "owner-1", "   ")
	assert.ErrorIs(t, err, ErrSubjectRequired)

	assert.Equal(t, 0, store.Len())
}

func TestFindOrCreateConcurrentCallsProduceOneConversation(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	ids := make([]string, 32)
	for i := range ids {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
			require.NoError(t, err)
			ids[slot] = id
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestPostStampsAreStrictlyIncreasing(t *testing.T) {
	store := NewStoreWithClock(frozenClock())

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	var last int64
	for i := 0; i < 10; i++ {
		message, err := store.Post(id, "tenant-1", "hello")
		require.NoError(t, err)
		assert.Greater(t, message.SentAt, last)
		last = message.SentAt
	}
}

func TestPostRejectsOutsiders(t *testing.T) {
	store := NewStore()

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	_, err = store.Post(id, "stranger", "let me in")
	assert.ErrorIs(t, err, ErrNotAParticipant)

	_, err = store.Post(id, "tenant-1", "   ")
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = store.Post("missing", "tenant-1", "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestUnreadAccounting(t *testing.T) {
	store := NewStoreWithClock(frozenClock())

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	// Sender reads their own messages implicitly.
	_, err = store.Post(id, "owner-1", "Welcome!")
	require.NoError(t, err)
	_, err = store.Post(id, "owner-1", "Room is ready.")
	require.NoError(t, err)

	ownerUnread, err := store.UnreadCount(id, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 0, ownerUnread)

	tenantUnread, err := store.UnreadCount(id, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 2, tenantUnread)

	// Marking read clears the backlog.
	require.NoError(t, store.MarkRead(id, "tenant-1"))
	tenantUnread, err = store.UnreadCount(id, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 0, tenantUnread)

	// Only messages after the cursor count again.
	_, err = store.Post(id, "owner-1", "Any update?")
	require.NoError(t, err)
	tenantUnread, err = store.UnreadCount(id, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 1, tenantUnread)
}

func TestUnreadAlternatingThread(t *testing.T) {
	store := NewStoreWithClock(frozenClock())

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	script := []struct {
		sender string
		text   string
	}{
		{"owner-1", "Hello! Welcome to Sunshine PG."},
		{"tenant-1", "Hi! I'm interested in the single room."},
		{"owner-1", "Great! When would you like to visit?"},
		{"owner-1", "We have availability from March 1st."},
		{"tenant-1", "Can I visit this Saturday?"},
		{"owner-1", "When can you visit?"},
	}
	for _, step := range script {
		_, err := store.Post(id, step.sender, step.text)
		require.NoError(t, err)
	}

	// The tenant's cursor sits at their last message; only the owner's final
	// message is newer.
	tenantUnread, err := store.UnreadCount(id, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 1, tenantUnread)

	ownerUnread, err := store.UnreadCount(id, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 0, ownerUnread)
}

func TestMarkReadEdgeCases(t *testing.T) {
	store := NewStore()

	err := store.MarkRead("missing", "tenant-1")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	// Non-participants are ignored, not rejected.
	assert.NoError(t, store.MarkRead(id, "stranger"))
}

func TestTotalUnreadSpansConversations(t *testing.T) {
	store := NewStoreWithClock(frozenClock())

	first, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)
	second, err := store.FindOrCreate("tenant-1", "owner-2", "Royal Girls Hostel")
	require.NoError(t, err)

	_, err = store.Post(first, "owner-1", "Hello!")
	require.NoError(t, err)
	_, err = store.Post(second, "owner-2", "Hi there!")
	require.NoError(t, err)
	_, err = store.Post(second, "owner-2", "Room available from March.")
	require.NoError(t, err)

	assert.Equal(t, 3, store.TotalUnreadFor("tenant-1"))
	assert.Equal(t, 0, store.TotalUnreadFor("owner-1"))
	assert.Equal(t, 0, store.TotalUnreadFor("stranger"))
}

func TestConversationsForKeepsInsertionOrder(t *testing.T) {
	store := NewStore()

	first, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)
	_, err = store.FindOrCreate("tenant-2", "owner-1", "Sunshine PG")
	require.NoError(t, err)
	third, err := store.FindOrCreate("tenant-1", "owner-2", "Royal Girls Hostel")
	require.NoError(t, err)

	threads := store.ConversationsFor("tenant-1")
	require.Len(t, threads, 2)
	assert.Equal(t, first, threads[0].ID)
	assert.Equal(t, third, threads[1].ID)
}

func TestGetReturnsDefensiveCopy(t *testing.T) {
	store := NewStore()

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)
	_, err = store.Post(id, "owner-1", "Hello!")
	require.NoError(t, err)

	conversation, err := store.Get(id)
	require.NoError(t, err)
	conversation.Messages[0].Text = "tampered"
	conversation.Participants[0] = "tampered"

	fresh, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", fresh.Messages[0].Text)
	assert.Equal(t, "tenant-1", fresh.Participants[0])
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewStoreWithClock(frozenClock())

	id, err := store.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)
	_, err = store.Post(id, "owner-1", "Hello!")
	require.NoError(t, err)
	_, err = store.Post(id, "tenant-1", "Hi!")
	require.NoError(t, err)
	require.NoError(t, store.MarkRead(id, "tenant-1"))

	snapshot := store.Snapshot()

	restored := NewStoreWithClock(frozenClock())
	require.NoError(t, restored.Restore(snapshot))

	assert.Equal(t, 1, restored.Len())
	conversation, err := restored.Get(id)
	require.NoError(t, err)
	assert.Len(t, conversation.Messages, 2)

	unread, err := restored.UnreadCount(id, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	// Lookup by participants still works after a restore.
	again, err := restored.FindOrCreate("owner-1", "tenant-1", "Sunshine PG")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// New stamps stay ahead of everything restored.
	message, err := restored.Post(id, "owner-1", "Still there?")
	require.NoError(t, err)
	assert.Greater(t, message.SentAt, conversation.Messages[1].SentAt)
}

func TestRestoreReplacesExistingState(t *testing.T) {
	store := NewStore()
	stale, err := store.FindOrCreate("tenant-9", "owner-9", "Old Thread")
	require.NoError(t, err)

	other := NewStore()
	id, err := other.FindOrCreate("tenant-1", "owner-1", "Sunshine PG")
	require.NoError(t, err)

	require.NoError(t, store.Restore(other.Snapshot()))

	assert.Equal(t, 1, store.Len())
	_, err = store.Get(stale)
	assert.ErrorIs(t, err, ErrConversationNotFound)
	_, err = store.Get(id)
	assert.NoError(t, err)
}

func TestRestoreRejectsMalformedConversations(t *testing.T) {
	store := NewStore()

	err := store.Restore(Snapshot{Conversations: []Conversation{{
		ID:           "conv-1",
		Participants: []string{"only-one"},
		Subject:      "Broken",
	}}})
	assert.ErrorIs(t, err, ErrInvalidParticipants)
}
