package outfit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistryMintsIDs(t *testing.T) {
	reg := newSessionRegistry(DefaultHistorySize, 4, time.Hour)

	id, history := reg.acquire("not-a-uuid")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotNil(t, history)

	again, sameHistory := reg.acquire(" " + id + " ")
	require.Equal(t, id, again)
	require.Same(t, history, sameHistory)
}

func TestSessionRegistryEvictsLeastRecentlySeen(t *testing.T) {
	reg := newSessionRegistry(DefaultHistorySize, 2, time.Hour)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	first, _ := reg.acquire("")
	now = now.Add(time.Minute)
	second, _ := reg.acquire("")
	now = now.Add(time.Minute)
	reg.acquire(first)
	now = now.Add(time.Minute)
	reg.acquire("")

	require.Equal(t, 2, reg.len())
	_, ok := reg.sessions[second]
	require.False(t, ok)
	_, ok = reg.sessions[first]
	require.True(t, ok)
}

func TestSessionRegistryExpiresIdleSessions(t *testing.T) {
	reg := newSessionRegistry(DefaultHistorySize, 10, time.Minute)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	id, history := reg.acquire("")
	history.Record(recsFor(1))

	now = now.Add(2 * time.Minute)
	sameID, fresh := reg.acquire(id)
	require.Equal(t, id, sameID)
	require.Zero(t, fresh.Len())
}
