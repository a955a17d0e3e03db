package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resmatic/internal/repository/memstore"
)

func TestDispatcher_DrainsOnClose(t *testing.T) {
	store := memstore.New()
	d := NewDispatcher(NewLogger(store.AuditLogs()), 10)

	actor := uuid.New()
	d.Record(Event{ActorID: Ptr(actor), Action: ActionUserLoggedIn, TargetType: "user", TargetID: actor.String()})
	d.Record(Event{Action: ActionInviteCreated, Metadata: map[string]string{"role": "WAITER"}})
	d.Close()

	entries := store.AuditLogEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, ActionUserLoggedIn, entries[0].Action)
	assert.Equal(t, actor, *entries[0].ActorID)
	assert.JSONEq(t, `{"role":"WAITER"}`, string(entries[1].Metadata))
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(NewLogger(memstore.New().AuditLogs()), 0)
	d.Close()
	assert.NotPanics(t, d.Close)
}
