package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charitytools/bidcraft/internal/model"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := NewSessionStore()

	sess := store.Create(&model.Session{FunderName: "Comic Relief", Mode: model.ModeNotes})

	require.NotEmpty(t, sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comic Relief", got.FunderName)
}

func TestSessionStore_GetUnknown(t *testing.T) {
	_, err := NewSessionStore().Get("nope")
	assert.Error(t, err)
}

func TestSessionStore_Update(t *testing.T) {
	store := NewSessionStore()
	sess := store.Create(&model.Session{FunderName: "Comic Relief"})

	updated, err := store.Update(sess.ID, func(s *model.Session) error {
		s.Answers[model.FieldAmount] = "£10,000"
		s.NotSure[model.FieldEvidence] = true
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "£10,000", updated.Answers[model.FieldAmount])
	assert.True(t, updated.NotSure[model.FieldEvidence])
	assert.False(t, updated.UpdatedAt.Before(sess.CreatedAt))
}

func TestSessionStore_UpdateErrorLeavesSessionUnchanged(t *testing.T) {
	store := NewSessionStore()
	sess := store.Create(&model.Session{FunderName: "Comic Relief"})

	_, err := store.Update(sess.ID, func(s *model.Session) error {
		s.Answers[model.FieldAmount] = "£10,000"
		return assert.AnError
	})
	require.Error(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Answers)
}

func TestSessionStore_SnapshotIsolation(t *testing.T) {
	store := NewSessionStore()
	sess := store.Create(&model.Session{FunderName: "Comic Relief"})

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	got.Answers[model.FieldAmount] = "tampered"

	fresh, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.NotContains(t, fresh.Answers, model.FieldAmount)
}
