package collection_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/model"
	"github.com/nhle/meeting-tracker/tests/testutil"
)

var base = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newMeeting(title string, date time.Time) model.Meeting {
	return model.Meeting{
		ID:        uuid.NewString(),
		Title:     title,
		Date:      date,
		Duration:  45,
		CreatedAt: base,
	}
}

func TestSQLMeetingsOrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestClient(t)

	older := newMeeting("Planning", base.Add(-48*time.Hour))
	newer := newMeeting("Retro", base.Add(24*time.Hour))
	middle := newMeeting("Standup", base)
	for _, m := range []model.Meeting{older, newer, middle} {
		require.NoError(t, c.Meetings.Insert(ctx, m))
	}

	got, err := c.Meetings.List(ctx, "date", false)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Retro", "Standup", "Planning"},
		[]string{got[0].Title, got[1].Title, got[2].Title})

	asc, err := c.Meetings.List(ctx, "date", true)
	require.NoError(t, err)
	assert.Equal(t, "Planning", asc[0].Title)
}

func TestSQLListEmpty(t *testing.T) {
	c := testutil.NewTestClient(t)

	got, err := c.Todos.List(context.Background(), "createdAt", false)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLListRejectsUnknownColumn(t *testing.T) {
	c := testutil.NewTestClient(t)

	_, err := c.Todos.List(context.Background(), "title; DROP TABLE todos", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")
}

func TestSQLOptionalFieldsRoundTripAsNull(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestClient(t)

	m := newMeeting("1:1", base)
	m.Notes = testutil.StrPtr("bring agenda")
	require.NoError(t, c.Meetings.Insert(ctx, m))

	got, err := c.Meetings.List(ctx, "date", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Description)
	assert.Nil(t, got[0].Attendees)
	require.NotNil(t, got[0].Notes)
	assert.Equal(t, "bring agenda", *got[0].Notes)
	assert.True(t, base.Equal(got[0].Date))
	assert.Equal(t, 45, got[0].Duration)
}

func TestSQLUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestClient(t)

	todo := model.Todo{
		ID:        uuid.NewString(),
		Title:     "File taxes",
		Category:  model.CategoryPersonal,
		Priority:  model.PriorityHigh,
		Status:    model.TodoStatusPending,
		CreatedAt: base,
	}
	require.NoError(t, c.Todos.Insert(ctx, todo))

	done := todo.Complete(base.Add(time.Hour))
	done.CreatedAt = base.Add(72 * time.Hour)
	require.NoError(t, c.Todos.Update(ctx, todo.ID, done))

	got, err := c.Todos.List(ctx, "createdAt", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.TodoStatusCompleted, got[0].Status)
	require.NotNil(t, got[0].CompletedAt)
	assert.True(t, base.Add(time.Hour).Equal(*got[0].CompletedAt))
	assert.True(t, base.Equal(got[0].CreatedAt), "createdAt must not change on update")
}

func TestSQLUpdateMissingRecord(t *testing.T) {
	c := testutil.NewTestClient(t)

	l := model.Learning{
		ID:     uuid.NewString(),
		Title:  "SICP",
		Type:   model.LearningTypeBook,
		Status: model.LearningStatusInProgress,
	}
	err := c.Learnings.Update(context.Background(), l.ID, l)
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestSQLUpdateRejectsMismatchedID(t *testing.T) {
	c := testutil.NewTestClient(t)

	l := model.Learning{ID: "a", Title: "x", Type: model.LearningTypeBook, Status: model.LearningStatusInProgress}
	err := c.Learnings.Update(context.Background(), "b", l)
	require.Error(t, err)
	assert.NotErrorIs(t, err, collection.ErrNotFound)
}

func TestSQLDelete(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestClient(t)

	rating := 4
	l := model.Learning{
		ID:        uuid.NewString(),
		Title:     "Designing Data-Intensive Applications",
		Type:      model.LearningTypeBook,
		Status:    model.LearningStatusInProgress,
		Rating:    &rating,
		CreatedAt: base,
	}
	require.NoError(t, c.Learnings.Insert(ctx, l))

	got, err := c.Learnings.List(ctx, "createdAt", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Rating)
	assert.Equal(t, 4, *got[0].Rating)

	require.NoError(t, c.Learnings.Delete(ctx, l.ID))
	assert.ErrorIs(t, c.Learnings.Delete(ctx, l.ID), collection.ErrNotFound)

	got, err = c.Learnings.List(ctx, "createdAt", false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLInsertRequiresID(t *testing.T) {
	c := testutil.NewTestClient(t)

	err := c.Meetings.Insert(context.Background(), model.Meeting{Title: "x", Date: base})
	assert.Error(t, err)
}

func TestSQLRejectsInvalidStatus(t *testing.T) {
	c := testutil.NewTestClient(t)

	todo := model.Todo{
		ID:        uuid.NewString(),
		Title:     "x",
		Category:  model.CategoryWork,
		Priority:  model.PriorityLow,
		Status:    "blocked",
		CreatedAt: base,
	}
	assert.Error(t, c.Todos.Insert(context.Background(), todo))
}

func TestOpenSQLRerunsMigrationsIdempotently(t *testing.T) {
	ctx := context.Background()
	dsn := t.TempDir() + "/tracker.db"

	db, err := collection.OpenSQL(ctx, model.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, collection.NewSQLClient(db, model.DriverSQLite).Meetings.Insert(ctx, newMeeting("kept", base)))
	require.NoError(t, db.Close())

	db, err = collection.OpenSQL(ctx, model.DriverSQLite, dsn)
	require.NoError(t, err)
	c := collection.NewSQLClient(db, model.DriverSQLite)
	defer c.Close()

	var version int
	require.NoError(t, db.Get(&version, "SELECT MAX(version) FROM schema_version"))
	assert.Equal(t, 2, version)

	got, err := c.Meetings.List(ctx, "date", false)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := collection.Open(context.Background(), model.BackendConfig{Driver: "mongo"})
	assert.Error(t, err)
}

func TestOpenRESTRequiresServiceKey(t *testing.T) {
	_, err := collection.Open(context.Background(), model.BackendConfig{
		Driver: model.DriverREST,
		URL:    "https://example.invalid",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker auth set-key")
}
