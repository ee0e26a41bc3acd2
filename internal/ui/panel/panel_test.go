package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nhle/meeting-tracker/internal/collection/mocks"
	"github.com/nhle/meeting-tracker/internal/entity"
	"github.com/nhle/meeting-tracker/internal/keys"
	"github.com/nhle/meeting-tracker/internal/model"
)

var fixedNow = time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)

// fakeTodos is a minimal todo adapter for exercising the generic panel.
type fakeTodos struct {
	draft *entity.TodoDraft
}

func (f *fakeTodos) Title() string                        { return "Todos" }
func (f *fakeTodos) Noun() string                         { return "todo" }
func (f *fakeTodos) EmptyMessage() string                 { return "Nothing to do." }
func (f *fakeTodos) OrderBy() string                      { return "createdAt" }
func (f *fakeTodos) Filters() []entity.Filter[model.Todo] { return entity.TodoFilters() }
func (f *fakeTodos) Reset()                               { f.draft.Reset() }
func (f *fakeTodos) Load(t model.Todo)                    { f.draft.Load(t) }
func (f *fakeTodos) Fields() []huh.Field {
	return []huh.Field{huh.NewInput().Title("Title").Value(&f.draft.Title)}
}
func (f *fakeTodos) Build(existing *model.Todo, now time.Time, newID string) (model.Todo, error) {
	return f.draft.Build(existing, now, newID)
}
func (f *fakeTodos) Completable(t model.Todo) bool { return !t.IsCompleted() }
func (f *fakeTodos) Complete(t model.Todo, now time.Time) model.Todo {
	return t.Complete(now)
}
func (f *fakeTodos) RenderCard(t model.Todo, _ int, _ time.Time) string { return t.Title }

func newTestPanel(t *testing.T) (Model[model.Todo], *mocks.MockCollection[model.Todo], *fakeTodos) {
	t.Helper()
	ctrl := gomock.NewController(t)
	coll := mocks.NewMockCollection[model.Todo](ctrl)
	ent := &fakeTodos{draft: entity.NewTodoDraft()}

	m := New[model.Todo](context.Background(), coll, ent, keys.DefaultKeyMap(), 80, 30)
	m.now = func() time.Time { return fixedNow }
	m.newID = func() string { return "new-id" }
	return m, coll, ent
}

// deliver runs cmd and feeds the first panel message it yields back into
// m. Spinner ticks and form commands are ignored.
func deliver(t *testing.T, m Model[model.Todo], cmd tea.Cmd) (Model[model.Todo], tea.Cmd) {
	t.Helper()
	msg, ok := panelMsg(cmd)
	require.True(t, ok, "command produced no panel message")

	p, next := m.Update(msg)
	return p.(Model[model.Todo]), next
}

func panelMsg(cmd tea.Cmd) (tea.Msg, bool) {
	if cmd == nil {
		return nil, false
	}
	switch msg := cmd().(type) {
	case loadedMsg[model.Todo], mutatedMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			// Only the spinner tick is immediate among the non-panel
			// commands batched with panel work.
			if got, ok := panelMsg(c); ok {
				return got, true
			}
		}
	}
	return nil, false
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model[model.Todo], s string) (Model[model.Todo], tea.Cmd) {
	p, cmd := m.Update(keyMsg(s))
	return p.(Model[model.Todo]), cmd
}

func todo(id, title, status string) model.Todo {
	return model.Todo{
		ID:        id,
		Title:     title,
		Category:  model.CategoryWork,
		Priority:  model.PriorityMedium,
		Status:    status,
		CreatedAt: fixedNow.Add(-time.Hour),
	}
}

func TestInitFetchesInOrder(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	records := []model.Todo{todo("2", "b", model.TodoStatusPending), todo("1", "a", model.TodoStatusPending)}
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return(records, nil)

	m, _ = deliver(t, m, m.Init())

	assert.Equal(t, entity.StateReady, m.store.State())
	assert.Equal(t, records, m.store.Records())
	assert.Contains(t, m.View(), "b")
}

func TestFetchFailureShowsErrorAndEmptyList(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return(nil, errors.New("permission denied for table todos"))

	m, _ = deliver(t, m, m.Init())

	assert.Equal(t, entity.StateError, m.store.State())
	assert.Contains(t, m.View(), "permission denied for table todos")
	assert.Contains(t, m.View(), "Nothing to do.")
}

func TestRefetchSuccessClearsError(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	gomock.InOrder(
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return(nil, errors.New("offline")),
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{}, nil),
	)

	m, _ = deliver(t, m, m.Init())
	require.Equal(t, "offline", m.store.Err())

	m, cmd := press(m, "r")
	m, _ = deliver(t, m, cmd)
	assert.Empty(t, m.store.Err())
}

func TestCreateSuccessClosesEditorAndRefetches(t *testing.T) {
	m, coll, ent := newTestPanel(t)
	created := todo("new-id", "Write report", model.TodoStatusPending)

	gomock.InOrder(
		coll.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, got model.Todo) error {
				assert.Equal(t, "new-id", got.ID)
				assert.Equal(t, "Write report", got.Title)
				assert.Equal(t, fixedNow, got.CreatedAt)
				assert.Equal(t, model.CategoryPersonal, got.Category)
				assert.Nil(t, got.CompletedAt)
				return nil
			}),
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{created}, nil),
	)

	m, _ = m.openCreate()
	require.True(t, m.Capturing())
	ent.draft.Title = "Write report"

	m, cmd := m.submit()
	assert.True(t, m.saving)
	m, cmd = deliver(t, m, cmd)
	assert.False(t, m.Capturing(), "editor closes on success")
	assert.Equal(t, entity.NewTodoDraft(), ent.draft, "draft is reset")

	m, _ = deliver(t, m, cmd)
	assert.Equal(t, []model.Todo{created}, m.store.Records())
}

func TestCreateFailureKeepsEditorAndDraft(t *testing.T) {
	m, coll, ent := newTestPanel(t)
	coll.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key value violates unique constraint"))

	m, _ = m.openCreate()
	ent.draft.Title = "Write report"
	ent.draft.Priority = model.PriorityHigh

	m, cmd := m.submit()
	m, _ = deliver(t, m, cmd)

	assert.True(t, m.Capturing(), "editor stays open")
	assert.Equal(t, modeEditor, m.mode)
	assert.False(t, m.saving)
	assert.Equal(t, "Write report", ent.draft.Title)
	assert.Equal(t, model.PriorityHigh, ent.draft.Priority)
	assert.Equal(t, "duplicate key value violates unique constraint", m.store.Err())
	assert.Contains(t, m.View(), "duplicate key value")
}

func TestEditSendsFullRecord(t *testing.T) {
	m, coll, ent := newTestPanel(t)
	existing := todo("t1", "Old", model.TodoStatusInProgress)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{existing}, nil)
	m, _ = deliver(t, m, m.Init())

	coll.EXPECT().Update(gomock.Any(), "t1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, got model.Todo) error {
			assert.Equal(t, "t1", got.ID)
			assert.Equal(t, "New", got.Title)
			assert.Equal(t, existing.CreatedAt, got.CreatedAt)
			assert.Equal(t, model.CategoryWork, got.Category)
			assert.Equal(t, model.TodoStatusInProgress, got.Status)
			return nil
		})
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{existing}, nil)

	m, _ = press(m, "e")
	require.Equal(t, modeEditor, m.mode)
	assert.Equal(t, "Old", ent.draft.Title)
	ent.draft.Title = "New"

	m, cmd := m.submit()
	m, cmd = deliver(t, m, cmd)
	m, _ = deliver(t, m, cmd)
	assert.Equal(t, modeList, m.mode)
}

func TestDeleteDeclinedIssuesNoCall(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{todo("t1", "Keep me", model.TodoStatusPending)}, nil)
	m, _ = deliver(t, m, m.Init())

	m, _ = press(m, "d")
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "Keep me")

	m, cmd := m.resolveConfirm(false)
	assert.Nil(t, cmd)
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.store.Records(), 1)
}

func TestDeleteConfirmedRemovesAndRefetches(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	gomock.InOrder(
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{todo("t1", "Drop me", model.TodoStatusPending)}, nil),
		coll.EXPECT().Delete(gomock.Any(), "t1").Return(nil),
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{}, nil),
	)
	m, _ = deliver(t, m, m.Init())

	m, _ = press(m, "d")
	m, cmd := m.resolveConfirm(true)
	m, cmd = deliver(t, m, cmd)
	m, _ = deliver(t, m, cmd)

	assert.Empty(t, m.store.Records())
	assert.Contains(t, m.View(), "Nothing to do.")
}

func TestDeleteFailureKeepsList(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{todo("t1", "Stuck", model.TodoStatusPending)}, nil)
	coll.EXPECT().Delete(gomock.Any(), "t1").Return(errors.New("row is locked"))
	m, _ = deliver(t, m, m.Init())

	m, _ = press(m, "d")
	m, cmd := m.resolveConfirm(true)
	m, next := deliver(t, m, cmd)

	assert.Nil(t, next, "no refetch after a failed delete")
	assert.Equal(t, "row is locked", m.store.Err())
	assert.Len(t, m.store.Records(), 1)
}

func TestEscClosesConfirmWithoutDeleting(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{todo("t1", "x", model.TodoStatusPending)}, nil)
	m, _ = deliver(t, m, m.Init())

	m, _ = press(m, "d")
	p, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, p.Capturing())
}

func TestCompleteSendsCompletedRecord(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	pending := todo("t1", "Ship", model.TodoStatusPending)
	done := pending.Complete(fixedNow)
	gomock.InOrder(
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{pending}, nil),
		coll.EXPECT().Update(gomock.Any(), "t1", done).Return(nil),
		coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{done}, nil),
	)
	m, _ = deliver(t, m, m.Init())
	assert.Contains(t, m.KeyHints(), "x complete")

	m, cmd := press(m, "x")
	m, cmd = deliver(t, m, cmd)
	m, _ = deliver(t, m, cmd)

	assert.NotContains(t, m.KeyHints(), "x complete", "hidden once completed")

	// A completed record ignores the complete key.
	_, cmd = press(m, "x")
	assert.Nil(t, cmd)
}

func TestFilterCycles(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{
		todo("1", "pending one", model.TodoStatusPending),
		todo("2", "wip one", model.TodoStatusInProgress),
		todo("3", "done one", model.TodoStatusCompleted),
	}, nil)
	m, _ = deliver(t, m, m.Init())
	assert.Len(t, m.visible(), 3)

	m, _ = press(m, "f")
	assert.Equal(t, []string{"pending one"}, titlesOf(m.visible()))

	m, _ = press(m, "f")
	assert.Equal(t, []string{"done one"}, titlesOf(m.visible()))

	m, _ = press(m, "f")
	assert.Len(t, m.visible(), 3)
}

func TestSelectionWraps(t *testing.T) {
	m, coll, _ := newTestPanel(t)
	coll.EXPECT().List(gomock.Any(), "createdAt", false).Return([]model.Todo{
		todo("1", "a", model.TodoStatusPending),
		todo("2", "b", model.TodoStatusPending),
	}, nil)
	m, _ = deliver(t, m, m.Init())

	m, _ = press(m, "k")
	assert.Equal(t, 1, m.selected)
	m, _ = press(m, "j")
	assert.Equal(t, 0, m.selected)
}

func TestStaleMessagesAreDropped(t *testing.T) {
	m, _, _ := newTestPanel(t)
	other, _, _ := newTestPanel(t)

	p, _ := m.Update(loadedMsg[model.Todo]{panel: other.id, records: []model.Todo{todo("x", "ghost", model.TodoStatusPending)}})
	assert.Empty(t, p.(Model[model.Todo]).store.Records())
}

func TestClickOutsideModalDismisses(t *testing.T) {
	m, _, _ := newTestPanel(t)
	m = m.Resize(80, 30, 3).(Model[model.Todo])
	m, _ = m.openCreate()

	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	p, _ := m.Update(click(40, 3+15))
	assert.True(t, p.Capturing(), "click inside keeps the editor open")

	p, _ = m.Update(click(0, 3))
	assert.False(t, p.Capturing(), "click outside closes the editor")
}

func TestEscClosesEditorWithoutSaving(t *testing.T) {
	m, _, ent := newTestPanel(t)
	m, _ = m.openCreate()
	ent.draft.Title = "unsaved"

	p, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, p.Capturing())
}

func titlesOf(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}
