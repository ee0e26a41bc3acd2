// Package panel implements the list/editor/confirm view shared by every
// tab. A panel owns its list snapshot and draft; nothing is shared
// between panels.
package panel

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/entity"
	"github.com/nhle/meeting-tracker/internal/keys"
	"github.com/nhle/meeting-tracker/internal/model"
	"github.com/nhle/meeting-tracker/internal/theme"
)

// Panel is a mounted tab body as seen by the application shell.
type Panel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Panel, tea.Cmd)
	View() string

	// Resize sets the panel area; originY is its first screen row.
	Resize(width, height, originY int) Panel

	// Capturing reports whether the panel wants every key, i.e. a modal
	// is open.
	Capturing() bool

	// KeyHints returns the status bar hints for the current mode.
	KeyHints() string

	// Refresh re-fetches the list.
	Refresh() (Panel, tea.Cmd)

	// New opens the editor for a new record.
	New() (Panel, tea.Cmd)
}

type mode int

const (
	modeList mode = iota
	modeEditor
	modeConfirmDelete
)

type operation string

const (
	opCreate   operation = "create"
	opUpdate   operation = "update"
	opDelete   operation = "delete"
	opComplete operation = "complete"
)

// panelSeq numbers panels so replies addressed to a discarded panel are
// dropped by its successor.
var panelSeq atomic.Int64

type loadedMsg[T any] struct {
	panel   int64
	records []T
	err     error
}

type mutatedMsg struct {
	panel int64
	op    operation
	err   error
}

// confirmBinding keeps the delete answer on the heap for huh.
type confirmBinding struct {
	yes bool
}

// Model is the generic panel for records of type T.
type Model[T model.Record] struct {
	id     int64
	ctx    context.Context
	coll   collection.Collection[T]
	entity Entity[T]
	keys   *keys.KeyMap

	store    *entity.ListStore[T]
	filters  []entity.Filter[T]
	filter   int
	selected int

	mode        mode
	form        *huh.Form
	confirmForm *huh.Form
	confirm     *confirmBinding
	editing     *T
	saving      bool

	spinner spinner.Model

	width   int
	height  int
	originY int

	now   func() time.Time
	newID func() string
}

// New creates a panel listing coll through ent. Nothing is fetched until
// Init runs.
func New[T model.Record](
	ctx context.Context,
	coll collection.Collection[T],
	ent Entity[T],
	k *keys.KeyMap,
	width, height int,
) Model[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model[T]{
		id:      panelSeq.Add(1),
		ctx:     ctx,
		coll:    coll,
		entity:  ent,
		keys:    k,
		store:   entity.NewListStore[T](),
		filters: ent.Filters(),
		confirm: &confirmBinding{},
		spinner: sp,
		width:   width,
		height:  height,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Init starts the first fetch.
func (m Model[T]) Init() tea.Cmd {
	m.store.Begin()
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

// Update handles messages.
func (m Model[T]) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		if msg.panel != m.id {
			return m, nil
		}
		m.store.Resolve(msg.records, msg.err)
		if msg.err != nil {
			m.logger().Warn().Err(msg.err).Str("collection", m.collectionName()).Msg("fetch failed")
		}
		m.clampSelection()
		return m, nil

	case mutatedMsg:
		if msg.panel != m.id {
			return m, nil
		}
		return m.handleMutated(msg)

	case spinner.TickMsg:
		if !m.store.Loading() && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeEditor:
			if key.Matches(msg, m.keys.Back) {
				return m.closeModal(), nil
			}
			return m.updateEditor(msg)
		case modeConfirmDelete:
			if key.Matches(msg, m.keys.Back) {
				return m.closeModal(), nil
			}
			return m.updateConfirm(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	// Forms exchange internal messages between fields and groups.
	switch m.mode {
	case modeEditor:
		return m.updateEditor(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model[T]) handleListKey(msg tea.KeyMsg) (Panel, tea.Cmd) {
	visible := m.visible()

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(visible) > 0 {
			m.selected = (m.selected + 1) % len(visible)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(visible) > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = len(visible) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m.openCreate()

	case key.Matches(msg, m.keys.Edit):
		if r, ok := m.current(); ok {
			return m.openEdit(r)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.current(); ok {
			return m.openConfirm(r)
		}
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if r, ok := m.current(); ok && m.entity.Completable(r) {
			return m.complete(r)
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if len(m.filters) > 0 {
			m.filter = (m.filter + 1) % len(m.filters)
			m.selected = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.Refresh()
	}
	return m, nil
}

// Refresh re-fetches the list.
func (m Model[T]) Refresh() (Panel, tea.Cmd) {
	m.store.Begin()
	return m, tea.Batch(m.fetch(), m.spinner.Tick)
}

// New opens the editor for a new record.
func (m Model[T]) New() (Panel, tea.Cmd) {
	if m.mode != modeList {
		return m, nil
	}
	return m.openCreate()
}

func (m Model[T]) openCreate() (Model[T], tea.Cmd) {
	m.entity.Reset()
	m.editing = nil
	m.mode = modeEditor
	m.form = m.buildEditor()
	return m, m.form.Init()
}

func (m Model[T]) openEdit(r T) (Model[T], tea.Cmd) {
	m.entity.Load(r)
	m.editing = &r
	m.mode = modeEditor
	m.form = m.buildEditor()
	return m, m.form.Init()
}

func (m Model[T]) openConfirm(r T) (Model[T], tea.Cmd) {
	m.editing = &r
	m.confirm.yes = false
	m.mode = modeConfirmDelete
	m.confirmForm = m.buildConfirm(r)
	return m, m.confirmForm.Init()
}

// closeModal dismisses the editor or confirmation without saving.
func (m Model[T]) closeModal() Model[T] {
	m.mode = modeList
	m.form = nil
	m.confirmForm = nil
	m.editing = nil
	m.saving = false
	return m
}

func (m Model[T]) buildEditor() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(m.entity.Fields()...),
	).WithShowHelp(true).WithWidth(m.modalWidth())
}

func (m Model[T]) buildConfirm(r T) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %q?", m.entity.Noun(), r.GetTitle())).
				Description("This cannot be undone.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.confirm.yes),
		),
	).WithWidth(m.modalWidth())
}

func (m Model[T]) updateEditor(msg tea.Msg) (Panel, tea.Cmd) {
	if m.form == nil || m.saving {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		return m.closeModal(), nil
	}
	return m, cmd
}

func (m Model[T]) updateConfirm(msg tea.Msg) (Panel, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	switch m.confirmForm.State {
	case huh.StateCompleted:
		return m.resolveConfirm(m.confirm.yes)
	case huh.StateAborted:
		return m.closeModal(), nil
	}
	return m, cmd
}

// submit builds the record from the draft and stores it. On a build
// error the editor stays open with the draft intact.
func (m Model[T]) submit() (Model[T], tea.Cmd) {
	m.store.ClearErr()

	record, err := m.entity.Build(m.editing, m.now(), m.newID())
	if err != nil {
		m.store.Report(err)
		m.form = m.buildEditor()
		return m, m.form.Init()
	}

	m.saving = true
	coll := m.coll
	ctx := m.ctx
	id := m.id
	if m.editing == nil {
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return mutatedMsg{panel: id, op: opCreate, err: coll.Insert(ctx, record)}
		})
	}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return mutatedMsg{panel: id, op: opUpdate, err: coll.Update(ctx, record.GetID(), record)}
	})
}

// resolveConfirm acts on the delete answer. Declining issues no call.
func (m Model[T]) resolveConfirm(yes bool) (Model[T], tea.Cmd) {
	target := m.editing
	m = m.closeModal()
	if !yes || target == nil {
		return m, nil
	}

	coll := m.coll
	ctx := m.ctx
	id := m.id
	recordID := (*target).GetID()
	return m, func() tea.Msg {
		return mutatedMsg{panel: id, op: opDelete, err: coll.Delete(ctx, recordID)}
	}
}

// complete marks r completed and writes the full record.
func (m Model[T]) complete(r T) (Model[T], tea.Cmd) {
	m.store.ClearErr()
	done := m.entity.Complete(r, m.now())

	coll := m.coll
	ctx := m.ctx
	id := m.id
	return m, func() tea.Msg {
		return mutatedMsg{panel: id, op: opComplete, err: coll.Update(ctx, done.GetID(), done)}
	}
}

func (m Model[T]) handleMutated(msg mutatedMsg) (Panel, tea.Cmd) {
	log := m.logger()

	if msg.err != nil {
		log.Warn().Err(msg.err).
			Str("collection", m.collectionName()).
			Str("op", string(msg.op)).
			Msg("mutation failed")
		m.store.Report(msg.err)

		if msg.op == opCreate || msg.op == opUpdate {
			m.saving = false
			m.mode = modeEditor
			m.form = m.buildEditor()
			return m, m.form.Init()
		}
		return m, nil
	}

	log.Debug().
		Str("collection", m.collectionName()).
		Str("op", string(msg.op)).
		Msg("mutation succeeded")

	if msg.op == opCreate || msg.op == opUpdate {
		m.entity.Reset()
		m = m.closeModal()
	}
	return m.Refresh()
}

func (m Model[T]) handleMouse(msg tea.MouseMsg) (Panel, tea.Cmd) {
	if m.mode == modeList {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.insideModal(msg.X, msg.Y) {
		return m.closeModal(), nil
	}
	switch m.mode {
	case modeEditor:
		return m.updateEditor(msg)
	default:
		return m.updateConfirm(msg)
	}
}

// insideModal reports whether the screen cell (x, y) falls on the modal
// box as placed by View.
func (m Model[T]) insideModal(x, y int) bool {
	bw, bh := lipgloss.Size(m.modalView())
	left := max(0, (m.width-bw)/2)
	top := m.originY + max(0, (m.height-bh)/2)
	return x >= left && x < left+bw && y >= top && y < top+bh
}

func (m Model[T]) fetch() tea.Cmd {
	coll := m.coll
	ctx := m.ctx
	id := m.id
	orderBy := m.entity.OrderBy()
	return func() tea.Msg {
		records, err := coll.List(ctx, orderBy, false)
		return loadedMsg[T]{panel: id, records: records, err: err}
	}
}

// visible returns the records passing the active filter.
func (m Model[T]) visible() []T {
	records := m.store.Records()
	if len(m.filters) == 0 {
		return records
	}
	return m.filters[m.filter].Apply(records)
}

func (m Model[T]) current() (T, bool) {
	visible := m.visible()
	if m.selected < 0 || m.selected >= len(visible) {
		var zero T
		return zero, false
	}
	return visible[m.selected], true
}

func (m *Model[T]) clampSelection() {
	n := len(m.visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Capturing reports whether a modal is open.
func (m Model[T]) Capturing() bool {
	return m.mode != modeList
}

// Resize sets the panel area.
func (m Model[T]) Resize(width, height, originY int) Panel {
	m.width = width
	m.height = height
	m.originY = originY
	if m.form != nil {
		m.form = m.form.WithWidth(m.modalWidth())
	}
	if m.confirmForm != nil {
		m.confirmForm = m.confirmForm.WithWidth(m.modalWidth())
	}
	return m
}

// KeyHints returns the status bar hints for the current mode.
func (m Model[T]) KeyHints() string {
	switch m.mode {
	case modeEditor:
		return "enter next/submit | esc cancel"
	case modeConfirmDelete:
		return "←/→ choose | enter confirm | esc cancel"
	}

	hints := []string{"n new"}
	if r, ok := m.current(); ok {
		hints = append(hints, "e edit", "d delete")
		if m.entity.Completable(r) {
			hints = append(hints, "x complete")
		}
	}
	if len(m.filters) > 0 {
		hints = append(hints, "f filter")
	}
	hints = append(hints, "r refresh", "tab switch", "? help", "q quit")
	return strings.Join(hints, " | ")
}

func (m Model[T]) modalWidth() int {
	w := m.width - 10
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}

func (m Model[T]) collectionName() string {
	var zero T
	return zero.CollectionName()
}

func (m Model[T]) logger() *zerolog.Logger {
	return zerolog.Ctx(m.ctx)
}
