package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/entity"
	"github.com/nhle/meeting-tracker/internal/model"
)

// storable is a record the API can normalise and validate.
type storable[T any] interface {
	model.Record
	Normalized(now time.Time) T
	Validate() error
	WithID(id string) T
	WithCreatedAt(t time.Time) T
}

// resource serves one collection.
type resource interface {
	list(w http.ResponseWriter, r *http.Request)
	create(w http.ResponseWriter, r *http.Request)
	update(w http.ResponseWriter, r *http.Request)
	remove(w http.ResponseWriter, r *http.Request)
}

type handler[T storable[T]] struct {
	coll    collection.Collection[T]
	orderBy string
	now     func() time.Time
	newID   func() string
}

func newHandler[T storable[T]](coll collection.Collection[T], orderBy string, now func() time.Time, newID func() string) *handler[T] {
	return &handler[T]{coll: coll, orderBy: orderBy, now: now, newID: newID}
}

func (h *handler[T]) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.coll.List(r.Context(), h.orderBy, false)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (h *handler[T]) create(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decode(w, r)
	if !ok {
		return
	}

	now := h.now()
	if record.GetID() == "" {
		record = record.WithID(h.newID())
	}
	if record.GetCreatedAt().IsZero() {
		record = record.WithCreatedAt(now.UTC())
	}
	record = record.Normalized(now)
	if err := record.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.coll.Insert(r.Context(), record); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, record)
}

func (h *handler[T]) update(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decode(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	record = record.WithID(id).Normalized(h.now())
	if err := record.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.coll.Update(r.Context(), id, record); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.stored(r, record))
}

// stored re-reads record after an update so the reply carries the
// stored createdAt. If the read fails the written record is returned.
func (h *handler[T]) stored(r *http.Request, record T) T {
	records, err := h.coll.List(r.Context(), h.orderBy, false)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).
			Str("collection", record.CollectionName()).
			Msg("re-reading updated record failed")
		return record
	}
	for _, rec := range records {
		if rec.GetID() == record.GetID() {
			return rec
		}
	}
	return record
}

func (h *handler[T]) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.coll.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (h *handler[T]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var record T
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return record, false
	}
	return record, true
}

func (h *handler[T]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, collection.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, entity.Message(err))
		return
	}
	hlog.FromRequest(r).Error().Err(err).
		Str("collection", chi.URLParam(r, "collection")).
		Msg("collection call failed")
	writeError(w, r, http.StatusInternalServerError, entity.Message(err))
}
