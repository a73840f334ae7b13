// ABOUTME: REST API serving console resources from the store.
// ABOUTME: Routes /api/{resource} and /api/{resource}/{id} with envelope responses.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apierrors "github.com/2389/realty/internal/errors"
	"github.com/2389/realty/internal/listview"
	"github.com/2389/realty/internal/logger"
	"github.com/2389/realty/internal/resource"
	"github.com/2389/realty/internal/store"
	"github.com/go-chi/chi/v5"
)

// RecordStore is the persistence the API needs. *store.Store satisfies it.
type RecordStore interface {
	ListRecords(ctx context.Context, resource string) ([]*store.Record, error)
	GetRecord(ctx context.Context, resource, id string) (*store.Record, error)
	CreateRecord(ctx context.Context, resource string, data map[string]any) (*store.Record, error)
	UpdateRecord(ctx context.Context, resource, id string, data map[string]any) (*store.Record, error)
	DeleteRecord(ctx context.Context, resource, id string) error
}

type Server struct {
	store RecordStore
}

func NewServer(s RecordStore) *Server {
	return &Server{store: s}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/{resource}", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})
}

// schemaFor resolves the {resource} URL parameter, writing a 404 when it is unknown.
func schemaFor(w http.ResponseWriter, r *http.Request) (resource.Schema, bool) {
	slug := chi.URLParam(r, "resource")
	schema, ok := resource.Get(slug)
	if !ok {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrUnknownResource,
			fmt.Sprintf("No resource named %q", slug))
	}
	return schema, ok
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	schema, ok := schemaFor(w, r)
	if !ok {
		return
	}

	records, err := s.store.ListRecords(r.Context(), schema.Slug)
	if err != nil {
		writeStoreError(w, err, schema.Slug)
		return
	}

	rows := make([]listview.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Fields())
	}
	writeJSON(w, http.StatusOK, ListEnvelope{
		Code:    http.StatusOK,
		Message: "ok",
		Records: rows,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	schema, ok := schemaFor(w, r)
	if !ok {
		return
	}

	rec, err := s.store.GetRecord(r.Context(), schema.Slug, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, schema.Slug)
		return
	}
	writeJSON(w, http.StatusOK, RecordEnvelope{Code: http.StatusOK, Message: "ok", Record: rec.Fields()})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	schema, ok := schemaFor(w, r)
	if !ok {
		return
	}

	data, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if field, ok := missingRequired(schema, data, true); !ok {
		apierrors.WriteErrorWithField(w, http.StatusBadRequest, apierrors.ErrMissingField,
			fmt.Sprintf("%s is required", field.Display), field.Name)
		return
	}

	rec, err := s.store.CreateRecord(r.Context(), schema.Slug, data)
	if err != nil {
		writeStoreError(w, err, schema.Slug)
		return
	}
	writeJSON(w, http.StatusCreated, RecordEnvelope{Code: http.StatusCreated, Message: "created", Record: rec.Fields()})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	schema, ok := schemaFor(w, r)
	if !ok {
		return
	}

	data, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if field, ok := missingRequired(schema, data, false); !ok {
		apierrors.WriteErrorWithField(w, http.StatusBadRequest, apierrors.ErrMissingField,
			fmt.Sprintf("%s cannot be empty", field.Display), field.Name)
		return
	}

	rec, err := s.store.UpdateRecord(r.Context(), schema.Slug, chi.URLParam(r, "id"), data)
	if err != nil {
		writeStoreError(w, err, schema.Slug)
		return
	}
	writeJSON(w, http.StatusOK, RecordEnvelope{Code: http.StatusOK, Message: "updated", Record: rec.Fields()})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	schema, ok := schemaFor(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteRecord(r.Context(), schema.Slug, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, schema.Slug)
		return
	}
	writeJSON(w, http.StatusOK, RecordEnvelope{Code: http.StatusOK, Message: "deleted"})
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		apierrors.WriteErrorWithDetails(w, http.StatusBadRequest, apierrors.ErrInvalidBody,
			"Request body must be a JSON object", err.Error())
		return nil, false
	}
	if data == nil {
		apierrors.WriteError(w, http.StatusBadRequest, apierrors.ErrInvalidBody, "Request body must be a JSON object")
		return nil, false
	}
	return data, true
}

// missingRequired reports the first required field without a value. On
// updates (create == false) only fields present in data are checked.
func missingRequired(schema resource.Schema, data map[string]any, create bool) (resource.Field, bool) {
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		v, present := data[f.Name]
		if !present && !create {
			continue
		}
		if v == nil {
			return f, false
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return f, false
		}
	}
	return resource.Field{}, true
}

func writeStoreError(w http.ResponseWriter, err error, slug string) {
	if errors.Is(err, store.ErrNotFound) {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrNotFound, "Record not found")
		return
	}
	logger.Log.WithError(err).WithField("resource", slug).Error("store operation failed")
	apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrDatabaseError, "Failed to access records")
}
