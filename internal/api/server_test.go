// ABOUTME: Tests for the records API handlers.
// ABOUTME: Exercises envelopes, validation and error mapping against an in-memory store.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/2389/realty/internal/errors"
	"github.com/2389/realty/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	r := chi.NewRouter()
	NewServer(s).RegisterRoutes(r)
	return r, s
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_CRUD(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := doRequest(t, h, "POST", "/api/partners", `{"name":"Acme Mortgage","category":"Finance"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created RecordEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, http.StatusCreated, created.Code)
	id := created.Record.ID()
	require.NotEmpty(t, id)

	rr = doRequest(t, h, "GET", "/api/partners", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list ListEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Equal(t, 200, list.Code)
	assert.Equal(t, "ok", list.Message)
	require.Len(t, list.Records, 1)
	assert.Equal(t, "Acme Mortgage", list.Records[0]["name"])

	rr = doRequest(t, h, "PUT", "/api/partners/"+id, `{"category":"Legal"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated RecordEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "Legal", updated.Record["category"])
	assert.Equal(t, "Acme Mortgage", updated.Record["name"])

	rr = doRequest(t, h, "GET", "/api/partners/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, "DELETE", "/api/partners/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var deleted RecordEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&deleted))
	assert.Equal(t, "deleted", deleted.Message)
	assert.Nil(t, deleted.Record)

	rr = doRequest(t, h, "GET", "/api/partners/"+id, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_EmptyListHasRecordsArray(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := doRequest(t, h, "GET", "/api/testimonials", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"code":200,"message":"ok","records":[]}`, rr.Body.String())
}

func TestServer_Errors(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantReason string
		wantField  string
	}{
		{"unknown resource", "GET", "/api/widgets", "", 404, apierrors.ErrUnknownResource, ""},
		{"unknown record", "GET", "/api/properties/nope", "", 404, apierrors.ErrNotFound, ""},
		{"delete unknown record", "DELETE", "/api/properties/nope", "", 404, apierrors.ErrNotFound, ""},
		{"update unknown record", "PUT", "/api/properties/nope", `{"name":"x"}`, 404, apierrors.ErrNotFound, ""},
		{"invalid json", "POST", "/api/partners", `{"name":`, 400, apierrors.ErrInvalidBody, ""},
		{"json array", "POST", "/api/partners", `[]`, 400, apierrors.ErrInvalidBody, ""},
		{"json null", "POST", "/api/partners", `null`, 400, apierrors.ErrInvalidBody, ""},
		{"missing required", "POST", "/api/partners", `{"category":"Finance"}`, 400, apierrors.ErrMissingField, "name"},
		{"blank required", "POST", "/api/partners", `{"name":"  "}`, 400, apierrors.ErrMissingField, "name"},
		{"blank required on update", "PUT", "/api/partners/any", `{"name":""}`, 400, apierrors.ErrMissingField, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, h, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			var resp apierrors.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.Equal(t, tt.wantField, resp.Field)
		})
	}
}

type failingStore struct{ RecordStore }

func (failingStore) ListRecords(context.Context, string) ([]*store.Record, error) {
	return nil, errors.New("disk on fire")
}

func TestServer_StoreFailureIs500(t *testing.T) {
	r := chi.NewRouter()
	NewServer(failingStore{}).RegisterRoutes(r)

	rr := doRequest(t, r, "GET", "/api/properties", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, apierrors.ErrDatabaseError, resp.Reason)
	assert.NotContains(t, rr.Body.String(), "disk on fire")
}
