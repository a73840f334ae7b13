// ABOUTME: HTTP handlers for admin UI pages.
// ABOUTME: Serves the dashboard, resource lists, forms, detail pages and request logs.

package admin

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2389/realty/internal/api"
	"github.com/2389/realty/internal/listview"
	"github.com/2389/realty/internal/logger"
	"github.com/2389/realty/internal/resource"
	"github.com/2389/realty/internal/store"
	"github.com/go-chi/chi/v5"
)

// logsLimit caps how many request logs the log page loads into its engine.
const logsLimit = 1000

// RecordClient fetches and mutates records. *api.Client satisfies it.
type RecordClient interface {
	List(ctx context.Context, resource string) ([]listview.Row, error)
	Get(ctx context.Context, resource, id string) (listview.Row, error)
	Create(ctx context.Context, resource string, data map[string]any) (listview.Row, error)
	Update(ctx context.Context, resource, id string, data map[string]any) (listview.Row, error)
	Delete(ctx context.Context, resource, id string) error
}

// Monitor supplies dashboard numbers and request logs. *store.Store satisfies it.
type Monitor interface {
	CountRecords(ctx context.Context) (map[string]int, error)
	GetRequestLogStats() (*store.RequestLogStats, error)
	GetResourceRequestCount(resource string, since time.Time) (int, error)
	GetResourceErrorRate(resource string, since time.Time) (float64, error)
	GetRequestLogs(q *store.RequestLogQuery) ([]*store.RequestLog, error)
}

type Handlers struct {
	client   RecordClient
	monitor  Monitor
	pageSize int
}

func NewHandlers(client RecordClient, monitor Monitor, pageSize int) *Handlers {
	return &Handlers{client: client, monitor: monitor, pageSize: pageSize}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", h.dashboard)
		r.Get("/logs", h.logsList)
		r.Route("/{resource}", func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Get("/new", h.newForm)
			r.Get("/{id}", h.view)
			r.Post("/{id}", h.update)
			r.Get("/{id}/edit", h.editForm)
			r.Post("/{id}/delete", h.delete)
		})
	})
}

type dashboardResource struct {
	Name      string
	Slug      string
	Records   int
	Requests  int
	ErrorRate float64
}

type dashboardData struct {
	Stats     *store.RequestLogStats
	Resources []dashboardResource
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.monitor.CountRecords(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "Dashboard", "Could not count records", err)
		return
	}
	stats, err := h.monitor.GetRequestLogStats()
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "Dashboard", "Could not load request statistics", err)
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	data := dashboardData{Stats: stats}
	for _, s := range resource.All() {
		item := dashboardResource{Name: s.Name, Slug: s.Slug, Records: counts[s.Slug]}
		if n, err := h.monitor.GetResourceRequestCount(s.Slug, since); err == nil {
			item.Requests = n
		}
		if rate, err := h.monitor.GetResourceErrorRate(s.Slug, since); err == nil {
			item.ErrorRate = rate
		}
		data.Resources = append(data.Resources, item)
	}

	h.render(w, http.StatusOK, "dashboard", pageData{Title: "Dashboard", Data: data})
}

// schemaFor resolves the {resource} URL parameter, rendering a 404 page when unknown.
func (h *Handlers) schemaFor(w http.ResponseWriter, r *http.Request) (resource.Schema, bool) {
	slug := chi.URLParam(r, "resource")
	schema, ok := resource.Get(slug)
	if !ok {
		h.renderError(w, http.StatusNotFound, "Not found", fmt.Sprintf("No resource named %q", slug), nil)
	}
	return schema, ok
}

func (h *Handlers) newEngine(schema resource.Schema, onEdit, onDelete func(listview.Row)) (*listview.Engine[listview.Row], error) {
	cols, err := schema.Columns()
	if err != nil {
		return nil, err
	}
	size := schema.PageSize
	if size <= 0 {
		size = h.pageSize
	}
	return listview.New(listview.Config[listview.Row]{
		Columns:     cols,
		PageSize:    size,
		FilterField: schema.FilterField,
		OnEdit:      onEdit,
		OnDelete:    onDelete,
	})
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}

	rows, err := h.client.List(r.Context(), schema.Slug)
	if err != nil {
		h.renderError(w, http.StatusBadGateway, schema.Name, "Could not load "+schema.Name, err)
		return
	}

	e, err := h.newEngine(schema, nil, nil)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, schema.Name, "Invalid list configuration", err)
		return
	}
	st := parseViewState(r.URL.Query())
	applyViewState(e, rows, st)

	h.render(w, http.StatusOK, "page", pageData{
		Title:  schema.Name,
		Active: schema.Slug,
		NewURL: "/admin/" + schema.Slug + "/new",
		Body:   template.HTML(RenderResourceList(schema, e, st)),
	})
}

func (h *Handlers) newForm(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}
	h.renderForm(w, http.StatusOK, schema, "New", nil, "/admin/"+schema.Slug, "")
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}
	action := "/admin/" + schema.Slug

	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, schema, "New", nil, action, "Could not read the submitted form")
		return
	}
	data, err := formData(schema, r.PostForm, true)
	if err != nil {
		h.renderForm(w, http.StatusBadRequest, schema, "New", submitted(r), action, err.Error())
		return
	}

	if _, err := h.client.Create(r.Context(), schema.Slug, data); err != nil {
		status, msg := mutationError(err, "create")
		h.renderForm(w, status, schema, "New", submitted(r), action, msg)
		return
	}
	redirect(w, r, "/admin/"+schema.Slug)
}

func (h *Handlers) view(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	row, ok := h.fetch(w, r, schema, id)
	if !ok {
		return
	}

	body := RenderResourceDetail(schema, row) +
		`<div class="flex gap-4 text-sm">` + RenderActions(schema.Actions, id, "") + `</div>`
	h.render(w, http.StatusOK, "page", pageData{
		Title:  schema.Name + " · " + rowTitle(row),
		Active: schema.Slug,
		Body:   template.HTML(body),
	})
}

// editForm opens the form through the engine's edit intent.
func (h *Handlers) editForm(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	row, ok := h.fetch(w, r, schema, id)
	if !ok {
		return
	}

	opened := false
	e, err := h.newEngine(schema, func(rec listview.Row) {
		opened = true
		h.renderForm(w, http.StatusOK, schema, "Edit", rec, "/admin/"+schema.Slug+"/"+rec.ID(), "")
	}, nil)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, schema.Name, "Invalid list configuration", err)
		return
	}
	e.SetRecords([]listview.Row{row})
	e.Dispatch(listview.Intent[listview.Row]{Action: listview.ActionEdit, Record: row})
	if !opened {
		h.renderError(w, http.StatusInternalServerError, schema.Name, "Edit is not available", nil)
	}
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	action := "/admin/" + schema.Slug + "/" + id

	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, schema, "Edit", nil, action, "Could not read the submitted form")
		return
	}
	data, err := formData(schema, r.PostForm, false)
	if err != nil {
		h.renderForm(w, http.StatusBadRequest, schema, "Edit", submitted(r), action, err.Error())
		return
	}

	if _, err := h.client.Update(r.Context(), schema.Slug, id, data); err != nil {
		status, msg := mutationError(err, "update")
		h.renderForm(w, status, schema, "Edit", submitted(r), action, msg)
		return
	}
	redirect(w, r, "/admin/"+schema.Slug)
}

// delete turns the posted row into a delete intent. The engine's callback
// performs the API call; the redirect makes the list refetch its snapshot.
func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemaFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	rows, err := h.client.List(r.Context(), schema.Slug)
	if err != nil {
		h.renderError(w, http.StatusBadGateway, schema.Name, "Could not load "+schema.Name, err)
		return
	}
	target, found := findRow(rows, id)
	if !found {
		h.renderError(w, http.StatusNotFound, schema.Name, "That record no longer exists", nil)
		return
	}

	var deleteErr error
	e, err := h.newEngine(schema, nil, func(rec listview.Row) {
		deleteErr = h.client.Delete(r.Context(), schema.Slug, rec.ID())
	})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, schema.Name, "Invalid list configuration", err)
		return
	}
	e.SetRecords(rows)
	e.Dispatch(listview.Intent[listview.Row]{Action: listview.ActionDelete, Record: target})

	if deleteErr != nil && !api.IsNotFound(deleteErr) {
		h.renderError(w, http.StatusBadGateway, schema.Name, "Could not delete the record", deleteErr)
		return
	}
	logger.Log.WithField("resource", schema.Slug).WithField("id", id).Info("record deleted")
	redirect(w, r, parseViewState(r.URL.Query()).url("/admin/"+schema.Slug))
}

func (h *Handlers) logsList(w http.ResponseWriter, r *http.Request) {
	logs, err := h.monitor.GetRequestLogs(&store.RequestLogQuery{Limit: logsLimit})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "Request Logs", "Could not load request logs", err)
		return
	}

	e, err := listview.New(listview.Config[*store.RequestLog]{
		Columns:     logColumns(),
		PageSize:    h.pageSize,
		FilterField: "resource",
	})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "Request Logs", "Invalid list configuration", err)
		return
	}
	st := parseViewState(r.URL.Query())
	applyViewState(e, logs, st)

	body := renderList(e, listOptions[*store.RequestLog]{
		BasePath:      "/admin/logs",
		State:         st,
		FilterLabel:   "Resources",
		FilterOptions: resource.Slugs(),
	})
	h.render(w, http.StatusOK, "page", pageData{Title: "Request Logs", Active: "logs", Body: template.HTML(body)})
}

func logColumns() []listview.Column[*store.RequestLog] {
	return []listview.Column[*store.RequestLog]{
		{Key: "timestamp", Label: "Time", Render: func(l *store.RequestLog) string {
			return l.Timestamp.Local().Format("2006-01-02 15:04:05")
		}},
		{Key: "method", Label: "Method"},
		{Key: "path", Label: "Path"},
		{Key: "status_code", Label: "Status"},
		{Key: "duration_ms", Label: "Duration", Render: func(l *store.RequestLog) string {
			return strconv.Itoa(l.DurationMs) + " ms"
		}},
		{Key: "user_id", Label: "User"},
		{Key: "resource", Label: "Resource"},
	}
}

// fetch loads one record, rendering a 404 or 502 page on failure.
func (h *Handlers) fetch(w http.ResponseWriter, r *http.Request, schema resource.Schema, id string) (listview.Row, bool) {
	row, err := h.client.Get(r.Context(), schema.Slug, id)
	if api.IsNotFound(err) {
		h.renderError(w, http.StatusNotFound, schema.Name, "That record does not exist", nil)
		return nil, false
	}
	if err != nil {
		h.renderError(w, http.StatusBadGateway, schema.Name, "Could not load the record", err)
		return nil, false
	}
	return row, true
}

func (h *Handlers) renderForm(w http.ResponseWriter, status int, schema resource.Schema, verb string, data listview.Row, action, formError string) {
	h.render(w, status, "page", pageData{
		Title:  verb + " " + singular(schema.Name),
		Active: schema.Slug,
		Body:   template.HTML(RenderResourceForm(schema, data, action, formError)),
	})
}

func (h *Handlers) render(w http.ResponseWriter, status int, page string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderPage(w, page, data); err != nil {
		logger.Log.WithError(err).WithField("page", page).Error("failed to render admin page")
	}
}

func (h *Handlers) renderError(w http.ResponseWriter, status int, title, message string, err error) {
	if err != nil {
		logger.Log.WithError(err).WithField("status", status).Warn(message)
	}
	h.render(w, status, "page", pageData{Title: title, Error: message})
}

// redirect sends the browser to target. htmx requests get HX-Redirect
// because a 303 would be followed inside the XHR.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// mutationError maps an API failure to the form page status and message.
func mutationError(err error, verb string) (int, string) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		if apiErr.Message != "" {
			return apiErr.Status, apiErr.Message
		}
		return apiErr.Status, fmt.Sprintf("Could not %s the record", verb)
	}
	logger.Log.WithError(err).Warnf("admin %s failed", verb)
	return http.StatusBadGateway, fmt.Sprintf("Could not %s the record", verb)
}

// formData converts submitted form values to record fields. On create,
// blank optional values are left out; on update they clear the field.
func formData(schema resource.Schema, form map[string][]string, create bool) (map[string]any, error) {
	data := make(map[string]any)
	for _, f := range schema.EditableFields() {
		raw := ""
		if vals := form[f.Name]; len(vals) > 0 {
			raw = strings.TrimSpace(vals[0])
		}

		switch f.Type {
		case resource.TypeCheckbox:
			data[f.Name] = resource.IsTruthy(raw)
			continue
		case resource.TypeNumber:
			if raw == "" {
				break
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number", f.Display)
			}
			data[f.Name] = n
			continue
		case resource.TypeDatetime:
			if raw == "" {
				break
			}
			t, err := parseDatetime(raw)
			if err != nil {
				return nil, fmt.Errorf("%s must be a date and time", f.Display)
			}
			data[f.Name] = t.UTC().Format(time.RFC3339)
			continue
		default:
			if raw != "" {
				data[f.Name] = raw
				continue
			}
		}

		// blank value
		if !create {
			if f.Type == resource.TypeNumber || f.Type == resource.TypeDatetime {
				data[f.Name] = nil
			} else {
				data[f.Name] = ""
			}
		}
	}
	return data, nil
}

func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}

// submitted echoes the posted form back into a row for re-rendering.
func submitted(r *http.Request) listview.Row {
	row := listview.Row{}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			row[k] = v[0]
		}
	}
	return row
}

func findRow(rows []listview.Row, id string) (listview.Row, bool) {
	for _, row := range rows {
		if row.ID() == id {
			return row, true
		}
	}
	return nil, false
}

// rowTitle picks a human label for a record.
func rowTitle(row listview.Row) string {
	for _, key := range []string{"name", "title", "client_name"} {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	return row.ID()
}

func singular(name string) string {
	if strings.HasSuffix(name, "ies") {
		return strings.TrimSuffix(name, "ies") + "y"
	}
	return strings.TrimSuffix(name, "s")
}
