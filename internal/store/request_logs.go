// ABOUTME: Request log storage operations.
// ABOUTME: Handles inserting, querying, aggregating and pruning HTTP request logs.

package store

import (
	"fmt"
	"time"
)

// RequestLog represents an HTTP request log entry
type RequestLog struct {
	ID           int64     `db:"id"`
	Timestamp    time.Time `db:"timestamp"`
	Resource     string    `db:"resource"`
	Method       string    `db:"method"`
	Path         string    `db:"path"`
	StatusCode   int       `db:"status_code"`
	DurationMs   int       `db:"duration_ms"`
	UserID       string    `db:"user_id"`
	IPAddress    string    `db:"ip_address"`
	UserAgent    string    `db:"user_agent"`
	Error        string    `db:"error"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
}

// Field exposes log columns by their database name so the admin console can
// list logs like any other record.
func (l *RequestLog) Field(key string) (any, bool) {
	switch key {
	case "id":
		return l.ID, true
	case "timestamp":
		return l.Timestamp, true
	case "resource":
		return l.Resource, true
	case "method":
		return l.Method, true
	case "path":
		return l.Path, true
	case "status_code":
		return l.StatusCode, true
	case "duration_ms":
		return l.DurationMs, true
	case "user_id":
		return l.UserID, true
	case "ip_address":
		return l.IPAddress, true
	case "user_agent":
		return l.UserAgent, true
	case "error":
		return l.Error, true
	}
	return nil, false
}

// StringFields returns the values matched by a free-text search.
func (l *RequestLog) StringFields() []string {
	return []string{l.Resource, l.Method, l.Path, l.UserID, l.IPAddress, l.UserAgent, l.Error}
}

// LogRequest inserts a request log entry. A zero Timestamp means now.
func (s *Store) LogRequest(log *RequestLog) error {
	ts := log.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO request_logs (timestamp, resource, method, path, status_code, duration_ms, user_id, ip_address, user_agent, error, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ts.UTC(), log.Resource, log.Method, log.Path, log.StatusCode, log.DurationMs, log.UserID, log.IPAddress, log.UserAgent, log.Error, log.RequestBody, log.ResponseBody)
	return err
}

// RequestLogQuery represents filters for request logs
type RequestLogQuery struct {
	Limit      int
	Offset     int
	Resource   string
	Method     string
	PathPrefix string
	StatusCode int
	UserID     string
}

// RequestLogStats represents aggregate statistics
type RequestLogStats struct {
	TotalRequests   int
	TodayRequests   int
	ErrorRequests   int
	AvgDurationMs   int
	UniqueEndpoints int
	UniqueUsers     int
}

const requestLogColumns = `id, timestamp, COALESCE(resource, '') AS resource, method, path,
	COALESCE(status_code, 0) AS status_code, COALESCE(duration_ms, 0) AS duration_ms,
	COALESCE(user_id, '') AS user_id, COALESCE(ip_address, '') AS ip_address,
	COALESCE(user_agent, '') AS user_agent, COALESCE(error, '') AS error,
	COALESCE(request_body, '') AS request_body, COALESCE(response_body, '') AS response_body`

// GetRequestLogs retrieves request logs with filtering, newest first
func (s *Store) GetRequestLogs(q *RequestLogQuery) ([]*RequestLog, error) {
	query := `SELECT ` + requestLogColumns + ` FROM request_logs WHERE 1=1`
	args := []any{}

	if q.Resource != "" {
		query += " AND resource = ?"
		args = append(args, q.Resource)
	}
	if q.Method != "" {
		query += " AND method = ?"
		args = append(args, q.Method)
	}
	if q.PathPrefix != "" {
		query += ` AND path LIKE ? ESCAPE '\'`
		args = append(args, escapeSQLLike(q.PathPrefix)+"%")
	}
	if q.StatusCode > 0 {
		query += " AND status_code = ?"
		args = append(args, q.StatusCode)
	}
	if q.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, q.UserID)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, q.Offset)

	var logs []*RequestLog
	if err := s.db.Select(&logs, query, args...); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetRequestLogStats returns aggregate statistics
func (s *Store) GetRequestLogStats() (*RequestLogStats, error) {
	stats := &RequestLogStats{}
	today := time.Now().UTC().Format("2006-01-02")

	queries := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.TotalRequests, "SELECT COUNT(*) FROM request_logs", nil},
		{&stats.TodayRequests, "SELECT COUNT(*) FROM request_logs WHERE date(timestamp) = ?", []any{today}},
		{&stats.ErrorRequests, "SELECT COUNT(*) FROM request_logs WHERE status_code >= 400", nil},
		{&stats.AvgDurationMs, "SELECT CAST(COALESCE(AVG(duration_ms), 0) AS INTEGER) FROM request_logs", nil},
		{&stats.UniqueEndpoints, "SELECT COUNT(DISTINCT path) FROM request_logs", nil},
		{&stats.UniqueUsers, "SELECT COUNT(DISTINCT user_id) FROM request_logs WHERE user_id != ''", nil},
	}
	for _, q := range queries {
		if err := s.db.Get(q.dest, q.query, q.args...); err != nil {
			return nil, fmt.Errorf("request log stats: %w", err)
		}
	}
	return stats, nil
}

// EndpointStat is one row of GetTopEndpoints.
type EndpointStat struct {
	Path  string  `db:"path"`
	Count int     `db:"count"`
	AvgMs float64 `db:"avg_ms"`
}

// GetTopEndpoints returns the most frequently requested endpoints
func (s *Store) GetTopEndpoints(limit int) ([]EndpointStat, error) {
	var endpoints []EndpointStat
	err := s.db.Select(&endpoints, `
		SELECT path, COUNT(*) AS count, COALESCE(AVG(duration_ms), 0) AS avg_ms
		FROM request_logs
		GROUP BY path
		ORDER BY count DESC
		LIMIT ?
	`, limit)
	return endpoints, err
}

// GetResourceRequestCount returns the number of requests for a resource since a given time
func (s *Store) GetResourceRequestCount(resource string, since time.Time) (int, error) {
	var count int
	err := s.db.Get(&count, `
		SELECT COUNT(*)
		FROM request_logs
		WHERE resource = ? AND timestamp >= ?
	`, resource, since.UTC())
	return count, err
}

// GetResourceErrorRate returns the error rate percentage for a resource since a given time
func (s *Store) GetResourceErrorRate(resource string, since time.Time) (float64, error) {
	var counts struct {
		Total  int `db:"total"`
		Errors int `db:"errors"`
	}
	err := s.db.Get(&counts, `
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN status_code >= 400 THEN 1 ELSE 0 END), 0) AS errors
		FROM request_logs
		WHERE resource = ? AND timestamp >= ?
	`, resource, since.UTC())
	if err != nil {
		return 0, err
	}

	// No requests means 0% error rate
	if counts.Total == 0 {
		return 0, nil
	}
	return (float64(counts.Errors) / float64(counts.Total)) * 100.0, nil
}

// GetRecentRequests returns the most recent requests for a resource
func (s *Store) GetRecentRequests(resource string, limit int) ([]*RequestLog, error) {
	return s.GetRequestLogs(&RequestLogQuery{Resource: resource, Limit: limit})
}

// PruneRequestLogs deletes log entries older than before and reports how many went.
func (s *Store) PruneRequestLogs(before time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM request_logs WHERE timestamp < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
