// ABOUTME: Entry point for the realty admin console server.
// ABOUTME: Wires config, store, REST API, admin UI and CLI commands together.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/2389/realty/internal/admin"
	"github.com/2389/realty/internal/api"
	"github.com/2389/realty/internal/auth"
	"github.com/2389/realty/internal/config"
	"github.com/2389/realty/internal/jobs"
	"github.com/2389/realty/internal/listview"
	"github.com/2389/realty/internal/logger"
	"github.com/2389/realty/internal/logging"
	"github.com/2389/realty/internal/resource"
	"github.com/2389/realty/internal/seed"
	"github.com/2389/realty/internal/store"
	"github.com/2389/realty/internal/termtable"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

var (
	configPath string
	port       string
	dbPath     string
	seedCount  int
	cfg        *config.Config
)

// listFlags are the view options of `realty list`.
type listFlags struct {
	search   string
	filter   string
	page     int
	pageSize int
	sort     string
	desc     bool
	columns  []string
	local    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "realty",
		Short: "Realty - admin console for a real estate brokerage",
		Long: `Realty serves the brokerage's REST API and the admin console that manages it.

Resources:
  properties, partners, articles, careers, testimonials,
  certificates, inquiries, schedules, items

Quick Start:
  realty seed          # Generate sample data
  realty serve         # Start server on port 9000
  realty list properties --search makati --sort price --desc`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{
				Level:      cfg.Log.Level,
				File:       cfg.Log.File,
				MaxSizeMB:  cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				Compress:   cfg.Log.Compress,
			})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the realty HTTP server.

The server provides:
  • REST API at http://localhost:PORT/api/{resource}
  • Admin UI at http://localhost:PORT/admin
  • Health check at http://localhost:PORT/healthz
  • Scheduled pruning of old request logs

Authentication:
  Set api.token (REALTY_API__TOKEN) to require "Authorization: Bearer <token>".
  Tokens of the form user:NAME are recorded as NAME in the request logs.`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVarP(&dbPath, "db", "d", "", "Database path")

	seedCmd := &cobra.Command{
		Use:   "seed [resource]",
		Short: "Seed the database with sample data",
		Long: `Seed the database with sample records for every resource or a single one.

AI-Powered Generation:
  Set OPENAI_API_KEY to generate property listings and articles with OpenAI.
  Falls back to static sample data if no API key is provided.

Note: Seed is not idempotent. Use 'realty reset' to clear data before reseeding.`,
		RunE: runSeed,
		Args: cobra.MaximumNArgs(1),
	}
	seedCmd.Flags().StringVarP(&dbPath, "db", "d", "", "Database path")
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10, "Records per resource")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database (wipe and reseed)",
		Long: `Delete the database file and create a fresh one with new sample data.

Warning: This permanently deletes all records and request logs!`,
		RunE: runReset,
	}
	resetCmd.Flags().StringVarP(&dbPath, "db", "d", "", "Database path")
	resetCmd.Flags().IntVarP(&seedCount, "count", "n", 10, "Records per resource")

	var lf listFlags
	listCmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Print one page of a resource as a table",
		Long: `Fetch a resource from the API and print one page of it.

Search, filter, sort and column selection work the same way as in the admin console.

Examples:
  realty list partners --filter bank
  realty list properties --search "makati" --sort price --desc --page 2
  realty list inquiries --columns name,status --local`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], lf)
		},
	}
	listCmd.Flags().StringVarP(&lf.search, "search", "s", "", "Free-text search across all fields")
	listCmd.Flags().StringVarP(&lf.filter, "filter", "f", "", "Category filter value (all disables)")
	listCmd.Flags().IntVar(&lf.page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&lf.pageSize, "page-size", 0, "Rows per page (default from resource or admin.page_size)")
	listCmd.Flags().StringVar(&lf.sort, "sort", "", "Column key to sort by")
	listCmd.Flags().BoolVar(&lf.desc, "desc", false, "Sort descending")
	listCmd.Flags().StringSliceVar(&lf.columns, "columns", nil, "Comma separated column keys to show")
	listCmd.Flags().BoolVar(&lf.local, "local", false, "Read straight from the database instead of the API")
	listCmd.Flags().StringVarP(&dbPath, "db", "d", "", "Database path (with --local)")

	rootCmd.AddCommand(serveCmd, seedCmd, resetCmd, listCmd)
	return rootCmd
}

// validateAndCleanDBPath validates and cleans a database path.
// Handles Unix/Linux, macOS, and Windows paths (including UNC and drive letters).
func validateAndCleanDBPath(path string) (string, error) {
	cleanPath := strings.TrimSpace(path)
	cleanPath = filepath.Clean(cleanPath)

	// Reject empty and root-like paths
	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	// Windows: reject bare drive letters (e.g., "C:", "D:")
	if runtime.GOOS == "windows" && len(cleanPath) == 2 && cleanPath[1] == ':' {
		return "", fmt.Errorf("database path cannot be a bare drive letter")
	}

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}

	// Reject known problematic patterns
	badPatterns := []string{
		".git",
		".svn",
		"node_modules",
		".env",
		"credentials",
		"secret",
	}
	lowerPath := strings.ToLower(cleanPath)
	for _, pattern := range badPatterns {
		if strings.Contains(lowerPath, pattern) {
			return "", fmt.Errorf("database path cannot contain '%s' directory", pattern)
		}
	}

	return cleanPath, nil
}

// resolveDBPath picks the --db flag, then server.db_path, then the default location.
func resolveDBPath() (string, error) {
	path := dbPath
	if path == "" {
		path = cfg.Server.DBPath
	}
	if path == "" {
		path = getDefaultDBPath()
	}
	return validateAndCleanDBPath(path)
}

func openStore() (*store.Store, string, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, "", err
	}
	s, err := store.New(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open store: %w", err)
	}
	return s, path, nil
}

func newAPIClient(c *config.Config) (*api.Client, error) {
	return api.NewClient(api.ClientConfig{
		BaseURL:       c.APIBaseURL(),
		Token:         c.API.Token,
		Timeout:       c.API.Timeout,
		RatePerSecond: c.API.Rate,
		Burst:         c.API.Burst,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	if port != "" {
		cfg.Server.Port = port
	}

	s, path, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	handler, err := newServer(cfg, s)
	if err != nil {
		return err
	}

	scheduler := jobs.NewScheduler()
	if cfg.Retention.MaxAge > 0 {
		if _, err := scheduler.Add(cfg.Retention.Schedule, jobs.NewRetention(s, cfg.Retention.MaxAge)); err != nil {
			return fmt.Errorf("invalid retention.schedule %q: %w", cfg.Retention.Schedule, err)
		}
	}
	scheduler.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("realty server listening on %s", srv.Addr)
		logger.Log.Infof("Database: %s", path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		logger.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
		scheduler.Stop(shutdownCtx)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func newServer(c *config.Config, s *store.Store) (http.Handler, error) {
	client, err := newAPIClient(c)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	// Favicon
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// REST API. Auth runs first so request logs carry the caller.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(c.API.Token))
		r.Use(logging.Middleware(s))
		api.NewServer(s).RegisterRoutes(r)
	})

	// Admin UI
	admin.NewHandlers(client, s, c.Admin.PageSize).RegisterRoutes(r)

	return r, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var slugs []string
	if len(args) > 0 {
		slugs = args
	}
	return seedData(cmd.Context(), s, slugs)
}

func runReset(cmd *cobra.Command, args []string) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}

	// Remove existing database and its WAL files - ignore if they don't exist
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	s, err := store.New(path)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(cmd.Context(), s, nil) // Reset always seeds every resource
}

func seedData(ctx context.Context, s *store.Store, slugs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, slug := range slugs {
		if _, ok := resource.Get(slug); !ok {
			logger.Log.Errorf("Resource '%s' not found", slug)
			logger.Log.Infof("Available resources: %s", strings.Join(resource.Slugs(), ", "))
			return fmt.Errorf("resource '%s' not found", slug)
		}
	}

	if len(slugs) > 0 {
		logger.Log.Infof("Seeding database with sample data for: %s", strings.Join(slugs, ", "))
	} else {
		logger.Log.Info("Seeding database with sample data...")
	}

	created, err := seed.Seed(ctx, s, seed.NewGenerator(cfg.Seed.OpenAIModel), slugs, seedCount)
	total := 0
	for slug, n := range created {
		logger.Log.Infof("%s: %d records", slug, n)
		total += n
	}
	if err != nil {
		return err
	}
	logger.Log.Infof("Seeding complete! Created %d records", total)
	return nil
}

func runList(cmd *cobra.Command, slug string, lf listFlags) error {
	schema, ok := resource.Get(slug)
	if !ok {
		return fmt.Errorf("unknown resource %q (available: %s)", slug, strings.Join(resource.Slugs(), ", "))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := fetchRows(ctx, slug, lf.local)
	if err != nil {
		return err
	}

	e, err := newListEngine(schema, lf.pageSize, cfg.Admin.PageSize)
	if err != nil {
		return err
	}
	e.SetRecords(rows)
	e.SetVisibleColumns(lf.columns)
	e.SetSort(lf.sort, lf.desc)
	e.SetFilter(lf.filter)
	e.SetSearchTerm(lf.search)
	e.SetPage(lf.page)

	return termtable.Render(cmd.OutOrStdout(), e)
}

// newListEngine sizes pages from the flag, then the resource, then the console default.
func newListEngine(schema resource.Schema, flagSize, defaultSize int) (*listview.Engine[listview.Row], error) {
	cols, err := schema.Columns()
	if err != nil {
		return nil, err
	}
	size := flagSize
	if size == 0 {
		size = schema.PageSize
	}
	if size == 0 {
		size = defaultSize
	}
	return listview.New(listview.Config[listview.Row]{
		Columns:     cols,
		PageSize:    size,
		FilterField: schema.FilterField,
	})
}

func fetchRows(ctx context.Context, slug string, local bool) ([]listview.Row, error) {
	if !local {
		client, err := newAPIClient(cfg)
		if err != nil {
			return nil, err
		}
		return client.List(ctx, slug)
	}

	s, _, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	records, err := s.ListRecords(ctx, slug)
	if err != nil {
		return nil, err
	}
	rows := make([]listview.Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Fields()
	}
	return rows, nil
}

// getDefaultDBPath returns the default database path following XDG Base Directory spec
// Priority: ./realty.db (if present) > XDG_DATA_HOME/realty/realty.db
func getDefaultDBPath() string {
	// 1. Check for existing ./realty.db
	cwdPath := "./realty.db"
	if _, err := os.Stat(cwdPath); err == nil {
		return cwdPath
	}

	// 2. Use XDG Base Directory spec (or Windows equivalent)
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil || homeDir == "" || homeDir == "/" {
			// Fallback to current directory if we can't get valid home dir
			logger.Log.Warnf("Could not determine valid home directory (%q): %v, using ./realty.db", homeDir, err)
			return cwdPath
		}

		// Use platform-appropriate data directory
		// Windows: %LOCALAPPDATA% or ~/AppData/Local
		// Unix/Linux/macOS: ~/.local/share (XDG spec)
		if runtime.GOOS == "windows" {
			dataHome = os.Getenv("LOCALAPPDATA")
			if dataHome == "" {
				dataHome = filepath.Join(homeDir, "AppData", "Local")
			}
		} else {
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(dataHome, "realty")
	xdgDBPath := filepath.Join(dataDir, "realty.db")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Log.Warnf("Could not create data directory %s: %v, using ./realty.db", dataDir, err)
		return cwdPath
	}

	// Verify we can write to the directory
	testFile := filepath.Join(dataDir, ".write-test")
	f, err := os.Create(testFile)
	if err != nil {
		logger.Log.Warnf("Cannot write to data directory %s: %v, using ./realty.db", dataDir, err)
		return cwdPath
	}
	if err := f.Close(); err != nil {
		logger.Log.Warnf("Error closing test file: %v", err)
	}
	if err := os.Remove(testFile); err != nil {
		logger.Log.Warnf("Could not remove test file %s: %v", testFile, err)
	}

	logger.Log.Debugf("Using database location: %s", xdgDBPath)
	return xdgDBPath
}
