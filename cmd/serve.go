package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finsync/reality-lens/internal/model"
	"github.com/finsync/reality-lens/internal/store"
)

// maxUploadBytes caps the photo upload size.
const maxUploadBytes = 10 << 20

var servePort int

// scanRunner is the part of the pipeline the HTTP handlers need.
type scanRunner interface {
	Run(ctx context.Context, userID string, imageBytes []byte) model.AnalysisResult
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP scan server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initScanEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		router := newRouter(env.Pipeline, env.Store, cfg.Profile.DefaultUser)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the HTTP API: health, photo scan, and scan history.
func newRouter(runner scanRunner, st store.Store, defaultUser string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/scan", func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
		file, _, err := req.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file field is required"})
			return
		}
		defer file.Close()

		imageBytes, err := io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read upload"})
			return
		}

		userID := req.FormValue("user")
		if userID == "" {
			userID = defaultUser
		}

		result := runner.Run(req.Context(), userID, imageBytes)
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/history", func(w http.ResponseWriter, req *http.Request) {
		userID := req.URL.Query().Get("user")
		if userID == "" {
			userID = defaultUser
		}
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

		runs, err := st.ListRecent(req.Context(), userID, limit)
		if err != nil {
			zap.L().Error("history: list runs", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load history"})
			return
		}
		if runs == nil {
			runs = []model.ScanRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
