package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/provenance-cli/internal/analyzer"
	"github.com/sells-group/provenance-cli/internal/docx"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis endpoint",
	Long: `Serve provenance analysis over HTTP. POST a package to /analyze as
multipart form data (field "file") and receive the JSON report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
		}))
		r.Use(rateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/analyze", handleAnalyze)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// rateLimiter rejects requests beyond the shared token bucket.
func rateLimiter(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBytes := cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	upload, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer upload.Close() //nolint:errcheck

	// The extractor wants a seekable archive; spool the upload to disk.
	tmp, err := os.CreateTemp("", "provenance-*.docx")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "spool upload"})
		return
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	defer tmp.Close()           //nolint:errcheck

	if _, err := io.Copy(tmp, upload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read upload"})
		return
	}

	result, err := analyzer.Analyze(tmp.Name())
	if err != nil {
		if eris.Is(err, docx.ErrMalformedPackage) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "not a valid OOXML package"})
			return
		}
		zap.L().Error("analysis failed",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis failed"})
		return
	}
	result.File = header.Filename

	zap.L().Info("package analyzed",
		zap.String("file", header.Filename),
		zap.String("verdict", result.Verdict),
		zap.Float64("taint", result.Taint),
	)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}
