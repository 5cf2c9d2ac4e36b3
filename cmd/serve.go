package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/charitytools/bidcraft/internal/funder"
	"github.com/charitytools/bidcraft/internal/model"
	"github.com/charitytools/bidcraft/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the funding request API server",
	Long:  "Serves the 3-step flow over HTTP: create a session from funder name and input, refine answers, generate the document. Sessions live in memory only.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		resolver, err := newResolver()
		if err != nil {
			return err
		}
		pl := newPipeline(resolver)
		store := pipeline.NewSessionStore()
		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSec), cfg.Server.RateBurst)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(pl, store, resolver, limiter),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter assembles the API routes. Split out so tests can drive the
// handlers without a listening socket.
func newRouter(pl *pipeline.Pipeline, store *pipeline.SessionStore, resolver *funder.Resolver, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(rateLimit(limiter))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/questions", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.Catalog)
	})

	r.Get("/funders/{name}", func(w http.ResponseWriter, req *http.Request) {
		// chi leaves route params percent-encoded.
		name, err := url.PathUnescape(chi.URLParam(req, "name"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid funder name")
			return
		}
		writeJSON(w, http.StatusOK, resolver.Resolve(name))
	})

	r.Post("/sessions", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			FunderName string `json:"funderName"`
			UserInput  string `json:"userInput"`
			Mode       string `json:"mode"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.FunderName == "" || body.UserInput == "" {
			writeError(w, http.StatusBadRequest, "funderName and userInput are required")
			return
		}
		mode := model.Mode(body.Mode)
		if body.Mode == "" {
			mode = model.ModeDraft
		}
		if !mode.Valid() {
			writeError(w, http.StatusBadRequest, "mode must be draft or notes")
			return
		}

		// Analyse before registering: a failed analysis leaves no
		// half-built session behind.
		sess := &model.Session{
			Mode:       mode,
			FunderName: body.FunderName,
			Input:      body.UserInput,
			Answers:    model.Answers{},
			NotSure:    model.NotSure{},
		}
		if err := pl.Analyse(req.Context(), sess); err != nil {
			zap.L().Error("serve: analyse failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "we cannot analyse your request at this time, please try again in a moment")
			return
		}
		store.Create(sess)
		writeJSON(w, http.StatusCreated, sessionView(*sess))
	})

	r.Get("/sessions/{id}", func(w http.ResponseWriter, req *http.Request) {
		sess, err := store.Get(chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sessionView(sess))
	})

	r.Patch("/sessions/{id}", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Answers map[string]string `json:"answers"`
			NotSure map[string]bool   `json:"notSure"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		for id := range body.Answers {
			if model.QuestionByID(id) == nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown question id %q", id))
				return
			}
		}
		for id := range body.NotSure {
			if model.QuestionByID(id) == nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown question id %q", id))
				return
			}
		}

		sess, err := store.Update(chi.URLParam(req, "id"), func(s *model.Session) error {
			for id, v := range body.Answers {
				s.Answers[id] = v
			}
			for id, flagged := range body.NotSure {
				if flagged {
					s.NotSure[id] = true
				} else {
					delete(s.NotSure, id)
				}
			}
			return nil
		})
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sessionView(sess))
	})

	r.Post("/sessions/{id}/generate", func(w http.ResponseWriter, req *http.Request) {
		sess, err := store.Get(chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		out, err := pl.Generate(req.Context(), &sess)
		if err != nil {
			zap.L().Error("serve: generate failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "we cannot generate your funding request at this time, please try again in a moment")
			return
		}
		writeJSON(w, http.StatusOK, out)
	})

	return r
}

// sessionView is the API shape of a session, gaps included.
func sessionView(sess model.Session) map[string]any {
	return map[string]any{
		"session":   sess,
		"questions": model.Catalog,
		"gaps":      pipeline.Gaps(sess.Answers, sess.NotSure),
	}
}

// rateLimit rejects requests beyond the configured global rate.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
