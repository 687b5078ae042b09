package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/notesift/chord"
	"github.com/jsphweid/notesift/constants"
	"github.com/jsphweid/notesift/detect"
	"github.com/jsphweid/notesift/explain"
	"github.com/jsphweid/notesift/history"
	"github.com/jsphweid/notesift/model"
	"github.com/jsphweid/notesift/util"
	"github.com/mdobak/go-xerrors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var servePort string

const shutdownTimeout = 5 * time.Second

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the detection API",
	Long:  `Serves the detection API over HTTP`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(contextOrBackground(cmd.Context()))
	},
}

type Explainer interface {
	Explain(ctx context.Context, notes model.Notes) (string, error)
}

// Server holds what the HTTP handlers need. History and Explainer are
// optional, the endpoints using them answer 503 when they are nil.
type Server struct {
	History   *history.Manager
	Explainer Explainer
	Logger    *slog.Logger
	// MaxBodyBytes caps request bodies, constants.MaxRequestBytes when zero.
	MaxBodyBytes int64
}

func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) {
	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = constants.MaxRequestBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// the status is already sent, all that is left is to log it
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logError(r.Context(), "failed to encode response", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, model.ErrorResponse{Error: msg})
}

func (s *Server) logError(ctx context.Context, msg string, err error) {
	s.Logger.ErrorContext(ctx, msg, slog.Any("error", xerrors.New(err)))
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.Logger.ErrorContext(r.Context(), "panic in handler",
					slog.Any("panic", err), slog.String("stack", string(debug.Stack())))
				s.writeJSONError(w, r, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) HandleDetect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.limitBody(w, r)

	var input model.DetectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeJSONError(w, r, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}

	started := time.Now()
	res := detect.Analyze(input.Frames)
	s.Logger.InfoContext(ctx, "detected notes",
		slog.Int("frames", len(input.Frames)),
		slog.Any("notes", res.DetectedMidiNotes),
		slog.Bool("lowRegister", res.LowRegisterWarning),
		slog.Duration("took", time.Since(started)),
	)

	resp := model.DetectResponse{
		Result:         res.Result,
		FormattedNotes: chord.FormatNotes(res.DetectedMidiNotes),
		ChordKey:       chord.CreateChordKey(res.DetectedMidiNotes),
	}
	if input.Debug {
		resp.Candidates = res.Candidates
	}

	if input.Save && s.History != nil && len(res.DetectedMidiNotes) > 0 {
		item, saved, err := s.History.Save(ctx, res.DetectedMidiNotes, "")
		if err != nil {
			s.logError(ctx, "failed to save history", err)
		} else if saved {
			resp.HistoryID = item.ID
		}
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		s.writeJSONError(w, r, http.StatusServiceUnavailable, "history is not available")
		return
	}
	items, err := s.History.List(r.Context())
	if err != nil {
		s.logError(r.Context(), "failed to list history", err)
		s.writeJSONError(w, r, http.StatusInternalServerError, "could not list history")
		return
	}
	s.writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		s.writeJSONError(w, r, http.StatusServiceUnavailable, "history is not available")
		return
	}
	if err := s.History.Clear(r.Context()); err != nil {
		s.logError(r.Context(), "failed to clear history", err)
		s.writeJSONError(w, r, http.StatusInternalServerError, "could not clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleExplain(w http.ResponseWriter, r *http.Request) {
	if s.Explainer == nil {
		s.writeJSONError(w, r, http.StatusServiceUnavailable, "explanations are not configured")
		return
	}

	s.limitBody(w, r)
	var input model.ExplainRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeJSONError(w, r, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}
	if len(input.Notes) == 0 {
		s.writeJSONError(w, r, http.StatusBadRequest, "notes are required")
		return
	}
	for _, n := range input.Notes {
		if !validNote(n) {
			s.writeJSONError(w, r, http.StatusBadRequest, "notes must be MIDI numbers between 0 and 127")
			return
		}
	}

	text, err := s.Explainer.Explain(r.Context(), input.Notes)
	if err != nil {
		s.logError(r.Context(), "failed to explain notes", err)
		s.writeJSONError(w, r, http.StatusBadGateway, "could not get an explanation")
		return
	}

	s.writeJSON(w, r, http.StatusOK, model.ExplainResponse{
		Notes:          input.Notes,
		FormattedNotes: chord.FormatNotes(input.Notes),
		Explanation:    text,
	})
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.recovery)
	router.HandleFunc("/detect", s.HandleDetect).Methods("POST")
	router.HandleFunc("/history", s.HandleListHistory).Methods("GET")
	router.HandleFunc("/history", s.HandleClearHistory).Methods("DELETE")
	router.HandleFunc("/explain", s.HandleExplain).Methods("POST")

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// HTTPServer wraps Router with timeouts. The write timeout leaves room for
// an LLM call behind /explain.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

// runServer serves on ln until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down server: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serve(ctx context.Context) error {
	logger := util.NewLogger()
	s := &Server{Logger: logger}

	manager, store, err := openHistory()
	if err != nil {
		logger.WarnContext(ctx, "history disabled", slog.Any("error", xerrors.New(err)))
	} else {
		defer store.Close()
		s.History = manager
	}

	client, err := newExplainer(ctx)
	switch {
	case errors.Is(err, explain.ErrNoAPIKey):
		logger.InfoContext(ctx, "GEMINI_API_KEY not set, /explain disabled")
	case err != nil:
		logger.WarnContext(ctx, "explanations disabled", slog.Any("error", xerrors.New(err)))
	default:
		s.Explainer = client
	}

	port := servePort
	if port == "" {
		port = constants.GetPort()
	}
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("could not listen on port %v: %w", port, err)
	}
	logger.InfoContext(ctx, "listening", slog.String("port", port))
	err = runServer(ctx, s.HTTPServer(), ln)
	logger.InfoContext(ctx, "server stopped")
	return err
}
