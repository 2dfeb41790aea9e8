package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opencensus.io/plugin/ochttp"
	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/metadata"
	"github.com/mohitkumar/onboarding/service"
)

// HealthCheck reports the state of the storage backends; nil means healthy.
type HealthCheck func() error

type Server struct {
	http.Server
	Port            int
	metadataService metadata.MetadataService
	flowService     *service.FlowService
	health          HealthCheck
}

func NewServer(httpPort int, metadataService metadata.MetadataService, flowService *service.FlowService, health HealthCheck) (*Server, error) {
	if httpPort < 0 || httpPort > 65535 {
		return nil, fmt.Errorf("invalid http port %d", httpPort)
	}
	s := &Server{
		Server: http.Server{
			Addr:              fmt.Sprintf(":%d", httpPort),
			IdleTimeout:       30 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
		metadataService: metadataService,
		flowService:     flowService,
		health:          health,
		Port:            httpPort,
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)

	router.HandleFunc("/questionsets", s.HandleCreateQuestionSet).Methods(http.MethodPost)
	router.HandleFunc("/questionsets/{name}", s.HandleGetQuestionSet).Methods(http.MethodGet)

	router.HandleFunc("/flows", s.HandleOpenFlow).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}", s.HandleGetFlow).Methods(http.MethodGet)
	router.HandleFunc("/flows/{id}/select", s.HandleSelect).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}/advance", s.HandleAdvance).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}/retreat", s.HandleRetreat).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}", s.HandleCloseFlow).Methods(http.MethodDelete)

	router.HandleFunc("/submissions/{id}", s.HandleGetSubmission).Methods(http.MethodGet)

	router.Use(loggingMiddleware)
	s.Handler = &ochttp.Handler{Handler: router}
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server", zap.Error(err))
	}
	return nil
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(); err != nil {
			respondWithError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	respondOK(w, map[string]any{"status": "ok"})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http request", zap.String("method", r.Method), zap.String("uri", r.RequestURI), zap.Duration("took", time.Since(start)))
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message map[string]any) {
	respondWithJSON(w, http.StatusOK, message)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
