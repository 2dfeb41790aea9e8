package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/metadata"
	"github.com/mohitkumar/onboarding/model"
)

func (s *Server) HandleCreateQuestionSet(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var set model.QuestionSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.metadataService.SaveQuestionSet(r.Context(), set)
	if errors.Is(err, metadata.ErrInvalidQuestionSet) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error("error saving question set", zap.String("name", set.Name), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error saving question set")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]any{"created": true, "name": set.Name})
}

func (s *Server) HandleGetQuestionSet(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	set, err := s.metadataService.GetQuestionSet(r.Context(), name)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, set)
}
