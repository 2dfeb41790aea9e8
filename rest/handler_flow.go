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
	"github.com/mohitkumar/onboarding/service"
	"github.com/mohitkumar/onboarding/view"
)

type FlowResponse struct {
	Id          string           `json:"id"`
	QuestionSet string           `json:"questionSet"`
	Accepted    bool             `json:"accepted"`
	Status      model.FlowStatus `json:"status"`
	State       model.FlowState  `json:"state"`
	Screen      *view.Screen     `json:"screen,omitempty"`
}

func newFlowResponse(flowCtx *model.FlowContext, accepted bool, query string) FlowResponse {
	res := FlowResponse{
		Id:          flowCtx.Id,
		QuestionSet: flowCtx.QuestionSet,
		Accepted:    accepted,
		Status:      flowCtx.Status,
		State:       flowCtx.State,
	}
	if flowCtx.Status != model.CLOSED {
		screen := view.Render(view.Context{
			Questions: flowCtx.Questions,
			State:     flowCtx.State,
			Variant:   flowCtx.Variant,
			Query:     query,
		})
		res.Screen = &screen
	}
	return res
}

func (s *Server) HandleOpenFlow(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req model.FlowOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.QuestionSet == "" {
		req.QuestionSet = metadata.DEFAULT_QUESTION_SET
	}
	flowCtx, err := s.flowService.Open(r.Context(), req.QuestionSet, req.Variant)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, newFlowResponse(flowCtx, true, ""))
}

func (s *Server) HandleGetFlow(w http.ResponseWriter, r *http.Request) {
	flowCtx, err := s.flowService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newFlowResponse(flowCtx, true, r.URL.Query().Get("q")))
}

func (s *Server) HandleSelect(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req model.FlowSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.flowService.Select(r.Context(), mux.Vars(r)["id"], req.QuestionId, req.Value)
	s.respondWithFlowView(w, r, res, err)
}

func (s *Server) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	res, err := s.flowService.Advance(r.Context(), mux.Vars(r)["id"])
	s.respondWithFlowView(w, r, res, err)
}

func (s *Server) HandleRetreat(w http.ResponseWriter, r *http.Request) {
	res, err := s.flowService.Retreat(r.Context(), mux.Vars(r)["id"])
	s.respondWithFlowView(w, r, res, err)
}

func (s *Server) HandleCloseFlow(w http.ResponseWriter, r *http.Request) {
	res, err := s.flowService.Close(r.Context(), mux.Vars(r)["id"])
	s.respondWithFlowView(w, r, res, err)
}

func (s *Server) HandleGetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.flowService.GetSubmission(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sub)
}

func (s *Server) respondWithFlowView(w http.ResponseWriter, r *http.Request, res *model.FlowView, err error) {
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newFlowResponse(res.Flow, res.Accepted, r.URL.Query().Get("q")))
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFlowNotFound), errors.Is(err, metadata.ErrQuestionSetNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
