package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cox_coop/internal/submission"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds a submission body.
const maxBodyBytes = 64 << 10

type submitHandler struct {
	service *submission.Service
}

func (h *submitHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req submission.Feedback
	handleSubmit(w, r, &req, "feedback", func(ctx context.Context) error {
		return h.service.SubmitFeedback(ctx, req)
	})
}

func (h *submitHandler) Tip(w http.ResponseWriter, r *http.Request) {
	var req submission.Tip
	handleSubmit(w, r, &req, "tip", func(ctx context.Context) error {
		return h.service.SubmitTip(ctx, req)
	})
}

func (h *submitHandler) Vision(w http.ResponseWriter, r *http.Request) {
	var req submission.Vision
	handleSubmit(w, r, &req, "vision", func(ctx context.Context) error {
		return h.service.SubmitVision(ctx, req)
	})
}

func (h *submitHandler) Creator(w http.ResponseWriter, r *http.Request) {
	var req submission.Registration
	handleSubmit(w, r, &req, "registration", func(ctx context.Context) error {
		return h.service.RegisterCreator(ctx, req)
	})
}

// handleSubmit decodes the body into req, runs submit and maps its outcome
// onto a response.
func handleSubmit(w http.ResponseWriter, r *http.Request, req any, kind string, submit func(context.Context) error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := submit(r.Context())

	var vErr *submission.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, submission.ErrWriteFailed):
		writeError(w, http.StatusInternalServerError, "Failed to submit "+kind)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("kind", kind).Msg("Submission error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
