package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"talky-backend/internal/middleware"
	"talky-backend/internal/models"
	"talky-backend/internal/repository"
	"talky-backend/internal/services"
)

const (
	msgInvalidBody     = "invalid request body"
	msgPromptMissing   = "prompt missing"
	msgDatabaseFailure = "Server error: failed to connect to the database."
	msgInvalidAPIKey   = "There is a problem with the Gemini API key. Please check your key."
	msgRelayFailure    = "Failed to get a response from Gemini or save the chat."
)

type replyGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type chatStore interface {
	Open(ctx context.Context) (repository.ChatRecordWriter, error)
}

type recordPublisher interface {
	PublishRecord(ctx context.Context, record *models.ChatRecord)
}

type ChatHandler struct {
	store  chatStore
	model  replyGenerator
	events recordPublisher
	log    *zap.Logger
}

func NewChatHandler(store chatStore, model replyGenerator, events recordPublisher, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		store:  store,
		model:  model,
		events: events,
		log:    log,
	}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(zap.String("request_id", r.Header.Get(middleware.RequestIDHeader)))

	prompt, err := decodePrompt(r.Body)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		log.Warn("invalid chat request", zap.Error(err))
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	// A started exchange runs to completion even if the caller goes away.
	ctx := context.WithoutCancel(r.Context())

	store, err := h.store.Open(ctx)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgDatabaseFailure)
		return
	}

	reply, err := h.relay(ctx, store, prompt)
	if err != nil {
		log.Error("chat relay failed", zap.Error(err))
		h.writeRelayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// relay asks the model and stores the exchange. Either step failing fails the
// whole call, so a record is only written for a reply that is returned.
func (h *ChatHandler) relay(ctx context.Context, store repository.ChatRecordWriter, prompt string) (string, error) {
	reply, err := h.model.Generate(ctx, prompt)
	if err != nil {
		return "", services.ClassifyUpstreamError(err)
	}

	record := &models.ChatRecord{Prompt: prompt, Reply: reply}
	if err := store.Create(ctx, record); err != nil {
		return "", &services.PersistenceError{Err: err}
	}

	if h.events != nil {
		h.events.PublishRecord(ctx, record)
	}

	return reply, nil
}

func (h *ChatHandler) writeRelayError(w http.ResponseWriter, err error) {
	var authErr *services.UpstreamAuthError
	if errors.As(err, &authErr) {
		writeError(w, http.StatusInternalServerError, msgInvalidAPIKey)
		return
	}
	writeError(w, http.StatusInternalServerError, msgRelayFailure)
}

func decodePrompt(body io.Reader) (string, error) {
	var req models.ChatRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", &services.ValidationError{Message: msgPromptMissing}
		}
		return "", err
	}

	if req.Prompt == "" {
		return "", &services.ValidationError{Message: msgPromptMissing}
	}
	return req.Prompt, nil
}
