package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var errEmptyReply = errors.New("gemini returned an empty reply")

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    log.With(zap.String("model", modelName)),
	}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

// Generate sends prompt as the first and only message of a new chat session,
// so no earlier exchange is ever part of the context.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	session := s.model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		s.log.Warn("Gemini request failed", zap.Error(err))
		return "", sendFailure(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			s.log.Warn("Gemini stopped early",
				zap.Int("candidate", i),
				zap.String("finish_reason", cand.FinishReason.String()),
			)
		}
	}

	return replyFrom(resp)
}

func sendFailure(err error) error {
	return ClassifyUpstreamError(fmt.Errorf("gemini api error: %w", err))
}

// replyFrom returns the text of resp. A response with no text, such as a
// blocked prompt, is an UpstreamError.
func replyFrom(resp *genai.GenerateContentResponse) (string, error) {
	reply := extractText(resp)
	if strings.TrimSpace(reply) == "" {
		return "", &UpstreamError{Err: errEmptyReply}
	}
	return reply, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
