package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

const chatHelpReply = "I can help you search for properties. Try telling me what " +
	"you're looking for, like \"3 bedroom house under 900k\" or \"affordable condo downtown\"."

const chatErrorReply = "I'm sorry, I encountered an error processing your message. Please try again."

// ChatService turns one chat message into confirmed search parameters.
type ChatService struct {
	interpreter *QueryInterpreter
	logger      *zap.Logger
}

// NewChatService creates a chat service.
func NewChatService(interpreter *QueryInterpreter, logger *zap.Logger) *ChatService {
	return &ChatService{interpreter: interpreter, logger: logger}
}

// Chat interprets the message (model when configured, rules otherwise) and
// replies with a bulleted confirmation of the understood criteria plus a
// payload the client can feed straight into a search. A message yielding no
// structured criteria gets a help reply; a model failure gets an apology.
func (s *ChatService) Chat(ctx context.Context, req *model.ChatRequest) *model.ChatResponse {
	params, source := s.interpreter.InterpretWithModel(ctx, req.Message)

	if source == model.SourceFallback {
		s.logger.Warn("chat interpretation degraded", zap.String("message", req.Message))
		return &model.ChatResponse{
			ResponseText: chatErrorReply,
			Type:         model.ChatPayloadQueryParameters,
		}
	}
	if !params.HasStructured() {
		return &model.ChatResponse{
			ResponseText: chatHelpReply,
			Type:         model.ChatPayloadQueryParameters,
		}
	}

	return &model.ChatResponse{
		ResponseText: renderInterpretation(&params),
		Payload:      model.ChatQueryPayload{Q: req.Message, QueryParameters: params},
		Type:         model.ChatPayloadQueryParameters,
	}
}

// renderInterpretation writes one bullet per understood criterion.
func renderInterpretation(qp *model.QueryParameters) string {
	var b strings.Builder
	b.WriteString("Here's what I understood from your search:\n")

	if len(qp.PropertyType) > 0 {
		names := make([]string, len(qp.PropertyType))
		for i, t := range qp.PropertyType {
			names[i] = string(t)
		}
		fmt.Fprintf(&b, "- Property type: %s\n", strings.Join(names, ", "))
	}
	if len(qp.Bedrooms) > 0 {
		fmt.Fprintf(&b, "- Bedrooms: %s\n", strings.Join(qp.Bedrooms, ", "))
	}
	switch {
	case qp.MinPrice != nil && qp.MaxPrice != nil:
		fmt.Fprintf(&b, "- Price range: $%s - $%s\n", groupThousands(*qp.MinPrice), groupThousands(*qp.MaxPrice))
	case qp.MaxPrice != nil:
		fmt.Fprintf(&b, "- Price range: up to $%s\n", groupThousands(*qp.MaxPrice))
	case qp.MinPrice != nil:
		fmt.Fprintf(&b, "- Price range: from $%s\n", groupThousands(*qp.MinPrice))
	}
	switch {
	case qp.MinSqft != nil && qp.MaxSqft != nil:
		fmt.Fprintf(&b, "- Square footage: %d - %d sqft\n", *qp.MinSqft, *qp.MaxSqft)
	case qp.MaxSqft != nil:
		fmt.Fprintf(&b, "- Square footage: up to %d sqft\n", *qp.MaxSqft)
	case qp.MinSqft != nil:
		fmt.Fprintf(&b, "- Square footage: at least %d sqft\n", *qp.MinSqft)
	}
	if qp.Title != "" {
		fmt.Fprintf(&b, "- Title search: %s\n", qp.Title)
	}
	if qp.Description != "" {
		fmt.Fprintf(&b, "- Description search: %s\n", qp.Description)
	}
	if qp.Sort != "" && qp.Sort != model.SortRelevance {
		fmt.Fprintf(&b, "- Sort: %s\n", sortLabel(qp.Sort))
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortLabel(s model.Sort) string {
	switch s {
	case model.SortPriceAsc:
		return "price, lowest first"
	case model.SortPriceDesc:
		return "price, highest first"
	case model.SortNewest:
		return "newest listings"
	}
	return string(s)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
