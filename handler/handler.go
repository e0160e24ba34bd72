package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"tekmakon-site/internal/domain"
	"tekmakon-site/internal/knowledge"
	"tekmakon-site/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"

	routeChat         = "/api/chat"
	routeSuggestions  = "/api/chat/suggestions"
	routeContact      = "/api/contact"
	routeInquiryTypes = "/api/contact/inquiry-types"
)

type ChatReplier interface {
	Reply(ctx context.Context, in usecase.ChatInput) (domain.ChatMessage, error)
}

type ContactSubmitter interface {
	Submit(ctx context.Context, sub domain.ContactSubmission) (usecase.ContactOutput, error)
}

type chatRequest struct {
	Message *string `json:"message"`
}

type contactResponse struct {
	Message string `json:"message"`
}

type suggestionsResponse struct {
	Greeting    string   `json:"greeting"`
	Suggestions []string `json:"suggestions"`
}

type inquiryTypesResponse struct {
	InquiryTypes []string `json:"inquiryTypes"`
	Default      string   `json:"default"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Handler serves the site API from API Gateway proxy events.
type Handler struct {
	chat          ChatReplier
	contact       ContactSubmitter
	log           *slog.Logger
	allowedOrigin string
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithAllowedOrigin sets the CORS origin returned on every response.
func WithAllowedOrigin(origin string) Option {
	return func(h *Handler) {
		if o := strings.TrimSpace(origin); o != "" {
			h.allowedOrigin = o
		}
	}
}

func NewHandler(chat ChatReplier, contact ContactSubmitter, opts ...Option) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat service must not be nil")
	}
	if contact == nil {
		return nil, errors.New("handler: contact service must not be nil")
	}
	h := &Handler{
		chat:          chat,
		contact:       contact,
		log:           slog.Default(),
		allowedOrigin: "*",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle routes one request. It never returns an error: every failure is
// rendered as a JSON error body.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	corrID := headerValue(req.Headers, correlationHeader)
	if corrID == "" {
		corrID = uuid.NewString()
	}
	path := normalizePath(req.Path)
	log := h.log.With("correlation_id", corrID, "method", req.HTTPMethod, "path", path)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling request", "panic", fmt.Sprint(r))
			resp = h.errorJSON(corrID, http.StatusInternalServerError, usecase.MsgInternalFailure, usecase.ErrorInternal)
			err = nil
		}
	}()

	if req.HTTPMethod == http.MethodOptions {
		return h.respond(corrID, http.StatusNoContent, ""), nil
	}

	switch {
	case path == routeChat && req.HTTPMethod == http.MethodPost:
		resp = h.handleChat(ctx, log, corrID, req)
	case path == routeContact && req.HTTPMethod == http.MethodPost:
		resp = h.handleContact(ctx, log, corrID, req)
	case path == routeSuggestions && req.HTTPMethod == http.MethodGet:
		resp = h.jsonResponse(corrID, http.StatusOK, suggestionsResponse{
			Greeting:    knowledge.Greeting,
			Suggestions: knowledge.Suggestions(),
		})
	case path == routeInquiryTypes && req.HTTPMethod == http.MethodGet:
		resp = h.jsonResponse(corrID, http.StatusOK, inquiryTypesResponse{
			InquiryTypes: domain.InquiryTypes(),
			Default:      domain.DefaultInquiryType,
		})
	case lo.Contains([]string{routeChat, routeContact, routeSuggestions, routeInquiryTypes}, path):
		resp = h.errorJSON(corrID, http.StatusMethodNotAllowed, "Method not allowed", "")
	default:
		resp = h.errorJSON(corrID, http.StatusNotFound, "Not found", "")
	}

	log.Info("request handled", "status", resp.StatusCode)
	return resp, nil
}

func (h *Handler) handleChat(ctx context.Context, log *slog.Logger, corrID string, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var in chatRequest
	if err := decodeBody(req, &in); err != nil {
		log.Warn("invalid chat body", "err", err)
		return h.errorJSON(corrID, http.StatusBadRequest, usecase.MsgInvalidBody, usecase.ErrorInvalidInput)
	}

	out, err := h.chat.Reply(ctx, usecase.ChatInput{Message: in.Message})
	if err != nil {
		return h.useCaseError(log, corrID, err, usecase.MsgProcessFailed)
	}
	return h.jsonResponse(corrID, http.StatusOK, out)
}

func (h *Handler) handleContact(ctx context.Context, log *slog.Logger, corrID string, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var sub domain.ContactSubmission
	if err := decodeBody(req, &sub); err != nil {
		log.Warn("invalid contact body", "err", err)
		return h.errorJSON(corrID, http.StatusBadRequest, usecase.MsgInvalidBody, usecase.ErrorInvalidInput)
	}

	out, err := h.contact.Submit(ctx, sub)
	if err != nil {
		return h.useCaseError(log, corrID, err, usecase.MsgInternalFailure)
	}
	log.Info("contact email sent", "message_id", out.MessageID, "inquiry_type", out.InquiryType)
	return h.jsonResponse(corrID, http.StatusOK, contactResponse{Message: usecase.MsgSentSuccessfully})
}

// useCaseError maps err to a status and a caller-safe message. Unknown errors
// become INTERNAL_ERROR with fallbackMsg.
func (h *Handler) useCaseError(log *slog.Logger, corrID string, err error, fallbackMsg string) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		log.Error("unexpected error", "err", err)
		return h.errorJSON(corrID, http.StatusInternalServerError, fallbackMsg, usecase.ErrorInternal)
	}

	status := statusFor(ucErr.Code)
	msg := ucErr.Message
	if msg == "" {
		msg = fallbackMsg
	}

	attrs := []any{"code", ucErr.Code, "reason", ucErr.Reason, "status", status}
	switch {
	case ucErr.Code == usecase.ErrorTransport:
		attrs = append(attrs, "provider_detail", usecase.ProviderDetail(err), "err", err)
		log.Error("mail dispatch failed", attrs...)
	case status >= http.StatusInternalServerError:
		log.Error("request failed", append(attrs, "err", err)...)
	default:
		log.Warn("request rejected", attrs...)
	}
	return h.errorJSON(corrID, status, msg, ucErr.Code)
}

func statusFor(code usecase.ErrorCode) int {
	switch code {
	case usecase.ErrorInvalidInput, usecase.ErrorValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) jsonResponse(corrID string, status int, v any) events.APIGatewayProxyResponse {
	buf, err := json.Marshal(v)
	if err != nil {
		h.log.Error("failed to marshal response", "correlation_id", corrID, "err", err)
		return h.respond(corrID, http.StatusInternalServerError, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`)
	}
	return h.respond(corrID, status, string(buf))
}

func (h *Handler) errorJSON(corrID string, status int, msg string, code usecase.ErrorCode) events.APIGatewayProxyResponse {
	return h.jsonResponse(corrID, status, errorResponse{Error: msg, Code: string(code)})
}

func (h *Handler) respond(corrID string, status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			correlationHeader:              corrID,
			"Access-Control-Allow-Origin":  h.allowedOrigin,
			"Access-Control-Allow-Headers": "Content-Type, " + correlationHeader,
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		},
		Body: body,
	}
}

// decodeBody unmarshals the request body into v, undoing API Gateway's
// base64 encoding first when the event says so.
func decodeBody(req events.APIGatewayProxyRequest, v any) error {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return fmt.Errorf("decode base64 body: %w", err)
		}
		body = decoded
	}
	return json.Unmarshal(body, v)
}

// headerValue looks a header up case-insensitively.
func headerValue(headers map[string]string, name string) string {
	key, ok := lo.FindKeyBy(headers, func(k, _ string) bool {
		return strings.EqualFold(k, name)
	})
	if !ok {
		return ""
	}
	return strings.TrimSpace(headers[key])
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
