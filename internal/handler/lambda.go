// Package handler adapts API Gateway proxy events onto the MCP HTTP surface.
package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

type RequestCreator func(ctx context.Context, method, url string, body *bytes.Buffer) (*http.Request, error)

type Handler struct {
	next           http.Handler
	requestCreator RequestCreator
}

func defaultRequestCreator(ctx context.Context, method, url string, body *bytes.Buffer) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, url, body)
}

func New(next http.Handler, requestCreator RequestCreator) *Handler {
	if requestCreator == nil {
		requestCreator = defaultRequestCreator
	}
	return &Handler{
		next:           next,
		requestCreator: requestCreator,
	}
}

func (h *Handler) HandleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Body:       "Invalid request body",
		}, nil
	}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
		if body.Len() > 0 {
			method = http.MethodPost
		}
	}

	req, err := h.requestCreator(ctx, method, requestURL(event), body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create request")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       "Failed to create request",
		}, err
	}

	for key, values := range event.MultiValueHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for key, value := range event.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	// Create response writer to capture output
	w := &responseWriter{
		headers: make(http.Header),
		body:    &bytes.Buffer{},
		code:    http.StatusOK,
	}

	h.next.ServeHTTP(w, req)

	headers := make(map[string]string, len(w.headers))
	for key := range w.headers {
		headers[key] = w.headers.Get(key)
	}

	return events.APIGatewayProxyResponse{
		StatusCode:        w.code,
		Headers:           headers,
		MultiValueHeaders: w.headers,
		Body:              w.body.String(),
	}, nil
}

func requestBody(event events.APIGatewayProxyRequest) (*bytes.Buffer, error) {
	if !event.IsBase64Encoded {
		return bytes.NewBufferString(event.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(decoded), nil
}

func requestURL(event events.APIGatewayProxyRequest) string {
	path := event.Path
	if path == "" {
		path = "/"
	}

	query := url.Values{}
	for key, values := range event.MultiValueQueryStringParameters {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	for key, value := range event.QueryStringParameters {
		if !query.Has(key) {
			query.Set(key, value)
		}
	}

	u := url.URL{Scheme: "http", Host: "localhost", Path: path, RawQuery: query.Encode()}
	return u.String()
}

// responseWriter implements http.ResponseWriter
type responseWriter struct {
	headers     http.Header
	body        *bytes.Buffer
	code        int
	wroteHeader bool
}

func (w *responseWriter) Header() http.Header {
	return w.headers
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.body.Write(b)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.code = statusCode
}

// Flush is a no-op; the whole body is returned at once.
func (w *responseWriter) Flush() {}
