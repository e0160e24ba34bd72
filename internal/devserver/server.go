package devserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Proxy is the API Gateway proxy handler served locally.
type Proxy interface {
	Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

type Options struct {
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// New returns a gin engine that translates plain HTTP requests into proxy
// events so the Lambda handler can run without API Gateway.
func New(proxy Proxy, opts Options) (*gin.Engine, error) {
	if proxy == nil {
		return nil, errors.New("devserver: proxy must not be nil")
	}
	if opts.MaxBodyBytes <= 0 {
		return nil, errors.New("devserver: max body bytes must be positive")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(opts.Logger), SecurityHeaders(), RequestSizeLimiter(opts.MaxBodyBytes))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	serve := proxyHandler(proxy, opts.Logger)
	r.Any("/api/*path", serve)
	r.NoRoute(serve)
	return r, nil
}

func proxyHandler(proxy Proxy, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		resp, err := proxy.Handle(c.Request.Context(), toProxyRequest(c.Request, body))
		if err != nil {
			log.Error("proxy handler failed", "err", err)
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Internal server error"})
			return
		}

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], []byte(resp.Body))
	}
}

func toProxyRequest(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		headers[k] = strings.Join(v, ",")
	}
	query := make(map[string]string, len(r.URL.Query()))
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	return events.APIGatewayProxyRequest{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		Headers:               headers,
		MultiValueHeaders:     r.Header,
		QueryStringParameters: query,
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  uuid.NewString(),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
		},
	}
}
