package middlewares

import (
	"context"
	"net/http"
	"time"

	//
	"system-info-mcp/internal/globals"

	//
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// AccessLogsMiddleware logs every HTTP request and tags it with a request id.
// An incoming X-Request-Id header is kept, otherwise a new UUID is generated.
type AccessLogsMiddleware struct {
	dependencies AccessLogsMiddlewareDependencies
}

// AccessLogsMiddlewareDependencies holds the dependencies for the access logs middleware
type AccessLogsMiddlewareDependencies struct {
	AppCtx *globals.ApplicationContext
}

func NewAccessLogsMiddleware(deps AccessLogsMiddlewareDependencies) *AccessLogsMiddleware {
	return &AccessLogsMiddleware{
		dependencies: deps,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses (SSE, streamable HTTP) working through the recorder
func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (mw *AccessLogsMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		start := time.Now()

		requestID := req.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		rw.Header().Set(RequestIDHeader, requestID)

		recorder := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		next.ServeHTTP(recorder, req.WithContext(ContextWithRequestID(req.Context(), requestID)))

		mw.dependencies.AppCtx.Logger.Info("access log",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"status", recorder.status,
			"remote_addr", req.RemoteAddr,
			"user_agent", req.UserAgent(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// HTTPContextFunc forwards the request id into MCP handler contexts
func HTTPContextFunc(ctx context.Context, req *http.Request) context.Context {
	if requestID := RequestIDFromContext(req.Context()); requestID != "" {
		return ContextWithRequestID(ctx, requestID)
	}
	return ctx
}
