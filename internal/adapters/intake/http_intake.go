package intake

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// maxRequestBytes bounds request bodies
const maxRequestBytes = 10 << 20

// extractRequest is the body of POST /v1/extract
type extractRequest struct {
	HTML        string `json:"html"`
	CompanyName string `json:"company_name"`
}

// postingRequest is the body of POST /v1/postings
type postingRequest struct {
	Reference string `json:"reference" binding:"required"`
	SourceURL string `json:"source_url"`
	Employer  string `json:"employer"`
	HTML      string `json:"html"`
	Refresh   bool   `json:"refresh"`
}

// HTTPIntake exposes the contact service as a JSON API
type HTTPIntake struct {
	service        *core.ContactService
	logger         *zap.Logger
	listenAddr     string
	requestTimeout time.Duration
	engine         *gin.Engine
	server         *http.Server
	listener       net.Listener
}

// NewHTTPIntake creates a new HTTP intake
func NewHTTPIntake(service *core.ContactService, logger *zap.Logger, listenAddr string, requestTimeout time.Duration) *HTTPIntake {
	i := &HTTPIntake{
		service:        service,
		logger:         logger,
		listenAddr:     listenAddr,
		requestTimeout: requestTimeout,
	}
	i.engine = i.routes()
	return i
}

// Handler returns the HTTP handler serving the API
func (i *HTTPIntake) Handler() http.Handler {
	return i.engine
}

func (i *HTTPIntake) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), i.logRequests(), i.limitBody())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.POST("/extract", i.handleExtract)
	v1.POST("/postings", i.handleProcess)
	v1.GET("/postings/:reference", i.handleLookup)
	v1.DELETE("/postings/:reference", i.handleForget)

	return r
}

// Start starts the HTTP server
func (i *HTTPIntake) Start() error {
	l, err := net.Listen("tcp", i.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", i.listenAddr, err)
	}
	i.listener = l
	i.server = &http.Server{
		Handler:           i.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	i.logger.Info("HTTP intake starting", zap.String("address", l.Addr().String()))

	go func() {
		if err := i.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			i.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the address the server listens on, once started
func (i *HTTPIntake) Addr() string {
	if i.listener == nil {
		return ""
	}
	return i.listener.Addr().String()
}

// Stop gracefully shuts the HTTP server down
func (i *HTTPIntake) Stop() error {
	if i.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return i.server.Shutdown(ctx)
}

// ProcessPosting processes a posting directly
func (i *HTTPIntake) ProcessPosting(ctx context.Context, posting *core.JobPosting) (*core.ContactRecord, error) {
	return i.service.ProcessPosting(ctx, posting)
}

func (i *HTTPIntake) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, i.service.Extract(req.HTML, req.CompanyName))
}

func (i *HTTPIntake) handleProcess(c *gin.Context) {
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := i.requestContext(c)
	defer cancel()

	record, err := i.service.ProcessPosting(ctx, &core.JobPosting{
		Reference: req.Reference,
		SourceURL: req.SourceURL,
		Employer:  req.Employer,
		HTML:      req.HTML,
		Refresh:   req.Refresh,
	})
	if err != nil {
		if errors.Is(err, core.ErrMissingReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		i.logger.Error("Failed to process posting", zap.String("reference", req.Reference), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process posting"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (i *HTTPIntake) handleLookup(c *gin.Context) {
	ctx, cancel := i.requestContext(c)
	defer cancel()

	record, err := i.service.Lookup(ctx, c.Param("reference"))
	if err != nil {
		i.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (i *HTTPIntake) handleForget(c *gin.Context) {
	ctx, cancel := i.requestContext(c)
	defer cancel()

	if err := i.service.Forget(ctx, c.Param("reference")); err != nil {
		i.writeStoreError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (i *HTTPIntake) writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		i.logger.Error("Store request failed", zap.String("reference", c.Param("reference")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store request failed"})
	}
}

func (i *HTTPIntake) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if i.requestTimeout > 0 {
		return context.WithTimeout(c.Request.Context(), i.requestTimeout)
	}
	return context.WithCancel(c.Request.Context())
}

func (i *HTTPIntake) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
		c.Next()
	}
}

func (i *HTTPIntake) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		i.logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
