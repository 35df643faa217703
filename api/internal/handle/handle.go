package handle

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cash-reader/api/internal/ocr/types"
)

// Analyzer is the extraction step behind POST /api/analyze.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (types.DenominationCount, error)
	HasCredential() bool
}

type Handle struct {
	an    Analyzer
	model string
}

func New(an Analyzer, model string) *Handle {
	return &Handle{an: an, model: model}
}

type RouterOptions struct {
	MaxUploadBytes   int64
	CORSAllowOrigins []string
}

func NewRouter(h *Handle, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		corsMiddleware(opts.CORSAllowOrigins),
	)
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
		r.Use(requestSizeLimiter(opts.MaxUploadBytes))
	}

	r.GET("/healthz", h.Health)
	r.POST("/api/analyze", h.Analyze)
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func (h *Handle) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"model":      h.model,
		"credential": h.an.HasCredential(),
	})
}
