package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fairval/internal/domain"
	"fairval/internal/logger"
	"fairval/internal/repository"
	"fairval/internal/service"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db                   *sql.DB
	ValuationService     service.ValuationService
	ApiRequestRepository repository.ApiRequestRepository
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to fairval"})
	})
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"status": "healthy"})
	})
	router.POST("/api/get_company_info", m.getCompanyInfo)
	router.POST("/api/calculate_dcf", m.calculateDcf)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	logger.Info("starting api on port %d", port)
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

// statusForError maps domain error kinds to response codes. Everything the
// caller can fix is a 4xx; only genuinely unexpected failures become 500s.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownTicker):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSolutionInRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstreamFetch):
		return http.StatusFailedDependency
	case errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrInvalidTerminalGrowth),
		errors.Is(err, domain.ErrDegenerateInput),
		errors.Is(err, domain.ErrInsufficientHistory):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		logger.Warn("failed to get raw request data: %v", err)
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	if m.Db == nil || m.ApiRequestRepository == nil {
		ctx.Next()
		return
	}

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(m.Db, repository.APIRequest{
		IPAddress:   strPtr(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: strPtr(string(body)),
		StartTs:     start,
	})
	if err != nil {
		logger.Error(err)
	}

	ctx.Next()

	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())

		err = m.ApiRequestRepository.Update(m.Db, *req)
		if err != nil {
			logger.Error(err)
		}
	}
}
