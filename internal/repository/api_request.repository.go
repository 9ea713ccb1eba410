package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type APIRequest struct {
	RequestID    uuid.UUID
	IPAddress    *string
	Method       string
	Route        string
	RequestBody  *string
	StatusCode   *int32
	ResponseBody *string
	StartTs      time.Time
	DurationMs   *int64
}

// ApiRequestRepository records inbound requests for latency and usage
// inspection. It is optional infrastructure - the API runs without a
// database and simply skips logging.
type ApiRequestRepository interface {
	Add(db *sql.DB, ar APIRequest) (*APIRequest, error)
	Update(db *sql.DB, ar APIRequest) error
}

type ApiRequestRepositoryHandler struct{}

func (h ApiRequestRepositoryHandler) Add(db *sql.DB, ar APIRequest) (*APIRequest, error) {
	ar.RequestID = uuid.New()

	_, err := db.Exec(`
		INSERT INTO api_request (request_id, ip_address, method, route, request_body, start_ts)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ar.RequestID, ar.IPAddress, ar.Method, ar.Route, ar.RequestBody, ar.StartTs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert API request: %w", err)
	}

	return &ar, nil
}

func (h ApiRequestRepositoryHandler) Update(db *sql.DB, ar APIRequest) error {
	_, err := db.Exec(`
		UPDATE api_request
		SET duration_ms = $1, status_code = $2, response_body = $3
		WHERE request_id = $4`,
		ar.DurationMs, ar.StatusCode, ar.ResponseBody, ar.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update API request: %w", err)
	}

	return nil
}
