package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
	muxTypesResponse "github.com/Motmedel/static_server_go/pkg/http/mux/types/response"
	"github.com/Motmedel/static_server_go/pkg/http/static/security_headers"
	"github.com/Motmedel/static_server_go/pkg/memory"
)

const (
	Path       = "/health"
	StatusOk   = "ok"
	TimeFormat = "2006-01-02T15:04:05.000Z07:00"
)

type Memory struct {
	Used  int `json:"used"`
	Total int `json:"total"`
}

type Status struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Memory    Memory  `json:"memory"`
}

type Endpoint struct {
	StartTime time.Time
	Now       func() time.Time
	ReadUsage func() *memory.Usage
}

func New(startTime time.Time) *Endpoint {
	return &Endpoint{StartTime: startTime}
}

func (endpoint *Endpoint) MakeStatus() *Status {
	now := time.Now
	if endpoint.Now != nil {
		now = endpoint.Now
	}

	readUsage := memory.Read
	if endpoint.ReadUsage != nil {
		readUsage = endpoint.ReadUsage
	}

	currentTime := now()
	usage := readUsage()
	if usage == nil {
		usage = &memory.Usage{}
	}

	return &Status{
		Status:    StatusOk,
		Timestamp: currentTime.UTC().Format(TimeFormat),
		Uptime:    currentTime.Sub(endpoint.StartTime).Seconds(),
		Memory:    Memory{Used: usage.HeapUsed, Total: usage.HeapTotal},
	}
}

func (endpoint *Endpoint) Serve() (*muxTypesResponse.Response, error) {
	if endpoint == nil {
		return nil, motmedelErrors.NewWithTrace(muxErrors.ErrNilHealthEndpoint)
	}

	status := endpoint.MakeStatus()
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json marshal indent: %w", err), status)
	}

	return &muxTypesResponse.Response{
		StatusCode: http.StatusOK,
		Headers: append(
			[]*muxTypesResponse.HeaderEntry{
				{Name: "Content-Type", Value: "application/json"},
				{Name: "Content-Length", Value: strconv.Itoa(len(data))},
			},
			security_headers.Headers()...,
		),
		Body: data,
	}, nil
}
