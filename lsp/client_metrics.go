package lsp

import (
	"time"
)

// ClientMetrics is a snapshot of a client's request counters
type ClientMetrics struct {
	Command            string    `json:"command"`
	Status             int       `json:"status"`
	TotalRequests      int64     `json:"total_requests"`
	SuccessfulRequests int64     `json:"successful_requests"`
	FailedRequests     int64     `json:"failed_requests"`
	LastInitialized    time.Time `json:"last_initialized"`
	LastErrorTime      time.Time `json:"last_error_time"`
	LastError          string    `json:"last_error,omitempty"`
	Connected          bool      `json:"is_connected"`
	ProcessID          int32     `json:"process_id"`
}

func (c *ClientMetrics) GetCommand() string {
	return c.Command
}

func (c *ClientMetrics) GetStatus() int {
	return c.Status
}

func (c *ClientMetrics) GetTotalRequests() int64 {
	return c.TotalRequests
}

func (c *ClientMetrics) GetSuccessfulRequests() int64 {
	return c.SuccessfulRequests
}

func (c *ClientMetrics) GetFailedRequests() int64 {
	return c.FailedRequests
}

func (c *ClientMetrics) GetLastInitialized() time.Time {
	return c.LastInitialized
}

func (c *ClientMetrics) GetLastErrorTime() time.Time {
	return c.LastErrorTime
}

func (c *ClientMetrics) GetLastError() string {
	return c.LastError
}

func (c *ClientMetrics) IsConnected() bool {
	return c.Connected
}

func (c *ClientMetrics) GetProcessID() int32 {
	return c.ProcessID
}
