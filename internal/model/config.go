package model

import "time"

// ClientConfig is the configuration of the task list client.
type ClientConfig struct {
	// Endpoint is the database base URL.
	Endpoint string
	// Headers are added to every request.
	Headers map[string]string
	// Timeout of each request, zero means no timeout.
	Timeout time.Duration
}
