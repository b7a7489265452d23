// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// HealthDial caps the wait time when dialing the health probe.
const HealthDial = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SessionSweep is the interval between expired-session purges.
const SessionSweep = time.Hour
