// Package audit records security events to a local SQLite database.
// Writes are asynchronous: events are queued on a bounded channel and
// flushed in batches by a background worker, so the hot path never
// blocks on disk.
package audit

import (
	"time"
)

// Event kinds recorded by the service.
const (
	KindLoginFailed       = "login_failed"
	KindLoginSucceeded    = "login_succeeded"
	KindRegisterFailed    = "register_failed"
	KindOriginRejected    = "origin_rejected"
	KindOwnershipRejected = "ownership_rejected"
	KindRateLimited       = "rate_limited"
)

// Event is a single security-relevant occurrence.
type Event struct {
	Timestamp time.Time
	Kind      string
	ClientIP  string
	Username  string
	UserID    string
	Origin    string
	Detail    string
}

// Recorder accepts security events. Implementations must not block
// the caller.
type Recorder interface {
	Record(ev Event)
	Close() error
}

// Nop returns a Recorder that discards all events. Used when auditing
// is disabled in config.
func Nop() Recorder { return nopRecorder{} }

type nopRecorder struct{}

func (nopRecorder) Record(Event) {}

func (nopRecorder) Close() error { return nil }
