package rls

import (
	"context"
	"log/slog"
)

// LevelCritical is used for enforcement violations: an event that indicates
// a potential data leak and should alert operators.
const LevelCritical = slog.LevelError + 4

// Observer receives security events emitted by the engine. The core engine
// logic stays pure; all side effects flow through this interface.
type Observer interface {
	// ContextBuilt is a debug-level audit record of a resolved context.
	ContextBuilt(resource, role, config string)
	// PolicyMisconfigured reports a malformed or misplaced filter config
	// that the engine converted into a denial.
	PolicyMisconfigured(resource, role, detail string)
	// AccessDenied reports a fail-closed denial for an authenticated caller.
	AccessDenied(resource, role, detail string)
	// EnforcementViolation reports a handler that fetched data without
	// honoring the RLS context. Emitted before the violation is returned.
	EnforcementViolation(resource, role, config string)
}

// LogObserver writes engine events to a slog logger.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) ContextBuilt(resource, role, config string) {
	o.log.Debug("rls context built",
		"resource", resource, "role", role, "filter_config", config)
}

func (o *LogObserver) PolicyMisconfigured(resource, role, detail string) {
	o.log.Warn("rls policy misconfigured",
		"resource", resource, "role", role, "detail", detail)
}

func (o *LogObserver) AccessDenied(resource, role, detail string) {
	o.log.Info("rls access denied",
		"resource", resource, "role", role, "detail", detail)
}

func (o *LogObserver) EnforcementViolation(resource, role, config string) {
	o.log.Log(context.Background(), LevelCritical, "rls enforcement violation",
		"resource", resource, "role", role, "filter_config", config)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) ContextBuilt(resource, role, config string)        {}
func (NopObserver) PolicyMisconfigured(resource, role, detail string) {}
func (NopObserver) AccessDenied(resource, role, detail string)        {}
func (NopObserver) EnforcementViolation(resource, role, config string) {
}
