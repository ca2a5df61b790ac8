// Package validation collects findings from OCFL conformance checks. A
// Result accumulates fatal errors, warnings, and explicit pass records so a
// single validation run can surface every defect instead of stopping at the
// first.
package validation

import (
	"context"
	"log/slog"
	"sync"
)

const defaultMaxErrs = 100

// Result accumulates validation findings in three severities: fatal errors,
// warnings, and pass confirmations. Methods are safe for concurrent use.
type Result struct {
	// maxErrs caps the fatal and warning findings (each). Zero means the
	// default cap of 100; -1 means no cap.
	maxErrs int

	mu     sync.RWMutex
	fatal  []error
	warn   []error
	passed []string
}

// NewResult creates a Result that holds up to max fatal and warning findings
// each. If max is 0 the default cap is used; -1 means no cap.
func NewResult(max int) *Result {
	if max == 0 {
		max = defaultMaxErrs
	}
	return &Result{maxErrs: max}
}

// AddFatal records err as a fatal finding.
func (r *Result) AddFatal(err error) *Result {
	if err == nil {
		return r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.capped(len(r.fatal)) {
		return r
	}
	r.fatal = append(r.fatal, err)
	return r
}

// AddWarn records err as a warning.
func (r *Result) AddWarn(err error) *Result {
	if err == nil {
		return r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.capped(len(r.warn)) {
		return r
	}
	r.warn = append(r.warn, err)
	return r
}

// AddOK records an explicit pass confirmation for the named check.
func (r *Result) AddOK(msg string) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passed = append(r.passed, msg)
	return r
}

// LogFatal records err as a fatal finding and logs it.
func (r *Result) LogFatal(logger *slog.Logger, err error) *Result {
	if err != nil {
		r.AddFatal(err)
		logFinding(logger, slog.LevelError, err)
	}
	return r
}

// LogWarn records err as a warning and logs it.
func (r *Result) LogWarn(logger *slog.Logger, err error) *Result {
	if err != nil {
		r.AddWarn(err)
		logFinding(logger, slog.LevelWarn, err)
	}
	return r
}

// LogOK records a pass confirmation and logs it.
func (r *Result) LogOK(logger *slog.Logger, msg string) *Result {
	r.AddOK(msg)
	if logger != nil {
		logger.Info(msg, "type", "ok")
	}
	return r
}

// Valid reports whether r has no fatal findings.
func (r *Result) Valid() bool {
	return r.Err() == nil
}

// Err returns the most recent fatal finding, or nil.
func (r *Result) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.fatal) == 0 {
		return nil
	}
	return r.fatal[len(r.fatal)-1]
}

// Fatal returns all fatal findings.
func (r *Result) Fatal() []error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]error, 0, len(r.fatal)), r.fatal...)
}

// Warn returns all warnings.
func (r *Result) Warn() []error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]error, 0, len(r.warn)), r.warn...)
}

// OK returns all pass confirmations.
func (r *Result) OK() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]string, 0, len(r.passed)), r.passed...)
}

// Merge adds all findings from src to r, up to r's cap.
func (r *Result) Merge(src *Result) {
	src.mu.RLock()
	fatal := append(make([]error, 0, len(src.fatal)), src.fatal...)
	warn := append(make([]error, 0, len(src.warn)), src.warn...)
	passed := append(make([]string, 0, len(src.passed)), src.passed...)
	src.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, err := range fatal {
		if r.capped(len(r.fatal)) {
			break
		}
		r.fatal = append(r.fatal, err)
	}
	for _, err := range warn {
		if r.capped(len(r.warn)) {
			break
		}
		r.warn = append(r.warn, err)
	}
	r.passed = append(r.passed, passed...)
}

func (r *Result) capped(n int) bool {
	max := r.maxErrs
	if max == 0 {
		max = defaultMaxErrs
	}
	return max > 0 && n >= max
}

func logFinding(logger *slog.Logger, level slog.Level, err error) {
	if logger == nil {
		return
	}
	args := []any{}
	var coded *CodedErr
	if AsCodedErr(err, &coded) {
		args = append(args, "ocfl_code", coded.Code().Num, "check", coded.Check())
	}
	logger.Log(context.Background(), level, err.Error(), args...)
}
