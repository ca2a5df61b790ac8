package ocflkit

import (
	"log/slog"

	"github.com/ocflkit/ocflkit/logging"
	"github.com/ocflkit/ocflkit/validation"
)

// ValidationOption configures ValidateObjectRoot and ValidateContent.
type ValidationOption func(*validationOptions)

type validationOptions struct {
	logger   *slog.Logger
	result   *validation.Result
	conf     Config
	alg      string // alternate digest algorithm for content validation
	numGos   int    // digest concurrency
	maxFinds int
}

func defaultValidationOptions() *validationOptions {
	return &validationOptions{
		logger: logging.DisabledLogger(),
	}
}

// ValidationLogger sets a logger that receives findings as they are recorded.
func ValidationLogger(l *slog.Logger) ValidationOption {
	return func(opts *validationOptions) {
		opts.logger = l
	}
}

// ValidationConfig sets the defaults (digest algorithm, content directory,
// version padding) used when values can't be read from the object itself.
func ValidationConfig(conf Config) ValidationOption {
	return func(opts *validationOptions) {
		opts.conf = conf
	}
}

// AppendResult accumulates findings into r instead of a new Result, so
// several checks can share one report.
func AppendResult(r *validation.Result) ValidationOption {
	return func(opts *validationOptions) {
		opts.result = r
	}
}

// ValidationAlg requests content validation with an algorithm other than the
// inventory's primary one. The algorithm must appear in the inventory's
// fixity block.
func ValidationAlg(alg string) ValidationOption {
	return func(opts *validationOptions) {
		opts.alg = alg
	}
}

// DigestConcurrency caps the number of concurrent file digests during content
// validation.
func DigestConcurrency(n int) ValidationOption {
	return func(opts *validationOptions) {
		opts.numGos = n
	}
}

// MaxFindings caps the recorded fatal and warning findings (each); -1 for no
// cap.
func MaxFindings(n int) ValidationOption {
	return func(opts *validationOptions) {
		opts.maxFinds = n
	}
}

func validationSetup(opts []ValidationOption) (*validationOptions, *validation.Result) {
	vopts := defaultValidationOptions()
	for _, o := range opts {
		o(vopts)
	}
	result := vopts.result
	if result == nil {
		result = validation.NewResult(vopts.maxFinds)
	}
	return vopts, result
}
