package validation

import (
	"errors"
	"fmt"
)

// Code identifies an OCFL specification rule.
type Code struct {
	Num  string // spec code, e.g. "E001"
	Desc string // the rule's text in the spec
	URL  string // link into the spec
}

// CodedErr is a validation finding that carries the OCFL spec code it
// violates and the name of the check that produced it.
type CodedErr struct {
	code  Code
	check string
	err   error
}

// NewCodedErr wraps err with a spec code and check name. If err is already a
// *CodedErr it is returned unchanged.
func NewCodedErr(err error, code Code, check string) error {
	var coded *CodedErr
	if errors.As(err, &coded) {
		return err
	}
	return &CodedErr{code: code, check: check, err: err}
}

func (e *CodedErr) Error() string {
	return fmt.Sprintf("[%s] %s", e.code.Num, e.err.Error())
}

func (e *CodedErr) Unwrap() error { return e.err }

// Code returns the OCFL spec code for the finding.
func (e *CodedErr) Code() Code { return e.code }

// Check returns the name of the check that produced the finding.
func (e *CodedErr) Check() string { return e.check }

// AsCodedErr reports whether err wraps a *CodedErr, setting target if so.
func AsCodedErr(err error, target **CodedErr) bool {
	return errors.As(err, target)
}
