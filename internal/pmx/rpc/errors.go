package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CallError wraps a failed unary call with the method it targeted.
type CallError struct {
	Method string
	Err    error
}

func (e *CallError) Error() string {
	st, ok := status.FromError(e.Err)
	if !ok {
		return fmt.Sprintf("%s: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Method, st.Code(), st.Message())
}

func (e *CallError) Unwrap() error { return e.Err }

// GRPCStatus lets status.FromError and status.Code see through the wrapper.
func (e *CallError) GRPCStatus() *status.Status {
	st, _ := status.FromError(e.Err)
	return st
}

// Code returns the gRPC code of err, codes.OK for nil and codes.Unknown for
// errors that did not come from a call.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return status.Code(ce.Err)
	}
	return status.Code(err)
}
