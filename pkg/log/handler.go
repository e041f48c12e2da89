package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// StacktraceAttrKey is the field zerolog uses for stacks attached by Error.
const StacktraceAttrKey = "stack"

func init() {
	zerolog.ErrorStackFieldName = StacktraceAttrKey
	zerolog.ErrorStackMarshaler = marshalStack
}

// marshalStack formats the stack recorded by cockroachdb/errors.WithStack.
// Errors without a recorded stack produce no field.
func marshalStack(err error) interface{} {
	if s := extractStacktrace(err); s != "" {
		return s
	}
	return nil
}

func extractStacktrace(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		safeDetails := errors.GetSafeDetails(e).SafeDetails
		if len(safeDetails) > 0 && safeDetails[0] != "" {
			return safeDetails[0]
		}
	}
	return ""
}
