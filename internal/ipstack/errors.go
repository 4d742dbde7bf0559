package ipstack

import "fmt"

// Provider error codes the service layer switches on. Any other code is an
// unspecified upstream problem.
const (
	CodeInvalidAccessKey  = 101
	CodeUsageLimitReached = 104
	CodeInvalidAddress    = 106

	// CodeUnknown is the sentinel used when a response body validates as
	// neither a success payload nor a recognized error payload, or when the
	// transport itself fails.
	CodeUnknown = 999
)

// APIError is the typed failure returned by the ipstack client. Raw transport
// errors never cross the client boundary; they are wrapped into this type.
type APIError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ipstack error %d (%s): %s", e.Code, e.Type, e.Info)
}

// unknownError builds the sentinel failure for unrecognized payloads.
func unknownError() *APIError {
	return &APIError{
		Code: CodeUnknown,
		Type: "unknown_error",
		Info: "Unknown error occurred",
	}
}
