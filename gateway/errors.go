package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies a failed backend call.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindLoad
	KindSave
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindAuth:
		return "AuthError"
	case KindLoad:
		return "LoadError"
	case KindSave:
		return "SaveError"
	case KindDelete:
		return "DeleteError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every Client call. Message is safe to show to the
// operator; Status is zero when the request never got a response.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrNetwork = &Error{Kind: KindNetwork}
	ErrAuth    = &Error{Kind: KindAuth}
	ErrLoad    = &Error{Kind: KindLoad}
	ErrSave    = &Error{Kind: KindSave}
	ErrDelete  = &Error{Kind: KindDelete}
)

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// networkError wraps a transport failure.
func networkError(msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

// backendMessage extracts {"error": "..."} from a failed response. A body that
// is not JSON yields a status based message; a JSON body without an error
// field yields fallback.
func backendMessage(status int, body []byte, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Sprintf("Server Error (%d). Check server logs for details.", status)
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return msg
	}
	return fallback
}
