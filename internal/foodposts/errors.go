package foodposts

import "fmt"

// HTTPError reports a non-2xx response. Message carries the server's error
// envelope message when one was present.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// ProtocolError reports a 2xx response whose envelope violates the API
// contract. Callers treat it like an HTTPError; the client logs it separately.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "unexpected response from server: " + e.Reason
}
