package transport

import "github.com/indigo-web/fsm/http"

// Parser classifies the bytes read from a single connection. The connection loop reads
// straight into Free() and reports the amount of bytes read via Commit.
type Parser interface {
	// Free returns the unfilled tail of the parser buffer.
	Free() []byte
	// Commit marks n more bytes of the buffer as filled and advances the parsing as far
	// as they permit.
	Commit(n int) (http.Classification, error)
	// Close reports that no more bytes will arrive.
	Close() (http.Classification, error)
	// Request returns what is known about the request so far.
	Request() *http.Request
	// Reset prepares the parser for a new connection.
	Reset()
}
