package http

// Classification is the verdict of the parser over the bytes it was fed so far.
type Classification uint8

const (
	// Incomplete means more bytes are needed. It's the only non-terminal classification.
	Incomplete Classification = iota
	// Complete is a well-formed GET request.
	Complete
	// Malformed is any grammar violation, including a bad line terminator or an overflow
	// of the parser buffer.
	Malformed
	// Forbidden is a well-formed request targeting a path the client may not access.
	Forbidden
	// InternalError signals a broken parser state.
	InternalError
	// Closed means the peer disconnected before a terminal classification was reached.
	Closed
)

// Terminal reports whether the classification ends the parse.
func (c Classification) Terminal() bool {
	return c != Incomplete
}

func (c Classification) String() string {
	switch c {
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	case Malformed:
		return "malformed"
	case Forbidden:
		return "forbidden"
	case InternalError:
		return "internal error"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
