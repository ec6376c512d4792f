package http

// Request holds what the parser has learned about the request. All the strings are views
// into the parser's buffer, so they are valid only until the parser is reset.
type Request struct {
	Method string
	// Target is the request target with an optional http:// scheme and authority stripped.
	Target string
	Proto  string
	// Host is the value of the last Host header seen, if any.
	Host string
}

// Clear drops all the views, so the underlying buffer may be reused.
func (r *Request) Clear() {
	*r = Request{}
}
