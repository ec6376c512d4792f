package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf returns the code carried by the error, or InternalServerError if the error
// isn't an HTTPError.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	ErrCloseConnection  = NewError(CloseConnection, "actively closing the connection")
	ErrConnectionClosed = NewError(CloseConnection, "connection closed by the peer")
	ErrShutdown         = NewError(CloseConnection, "shutdown")
	ErrGracefulShutdown = NewError(CloseConnection, "graceful shutdown")

	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrBadRequestLine          = NewError(BadRequest, "malformed request line")
	ErrBadTarget               = NewError(BadRequest, "request target must be an absolute path")
	ErrBadLineTerminator       = NewError(BadRequest, "line must be terminated by CRLF")
	ErrForbidden               = NewError(Forbidden, "forbidden")
	ErrRequestTimeout          = NewError(RequestTimeout, "request timeout")
	ErrTooLarge                = NewError(RequestHeaderFieldsTooLarge, "request does not fit into the buffer")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
	ErrMethodNotImplemented    = NewError(NotImplemented, "request method is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)
