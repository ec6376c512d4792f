package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes the classifier may map its results onto. Values are as registered
// with IANA.
const (
	OK Code = 200 // RFC 9110, 15.3.1

	BadRequest                  Code = 400 // RFC 9110, 15.5.1
	Forbidden                   Code = 403 // RFC 9110, 15.5.4
	RequestTimeout              Code = 408 // RFC 9110, 15.5.9
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// CloseConnection isn't a real HTTP status code. It marks errors after which nothing
// should be written to the peer.
const CloseConnection Code = 1

// KnownCodes lists every code declared above, except CloseConnection.
var KnownCodes = []Code{
	OK, BadRequest, Forbidden, RequestTimeout, RequestHeaderFieldsTooLarge,
	InternalServerError, NotImplemented, HTTPVersionNotSupported,
}

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case Forbidden:
		return "Forbidden"
	case RequestTimeout:
		return "Request Timeout"
	case RequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	case HTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	}

	return ""
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}
