package http1

import (
	"bytes"

	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const (
	methodGET    = "GET"
	protoHTTP11  = "HTTP/1.1"
	schemeHTTP   = "http://"
	fieldsSepTab = '\t'
)

// requestLine interprets the line as `METHOD <TAB>+ TARGET <TAB>+ VERSION`. Fields are
// separated by horizontal tabs, spaces are just a part of a token. On success the parser
// moves to the headers phase and the request stays incomplete.
func (p *Parser) requestLine(line []byte) (http.Classification, error) {
	tab := bytes.IndexByte(line, fieldsSepTab)
	if tab == -1 {
		return http.Malformed, status.ErrBadRequestLine
	}

	method := uf.B2S(line[:tab])
	if !strcomp.EqualFold(method, methodGET) {
		return http.Malformed, status.ErrMethodNotImplemented
	}

	rest := skipTabs(line[tab+1:])
	tab = bytes.IndexByte(rest, fieldsSepTab)
	if tab == -1 {
		return http.Malformed, status.ErrBadRequestLine
	}

	target, version := rest[:tab], uf.B2S(skipTabs(rest[tab+1:]))
	if !strcomp.EqualFold(version, protoHTTP11) {
		return http.Malformed, status.ErrHTTPVersionNotSupported
	}

	target, ok := normalizeTarget(target)
	if !ok {
		return http.Malformed, status.ErrBadTarget
	}

	p.request.Method = method
	p.request.Target = uf.B2S(target)
	p.request.Proto = version
	p.phase = eHeader

	return http.Incomplete, nil
}

// normalizeTarget strips the http:// scheme together with the authority, if presented. The
// result must be an absolute path.
func normalizeTarget(target []byte) ([]byte, bool) {
	if len(target) >= len(schemeHTTP) && strcomp.EqualFold(uf.B2S(target[:len(schemeHTTP)]), schemeHTTP) {
		target = target[len(schemeHTTP):]
		slash := bytes.IndexByte(target, '/')
		if slash == -1 {
			return nil, false
		}

		target = target[slash:]
	}

	if len(target) == 0 || target[0] != '/' {
		return nil, false
	}

	return target, true
}

func skipTabs(b []byte) []byte {
	for i, c := range b {
		if c != '\t' {
			return b[i:]
		}
	}

	return b[len(b):]
}
