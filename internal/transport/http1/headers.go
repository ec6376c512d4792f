package http1

import (
	"strings"

	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const hostKey = "host:"

// header interprets a single header line. The empty line completes the request, the Host
// header is recorded and everything else is accepted and ignored.
func (p *Parser) header(line []byte) (http.Classification, error) {
	if len(line) == 0 {
		if p.forbidden(p.request.Target) {
			return http.Forbidden, status.ErrForbidden
		}

		return http.Complete, nil
	}

	if len(line) >= len(hostKey) && strcomp.EqualFold(uf.B2S(line[:len(hostKey)]), hostKey) {
		p.request.Host = uf.B2S(skipSeparators(line[len(hostKey):]))
	}

	return http.Incomplete, nil
}

func (p *Parser) forbidden(target string) bool {
	for _, prefix := range p.deny {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}

	return false
}

// skipSeparators trims the leading optional whitespace, both tabs and spaces.
func skipSeparators(b []byte) []byte {
	for i, c := range b {
		if c != '\t' && c != ' ' {
			return b[i:]
		}
	}

	return b[len(b):]
}
