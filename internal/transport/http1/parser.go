package http1

import (
	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
	"github.com/indigo-web/fsm/internal/transport"
)

var _ transport.Parser = new(Parser)

// Parser is an incremental classifier of a single GET request. Bytes are appended into the
// fixed-size buffer, and every append advances the parsing as far as the bytes permit. Lines
// are never copied out of the buffer: the request's fields are views into it.
//
// The parser is single-use: once a terminal classification is reached, every following
// call returns the very same classification until Reset is called.
type Parser struct {
	request *http.Request
	buff    []byte
	deny    []string
	cursor  Cursor
	phase   phase
	result  http.Classification
	err     error
}

// NewParser returns a parser using the whole length of buff as its capacity. Requests
// whose target starts with any of the deny prefixes are classified as forbidden.
func NewParser(request *http.Request, buff []byte, deny []string) *Parser {
	return &Parser{
		request: request,
		buff:    buff[:cap(buff)],
		deny:    deny,
		phase:   eRequestLine,
		result:  http.Incomplete,
	}
}

func (p *Parser) Free() []byte {
	return p.buff[p.cursor.Filled:]
}

func (p *Parser) Commit(n int) (http.Classification, error) {
	if p.result.Terminal() {
		return p.result, p.err
	}

	p.cursor.Filled += n
	result, err := p.drive()
	if result == http.Incomplete && p.cursor.Filled == len(p.buff) {
		result, err = http.Malformed, status.ErrTooLarge
	}

	return p.finish(result, err)
}

// Feed copies data into the buffer and parses it. The data that doesn't fit into the buffer
// results in status.ErrTooLarge, unless the bytes that did fit are already enough to
// classify the request.
func (p *Parser) Feed(data []byte) (http.Classification, error) {
	if p.result.Terminal() {
		return p.result, p.err
	}

	n := copy(p.Free(), data)
	result, err := p.Commit(n)
	if n < len(data) && !result.Terminal() {
		return p.finish(http.Malformed, status.ErrTooLarge)
	}

	return result, err
}

func (p *Parser) Close() (http.Classification, error) {
	if p.result.Terminal() {
		return p.result, p.err
	}

	return p.finish(http.Closed, status.ErrConnectionClosed)
}

func (p *Parser) Request() *http.Request {
	return p.request
}

// Cursor returns a copy of the current buffer offsets.
func (p *Parser) Cursor() Cursor {
	return p.cursor
}

func (p *Parser) Reset() {
	p.request.Clear()
	p.cursor = Cursor{}
	p.phase = eRequestLine
	p.result = http.Incomplete
	p.err = nil
}

// drive dispatches every complete line in the buffer to the interpreter of the current
// phase until either the lines are exhausted or a terminal classification is reached.
func (p *Parser) drive() (http.Classification, error) {
	for {
		line, scanned := scanLine(p.buff, p.cursor.Scanned, p.cursor.Filled)
		p.cursor.Scanned = scanned

		switch line {
		case lineComplete:
		case lineIncomplete:
			return http.Incomplete, nil
		default:
			return http.Malformed, status.ErrBadLineTerminator
		}

		data := p.buff[p.cursor.LineStart : scanned-crlfLen]
		p.cursor.LineStart = scanned

		var (
			result http.Classification
			err    error
		)

		switch p.phase {
		case eRequestLine:
			result, err = p.requestLine(data)
		case eHeader:
			result, err = p.header(data)
		default:
			return http.InternalError, status.ErrInternalServerError
		}

		if result.Terminal() {
			return result, err
		}
	}
}

func (p *Parser) finish(result http.Classification, err error) (http.Classification, error) {
	p.result, p.err = result, err

	switch result {
	case http.Malformed, http.InternalError, http.Closed:
		// partially parsed request is of no use
		p.request.Clear()
	}

	return result, err
}
