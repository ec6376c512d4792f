package http

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/fsm/config"
	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
	"github.com/indigo-web/fsm/internal/server/tcp"
	"github.com/indigo-web/fsm/internal/strutil"
	"github.com/indigo-web/fsm/internal/transport"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

// OnClassified is called once per connection with the terminal classification.
type OnClassified func(http.Classification, *http.Request)

type Server struct {
	reply        config.ReplyFormat
	logger       Logger
	onClassified OnClassified
}

func NewServer(reply config.ReplyFormat, logger Logger, onClassified OnClassified) *Server {
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		reply:        reply,
		logger:       logger,
		onClassified: onClassified,
	}
}

// Run feeds the parser with everything the client sends until the request is classified,
// then writes the reply and closes the client. Nothing is written if the peer has gone.
func (s *Server) Run(client tcp.Client, parser transport.Parser) http.Classification {
	result, err := s.classify(client, parser)
	request := parser.Request()
	s.log(client.Remote(), result, err, request)

	if s.onClassified != nil {
		s.onClassified(result, request)
	}

	if result != http.Closed {
		// the connection is closed right after anyway
		_ = client.Write(s.render(result, err, request))
	}

	_ = client.Close()

	return result
}

func (s *Server) classify(client tcp.Client, parser transport.Parser) (http.Classification, error) {
	for {
		n, err := client.Read(parser.Free())
		if n > 0 {
			result, perr := parser.Commit(n)
			if result.Terminal() {
				return result, perr
			}
		}

		switch {
		case err == nil && n > 0:
		case err == nil, errors.Is(err, io.EOF):
			return parser.Close()
		default:
			result, _ := parser.Close()
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return result, status.ErrRequestTimeout
			}

			return result, err
		}
	}
}

func (s *Server) log(remote net.Addr, result http.Classification, err error, request *http.Request) {
	id := uniuri.NewLen(8)

	if err != nil {
		s.logger.Printf("%s %s: %s: %s", id, remote, result, err)
		return
	}

	s.logger.Printf(
		"%s %s: %s %s %s host=%q", id, remote, result,
		request.Method, strutil.Escape(request.Target), strutil.Escape(request.Host),
	)
}
