package http

import (
	json "github.com/json-iterator/go"

	"github.com/indigo-web/fsm/config"
	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
)

var (
	replyOK  = []byte("I get a correct result\n")
	replyBad = []byte("Something wrong\n")
)

type verdict struct {
	Result string      `json:"result"`
	Code   status.Code `json:"code"`
	Method string      `json:"method,omitempty"`
	Target string      `json:"target,omitempty"`
	Host   string      `json:"host,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func (s *Server) render(result http.Classification, err error, request *http.Request) []byte {
	if s.reply == config.ReplyJSON {
		v := verdict{
			Result: result.String(),
			Code:   StatusCode(result, err),
			Method: request.Method,
			Target: request.Target,
			Host:   request.Host,
		}
		if err != nil {
			v.Error = err.Error()
		}

		if data, merr := json.Marshal(v); merr == nil {
			return append(data, '\n')
		}
	}

	if result == http.Complete {
		return replyOK
	}

	return replyBad
}

// StatusCode maps the classification onto an HTTP status code. Malformed requests carry
// the precise code in their error.
func StatusCode(result http.Classification, err error) status.Code {
	switch result {
	case http.Complete:
		return status.OK
	case http.Malformed:
		if err == nil {
			return status.BadRequest
		}

		return status.CodeOf(err)
	case http.Forbidden:
		return status.Forbidden
	case http.Closed:
		return status.CloseConnection
	default:
		return status.InternalServerError
	}
}
