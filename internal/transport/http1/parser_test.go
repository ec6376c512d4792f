package http1

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
	"github.com/stretchr/testify/require"
)

const bufferSize = 4096

func getParser(deny ...string) (*Parser, *http.Request) {
	request := new(http.Request)

	return NewParser(request, make([]byte, bufferSize), deny), request
}

func splitIntoParts(req []byte, n int) (parts [][]byte) {
	for i := 0; i < len(req); i += n {
		end := i + n
		if end > len(req) {
			end = len(req)
		}

		parts = append(parts, req[i:end])
	}

	return parts
}

func feedPartially(t *testing.T, parser *Parser, rawRequest []byte, n int) (http.Classification, error) {
	var (
		result http.Classification
		err    error
	)

	for _, chunk := range splitIntoParts(rawRequest, n) {
		result, err = parser.Feed(chunk)
		requireCursorInvariant(t, parser)
		if result.Terminal() {
			break
		}
	}

	return result, err
}

func requireCursorInvariant(t *testing.T, parser *Parser) {
	c := parser.Cursor()
	require.True(
		t, 0 <= c.LineStart && c.LineStart <= c.Scanned && c.Scanned <= c.Filled && c.Filled <= len(parser.buff),
		"broken cursor: %+v", c,
	)
}

func TestParser(t *testing.T) {
	t.Run("simple GET with host", func(t *testing.T) {
		parser, request := getParser()
		result, err := parser.Feed([]byte("GET\t/index.html\tHTTP/1.1\r\nHost:\texample.com\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "/index.html", request.Target)
		require.Equal(t, "HTTP/1.1", request.Proto)
		require.Equal(t, "example.com", request.Host)
	})

	t.Run("absolute form target", func(t *testing.T) {
		parser, request := getParser()
		result, err := parser.Feed([]byte("GET\thttp://example.com/a/b\tHTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
		require.Equal(t, "/a/b", request.Target)
		require.Empty(t, request.Host)
	})

	t.Run("POST", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Feed([]byte("POST\t/\tHTTP/1.1\r\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrMethodNotImplemented, err)
	})

	t.Run("HTTP/1.0", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.0\r\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrHTTPVersionNotSupported, err)
	})

	t.Run("awaiting the empty line", func(t *testing.T) {
		parser, request := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Incomplete, result)
		require.Equal(t, "/", request.Target)

		result, err = parser.Feed([]byte("\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
	})

	t.Run("bare lf in request line", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrBadLineTerminator, err)
	})

	t.Run("bare lf in headers", func(t *testing.T) {
		parser, request := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\nHost:\texample.com\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrBadLineTerminator, err)
		require.Equal(t, http.Request{}, *request, "partial progress must be discarded")
	})

	t.Run("leading crlf", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Feed([]byte("\r\nGET\t/\tHTTP/1.1\r\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrBadRequestLine, err)
	})

	t.Run("many headers in a single read", func(t *testing.T) {
		parser, request := getParser()
		raw := "GET\t/\tHTTP/1.1\r\n" + randomHeaders(20) + "Host:\tlocalhost\r\n" + randomHeaders(20) + "\r\n"
		result, err := parser.Feed([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
		require.Equal(t, "localhost", request.Host)
		require.Equal(t, len(raw), parser.Cursor().LineStart)
	})

	t.Run("the last host wins", func(t *testing.T) {
		parser, request := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\nHost:\tfirst\r\nhost:\tsecond\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
		require.Equal(t, "second", request.Host)
	})

	t.Run("bytes after the request are not interpreted", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\n\r\nPOST\t/\tHTTP/1.1\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
	})

	t.Run("forbidden", func(t *testing.T) {
		parser, request := getParser("/secret")
		result, err := parser.Feed([]byte("GET\thttp://example.com/secret/key\tHTTP/1.1\r\n\r\n"))
		require.Equal(t, http.Forbidden, result)
		require.Equal(t, status.ErrForbidden, err)
		require.Equal(t, "/secret/key", request.Target)
	})
}

func randomHeaders(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(fmt.Sprintf("%s:\t%s\r\n", uniuri.New(), uniuri.NewLen(32)))
	}

	return b.String()
}

func TestParser_ChunkInvariance(t *testing.T) {
	requests := []string{
		"GET\t/index.html\tHTTP/1.1\r\nHost:\texample.com\r\n\r\n",
		"GET\thttp://example.com/a/b\tHTTP/1.1\r\n\r\n",
		"get\t\t/\t\thttp/1.1\r\nAccept:\t*/*\r\nHOST:\tlocalhost:8080\r\n\r\n",
		"GET\t/\tHTTP/1.1\r\n" + randomHeaders(10) + "\r\n",
		"POST\t/\tHTTP/1.1\r\n\r\n",
		"GET\t/\tHTTP/1.0\r\n\r\n",
		"GET\t/\tHTTP/1.1\r\nHost:\texample.com\n\r\n",
		"GET\t/\tHTTP/1.1\r\r\n\r\n",
		"GET\t/\tHTTP/1.1\r\n",
		"GET\tindex.html\tHTTP/1.1\r\n\r\n",
	}

	for i, raw := range requests {
		t.Run(fmt.Sprintf("request %d", i), func(t *testing.T) {
			parser, request := getParser()
			wantResult, wantErr := parser.Feed([]byte(raw))
			wantRequest := *request

			for n := 1; n <= len(raw); n++ {
				parser.Reset()
				result, err := feedPartially(t, parser, []byte(raw), n)
				require.Equal(t, wantResult, result, "chunk size %d", n)
				require.Equal(t, wantErr, err, "chunk size %d", n)
				require.Equal(t, wantRequest, *request, "chunk size %d", n)
			}

			for split := 1; split < len(raw); split++ {
				parser.Reset()
				result, err := parser.Feed([]byte(raw[:split]))
				if !result.Terminal() {
					result, err = parser.Feed([]byte(raw[split:]))
				}

				require.Equal(t, wantResult, result, "split at %d", split)
				require.Equal(t, wantErr, err, "split at %d", split)
			}
		})
	}
}

func TestParser_SingleUse(t *testing.T) {
	t.Run("complete stays complete", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)

		result, err = parser.Feed([]byte("garbage\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)

		result, err = parser.Close()
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
	})

	t.Run("malformed stays malformed", func(t *testing.T) {
		parser, _ := getParser()
		result, _ := parser.Feed([]byte("POST\t/\tHTTP/1.1\r\n"))
		require.Equal(t, http.Malformed, result)

		result, err := parser.Commit(0)
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrMethodNotImplemented, err)
	})

	t.Run("reset", func(t *testing.T) {
		parser, request := getParser()
		result, _ := parser.Feed([]byte("POST\t/\tHTTP/1.1\r\n"))
		require.Equal(t, http.Malformed, result)

		parser.Reset()
		require.Equal(t, Cursor{}, parser.Cursor())
		result, err := parser.Feed([]byte("GET\t/hello\tHTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
		require.Equal(t, "/hello", request.Target)
	})
}

func TestParser_Close(t *testing.T) {
	t.Run("before anything", func(t *testing.T) {
		parser, _ := getParser()
		result, err := parser.Close()
		require.Equal(t, http.Closed, result)
		require.Equal(t, status.ErrConnectionClosed, err)
	})

	t.Run("in the middle of headers", func(t *testing.T) {
		parser, request := getParser()
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\nHost:\tex"))
		require.NoError(t, err)
		require.Equal(t, http.Incomplete, result)

		result, _ = parser.Close()
		require.Equal(t, http.Closed, result)
		require.Empty(t, request.Target)

		result, _ = parser.Feed([]byte("ample.com\r\n\r\n"))
		require.Equal(t, http.Closed, result)
	})
}

func TestParser_Overflow(t *testing.T) {
	newSmallParser := func(size int) (*Parser, *http.Request) {
		request := new(http.Request)
		return NewParser(request, make([]byte, size), nil), request
	}

	t.Run("buffer filled up without a verdict", func(t *testing.T) {
		raw := "GET\t/\tHTTP/1.1\r\nHost:\texample.com\r\n\r\n"
		parser, _ := newSmallParser(len(raw) - 1)
		result, err := parser.Feed([]byte(raw[:len(raw)-1]))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrTooLarge, err)
	})

	t.Run("exactly fits", func(t *testing.T) {
		raw := "GET\t/\tHTTP/1.1\r\nHost:\texample.com\r\n\r\n"
		parser, request := newSmallParser(len(raw))
		result, err := feedPartially(t, parser, []byte(raw), 3)
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
		require.Equal(t, "example.com", request.Host)
	})

	t.Run("chunk does not fit", func(t *testing.T) {
		parser, _ := newSmallParser(16)
		result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\nHost:\texample.com\r\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrTooLarge, err)
	})

	t.Run("verdict within the fitting part", func(t *testing.T) {
		raw := "GET\t/\tHTTP/1.1\r\n\r\n"
		parser, _ := newSmallParser(len(raw))
		result, err := parser.Feed([]byte(raw + "some trailing bytes"))
		require.NoError(t, err)
		require.Equal(t, http.Complete, result)
	})

	t.Run("truncated line fills the buffer", func(t *testing.T) {
		parser, _ := newSmallParser(8)
		result, err := parser.Feed([]byte("POST\t/\tHTTP/1.1\r\n\r\n"))
		require.Equal(t, http.Malformed, result)
		require.Equal(t, status.ErrTooLarge, err)
	})
}

func TestParser_ZeroCopy(t *testing.T) {
	parser, request := getParser()
	free := parser.Free()
	n := copy(free, "GET\t/a\tHTTP/1.1\r\nHost:\th\r\n")
	result, err := parser.Commit(n)
	require.NoError(t, err)
	require.Equal(t, http.Incomplete, result)
	require.Equal(t, bufferSize-n, len(parser.Free()))

	n = copy(parser.Free(), "\r\n")
	result, err = parser.Commit(n)
	require.NoError(t, err)
	require.Equal(t, http.Complete, result)
	require.Equal(t, "/a", request.Target)
	require.Equal(t, "h", request.Host)
}

func TestParser_BrokenPhase(t *testing.T) {
	parser, _ := getParser()
	parser.phase = 0xff
	result, err := parser.Feed([]byte("GET\t/\tHTTP/1.1\r\n"))
	require.Equal(t, http.InternalError, result)
	require.Equal(t, status.ErrInternalServerError, err)
}
