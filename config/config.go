package config

import "time"

// ReplyFormat defines what the connection loop writes back once the request is classified.
type ReplyFormat string

const (
	// ReplyText is a single human-readable line.
	ReplyText ReplyFormat = "text"
	// ReplyJSON is a JSON object describing the classification and the request.
	ReplyJSON ReplyFormat = "json"
)

type (
	Parser struct {
		// BufferSize is the capacity of the per-connection buffer. The whole request up to
		// and including the terminating empty line must fit into it, otherwise it's
		// classified as malformed.
		BufferSize int
	}

	NET struct {
		// ReadTimeout limits how long a single read may block. Zero disables the deadline,
		// so the connection is held until the peer either completes the request or leaves.
		ReadTimeout time.Duration `test:"nullable"`
	}

	Access struct {
		// Forbidden lists target prefixes. A complete request whose target starts with any
		// of them is classified as forbidden.
		Forbidden []string `test:"nullable"`
	}

	Reply struct {
		Format ReplyFormat
	}
)

// Config holds settings used by the parser and the connection loop.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually.
type Config struct {
	Parser Parser
	NET    NET
	Access Access
	Reply  Reply
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Parser: Parser{
			BufferSize: 4096,
		},
		NET: NET{
			ReadTimeout: 0,
		},
		Access: Access{
			Forbidden: nil,
		},
		Reply: Reply{
			Format: ReplyText,
		},
	}
}
