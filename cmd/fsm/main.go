// Command fsm accepts connections on ip:port and classifies the single HTTP/1.1 GET request
// every connection carries, reporting the verdict back to the client.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/indigo-web/fsm"
	"github.com/indigo-web/fsm/config"
	"github.com/indigo-web/fsm/http/status"
)

const usage = `usage: %s [flags] ip_address port_number

flags:
`

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usage, fs.Name())
		fs.PrintDefaults()
	}

	var (
		reply   = fs.String("reply", string(cfg.Reply.Format), "reply format: text or json")
		buffer  = fs.Int("buffer", cfg.Parser.BufferSize, "per-connection request buffer size")
		timeout = fs.Duration("timeout", cfg.NET.ReadTimeout, "read timeout, 0 disables it")
		forbid  = fs.String("forbid", "", "comma-separated target prefixes classified as forbidden")
		tlsPort = fs.Uint("tls-port", 0, "additionally serve TLS on this port")
		cert    = fs.String("cert", "", "TLS certificate file")
		key     = fs.String("key", "", "TLS key file")
		domains = fs.String("autotls", "", "comma-separated domains for ACME certificates")
	)
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}

	port, err := strconv.ParseUint(fs.Arg(1), 10, 16)
	if err != nil {
		log.Fatalf("bad port %q: %s", fs.Arg(1), err)
	}

	switch format := config.ReplyFormat(*reply); format {
	case config.ReplyText, config.ReplyJSON:
		cfg.Reply.Format = format
	default:
		log.Fatalf("unknown reply format %q", *reply)
	}

	if *buffer <= 0 {
		log.Fatalf("buffer size must be positive, got %d", *buffer)
	}

	cfg.Parser.BufferSize = *buffer
	cfg.NET.ReadTimeout = *timeout
	cfg.Access.Forbidden = splitList(*forbid)

	addr := net.JoinHostPort(fs.Arg(0), strconv.FormatUint(port, 10))
	app := fsm.New(addr).
		Tune(cfg).
		NotifyOnStart(func() {
			log.Printf("listening on %s", addr)
		})

	if *tlsPort != 0 {
		switch {
		case len(*cert) > 0 && len(*key) > 0:
			app.HTTPS(uint16(*tlsPort), *cert, *key)
		default:
			app.AutoHTTPS(uint16(*tlsPort), splitList(*domains)...)
		}
	}

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		app.GracefulStop()
	}()

	if err = app.Serve(); err != nil && !errors.Is(err, status.ErrGracefulShutdown) {
		log.Fatal(err)
	}
}

func splitList(list string) (items []string) {
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); len(item) > 0 {
			items = append(items, item)
		}
	}

	return items
}
