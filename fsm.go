package fsm

import (
	"errors"
	"log"
	"net"
	"sync"

	"github.com/indigo-web/fsm/config"
	"github.com/indigo-web/fsm/http"
	"github.com/indigo-web/fsm/http/status"
	"github.com/indigo-web/fsm/internal/address"
	httpserver "github.com/indigo-web/fsm/internal/server/http"
	"github.com/indigo-web/fsm/internal/server/tcp"
	"github.com/indigo-web/fsm/internal/transport/http1"
)

type ListenerConstructor func(network, addr string) (net.Listener, error)

// Logger receives one line per served connection.
type Logger = httpserver.Logger

// App accepts connections on one or more listeners and classifies the single request
// every connection carries.
type App struct {
	addr         string
	hooks        hooks
	listeners    []listener
	addrs        []net.Addr
	cfg          *config.Config
	logger       Logger
	onClassified httpserver.OnClassified
	errCh        chan error
}

// New returns a new App instance. The addr may omit the host, e.g. ":8080".
func New(addr string) *App {
	return &App{
		addr:  address.Normalize(addr),
		cfg:   config.Default(),
		errCh: make(chan error, 1),
	}
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the default log.Default() logger.
func (a *App) Logger(logger Logger) *App {
	a.logger = logger
	return a
}

// OnClassified calls the callback every time a connection's request is classified. The
// request is valid only during the call. Connections are served concurrently, so the
// callback must be safe for concurrent use.
func (a *App) OnClassified(cb func(http.Classification, *http.Request)) *App {
	a.onClassified = cb
	return a
}

// NotifyOnStart calls the callback at the moment, when all the servers are started. However,
// it isn't strongly guaranteed that they'll be able to accept new connections immediately
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the servers are down and all the
// connections are served
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen adds a new listener on the same host as the app's address.
func (a *App) Listen(port uint16, optionalConstructor ...ListenerConstructor) *App {
	a.listeners = append(a.listeners, listener{
		Addr:        address.SetPort(a.addr, port),
		Constructor: optional(optionalConstructor, net.Listen),
	})

	return a
}

func (a *App) HTTPS(port uint16, cert, key string) *App {
	return a.Listen(port, tlsListener(cert, key))
}

// AutoHTTPS enables TLS using autocert or generates self-signed certificates if using
// local host
func (a *App) AutoHTTPS(port uint16, domains ...string) *App {
	if address.IsLocalhost(a.addr) {
		cert, key, err := generateSelfSignedCert()
		if err != nil {
			a.log().Printf("WARNING: AutoHTTPS(...): can't generate self-signed certificate: %s. Disabling TLS", err)

			return a.Listen(port)
		}

		return a.HTTPS(port, cert, key)
	}

	return a.Listen(port, autoTLSListener(domains...))
}

// Addrs returns the addresses of all the listeners. It's populated right before the
// NotifyOnStart callback is called.
func (a *App) Addrs() []net.Addr {
	return a.addrs
}

// Serve starts the application. It blocks until either a listener fails or Stop or
// GracefulStop is called. In the latter case, the corresponding status error is returned.
func (a *App) Serve() error {
	listeners := append([]listener{{Addr: a.addr, Constructor: net.Listen}}, a.listeners...)
	servers, err := a.getServers(listeners)
	if err != nil {
		return err
	}

	return a.run(servers)
}

func (a *App) getServers(listeners []listener) ([]*tcp.Server, error) {
	servers := make([]*tcp.Server, 0, len(listeners))
	a.addrs = a.addrs[:0]
	onConn := a.newConnCallback()

	for _, l := range listeners {
		sock, err := l.Constructor("tcp", l.Addr)
		if err != nil {
			for _, server := range servers {
				_ = server.Stop()
			}

			return nil, err
		}

		a.addrs = append(a.addrs, sock.Addr())
		servers = append(servers, tcp.NewServer(sock, onConn))
	}

	return servers, nil
}

func (a *App) run(servers []*tcp.Server) error {
	wg := new(sync.WaitGroup)

	for _, server := range servers {
		wg.Add(1)
		go func(server *tcp.Server) {
			defer wg.Done()
			a.notify(server.Start())
		}(server)
	}

	callIfNotNil(a.hooks.OnStart)
	err := <-a.errCh

	for _, server := range servers {
		if errors.Is(err, status.ErrGracefulShutdown) {
			// stop listening to new clients and process till the end all the old ones
			_ = server.GracefulShutdown()
		} else {
			_ = server.Stop()
		}
	}

	wg.Wait()
	callIfNotNil(a.hooks.OnStop)

	return err
}

// GracefulStop stops accepting new connections, but keeps serving old ones.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will be still working
func (a *App) GracefulStop() {
	a.notify(status.ErrGracefulShutdown)
}

// Stop stops the whole application immediately.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will still be working
func (a *App) Stop() {
	a.notify(status.ErrShutdown)
}

// notify never blocks, only the first reason to stop matters.
func (a *App) notify(err error) {
	select {
	case a.errCh <- err:
	default:
	}
}

func (a *App) newConnCallback() func(net.Conn) {
	server := httpserver.NewServer(a.cfg.Reply.Format, a.log(), a.onClassified)
	parsers := sync.Pool{
		New: func() any {
			return http1.NewParser(
				new(http.Request), make([]byte, a.cfg.Parser.BufferSize), a.cfg.Access.Forbidden,
			)
		},
	}

	return func(conn net.Conn) {
		parser := parsers.Get().(*http1.Parser)
		server.Run(tcp.NewClient(conn, a.cfg.NET.ReadTimeout), parser)
		parser.Reset()
		parsers.Put(parser)
	}
}

func (a *App) log() Logger {
	if a.logger == nil {
		return log.Default()
	}

	return a.logger
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

type listener struct {
	Addr        string
	Constructor ListenerConstructor
}

func optional[T any](optionals []T, otherwise T) T {
	if len(optionals) == 0 {
		return otherwise
	}

	return optionals[0]
}
