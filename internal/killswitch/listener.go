package killswitch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// maxSubmission bounds the single read performed per connection.
const maxSubmission = 1024

// Wiper erases every sensitive byte the process holds.
type Wiper interface {
	EraseAll() int
}

// Listener accepts kill-switch submissions over plain TCP.
// Each connection gets exactly one read and one comparison; nothing is written back.
type Listener struct {
	addr   string
	digest Digest
	wiper  Wiper
	exit   func(code int)
	log    *zerolog.Logger

	mu sync.Mutex
	ln net.Listener
}

// NewListener builds a listener. exit defaults to os.Exit.
func NewListener(addr string, digest Digest, wiper Wiper, exit func(code int), logger *zerolog.Logger) *Listener {
	if exit == nil {
		exit = os.Exit
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Listener{
		addr:   addr,
		digest: digest,
		wiper:  wiper,
		exit:   exit,
		log:    logger,
	}
}

// Start binds the address and serves in the background until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listen kill-switch on %s: %w", l.addr, err)
	}

	l.mu.Lock()
	l.ln = ln
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	go l.serve(ln)

	l.log.Info().Str("addr", ln.Addr().String()).Msg("kill-switch listening")
	return nil
}

// Addr returns the bound address, or nil before Start.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

func (l *Listener) serve(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.log.Warn().Err(err).Msg("kill-switch accept")
			continue
		}
		go l.handle(conn)
	}
}

// handle performs the single read. There is no read deadline.
func (l *Listener) handle(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, maxSubmission)
	defer clear(buf)

	n, err := conn.Read(buf)
	if err != nil {
		l.log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("kill-switch read")
		return
	}

	if !l.digest.Matches(buf[:n]) {
		l.log.Warn().Str("remote", conn.RemoteAddr().String()).Int("bytes", n).Msg("invalid kill-switch attempt")
		return
	}

	l.log.Warn().Str("remote", conn.RemoteAddr().String()).Msg("kill-switch triggered, wiping memory")
	erased := l.wiper.EraseAll()
	l.log.Warn().Int("erased", erased).Msg("memory wiped, shutting down")
	l.exit(0)
}

// Trigger submits secret to a kill-switch listener at addr in a single write.
func Trigger(ctx context.Context, addr string, secret []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial kill-switch: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write(secret); err != nil {
		return fmt.Errorf("write secret: %w", err)
	}
	return nil
}
