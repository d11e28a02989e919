package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/pixil98/go-log"
	"github.com/sirupsen/logrus"
)

// TelnetListener accepts telnet connections and runs a control session on
// each one.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Sessions get their own cancelable context so shutdown reaches them
	// after the server has stopped accepting.
	sessCtx, cancelSessions := context.WithCancel(context.Background())

	handler := &telnetHandler{
		cFunc:          l.cm.AcceptConnection,
		logger:         log.GetLogger(ctx),
		sessCtx:        sessCtx,
		cancelSessions: cancelSessions,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), handler)

	// done signals that Start is returning, success or failure.
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			handler.Stop()
		case <-done:
			// Start returned on its own; nothing left to stop.
		}
	}()

	err := svr.ListenAndServe()
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg             sync.WaitGroup
	cFunc          func(context.Context, io.ReadWriter)
	logger         logrus.FieldLogger
	sessCtx        context.Context
	cancelSessions context.CancelFunc
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()
	defer func() {
		err := conn.Close()
		if err != nil {
			h.logger.Errorf("closing telnet connection: %s", err)
		}
	}()

	// The shared context cancels every session together at shutdown.
	ctx := log.SetLogger(h.sessCtx, h.logger)

	h.cFunc(ctx, newCRLFReadWriter(conn))
}

func (h *telnetHandler) Stop() {
	h.cancelSessions()
	h.wg.Wait()
}
