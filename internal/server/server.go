// ABOUTME: TCP acceptor and per-connection session loop for JSON-RPC traffic
// ABOUTME: One goroutine per client, bounded by a semaphore, with read deadlines

package server

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scenebridge/unity-bridge/internal/config"
	"github.com/scenebridge/unity-bridge/internal/db"
	"github.com/scenebridge/unity-bridge/internal/dispatch"
	"github.com/scenebridge/unity-bridge/internal/jsonrpc"
	"github.com/scenebridge/unity-bridge/internal/logger"
)

// Server owns the listening socket. Each accepted connection runs its own
// session loop: read a chunk, decode, dispatch, write the response, repeat.
// The acceptor never waits on a client's completion.
type Server struct {
	cfg        config.ServerConfig
	dispatcher *dispatch.Dispatcher
	database   *db.DB

	listener net.Listener
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

func New(cfg config.ServerConfig, dispatcher *dispatch.Dispatcher, database *db.DB) *Server {
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		database:   database,
		conns:      make(map[net.Conn]struct{}),
	}
}

// Listen binds the TCP socket. Split from Serve so callers (and tests) can
// read the bound address before serving.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	logger.Info("TCP server listening on %s", ln.Addr())
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ActiveConnections returns the number of sessions currently being served.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Serve runs the accept loop until ctx is cancelled, then closes every open
// connection and waits for the session goroutines to drain.
func (s *Server) Serve(ctx context.Context) error {
	// The connection cap applies at accept time: when every slot is taken
	// the acceptor holds off instead of spawning unbounded handlers.
	sem := make(chan struct{}, s.cfg.MaxConnections)

	go func() {
		<-ctx.Done()
		s.listener.Close()
		s.mu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.mu.Unlock()
	}()

	for {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			s.wg.Wait()
			return nil
		}

		conn, err := s.listener.Accept()
		if err != nil {
			<-sem
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			logger.Warn("accept failed: %v", err)
			continue
		}

		s.track(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-sem }()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// handleConnection runs the session loop for one client. A failure here
// terminates only this connection; the acceptor and every other session
// keep running.
func (s *Server) handleConnection(conn net.Conn) {
	connID := "conn_" + uuid.New().String()[:8]
	remote := conn.RemoteAddr().String()
	logger.Info("[%s] client connected from %s", connID, remote)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[%s] session panic: %v", connID, r)
		}
		s.untrack(conn)
		conn.Close()
		if s.database != nil {
			if err := s.database.CloseConnection(connID); err != nil {
				logger.Warn("[%s] failed to record close: %v", connID, err)
			}
		}
		logger.Info("[%s] client disconnected", connID)
	}()

	if s.database != nil {
		if err := s.database.OpenConnection(connID, "tcp", remote); err != nil {
			logger.Warn("[%s] failed to record connection: %v", connID, err)
		}
	}

	buf := make([]byte, s.cfg.ReadBufferBytes)
	for {
		if s.cfg.ReadTimeoutSeconds > 0 {
			deadline := time.Now().Add(time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second)
			if err := conn.SetReadDeadline(deadline); err != nil {
				return
			}
		}

		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			// Zero-byte read means the peer closed; timeouts and resets
			// land here too.
			return
		}

		raw := make([]byte, n)
		copy(raw, buf[:n])
		logger.Traffic(connID, "<-", raw)
		s.logMessage(connID, db.DirectionClientToBridge, raw)

		resp := s.handleMessage(raw)

		if _, err := conn.Write(resp); err != nil {
			logger.Warn("[%s] write failed: %v", connID, err)
			return
		}
		logger.Traffic(connID, "->", resp)
		s.logMessage(connID, db.DirectionBridgeToClient, resp)
	}
}

// handleMessage runs one message through decode, dispatch, and encode.
// Every request yields exactly one response envelope.
func (s *Server) handleMessage(raw []byte) []byte {
	env := jsonrpc.Decode(raw)

	result, err := s.dispatcher.Dispatch(env.Method, env.RawParams)
	if err != nil {
		logger.Debug("dispatch %s failed: %v", env.Method, err)
		return jsonrpc.EncodeError(err.Error())
	}

	resp, err := jsonrpc.EncodeResult(env.ID, result)
	if err != nil {
		logger.Error("failed to encode result for %s: %v", env.Method, err)
		return jsonrpc.EncodeError("Internal error encoding result")
	}
	return resp
}

func (s *Server) logMessage(connID string, direction db.MessageDirection, raw []byte) {
	if s.database == nil {
		return
	}
	if err := s.database.LogMessage(connID, direction, raw); err != nil {
		logger.Warn("[%s] failed to log message: %v", connID, err)
	}
}
