// ABOUTME: WebSocket transport running the same decode-dispatch-encode pipeline
// ABOUTME: For clients that cannot open a raw TCP socket to the bridge

package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/scenebridge/unity-bridge/internal/db"
	"github.com/scenebridge/unity-bridge/internal/dispatch"
	"github.com/scenebridge/unity-bridge/internal/jsonrpc"
	"github.com/scenebridge/unity-bridge/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The bridge binds to trusted interfaces; origin checks stay open.
		return true
	},
}

type Server struct {
	dispatcher *dispatch.Dispatcher
	database   *db.DB
}

func NewServer(dispatcher *dispatch.Dispatcher, database *db.DB) *Server {
	return &Server{dispatcher: dispatcher, database: database}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return
	}

	s.handleConnection(conn)
}

// handleConnection mirrors the TCP session loop: one request in, one
// response out, in order, until the peer goes away. WebSocket framing means
// no partial reads, so the lenient decode path rarely fires here.
func (s *Server) handleConnection(conn *websocket.Conn) {
	connID := "ws_" + uuid.New().String()[:8]
	logger.Info("[%s] websocket client connected from %s", connID, conn.RemoteAddr())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[%s] session panic: %v", connID, r)
		}
		conn.Close()
		if s.database != nil {
			if err := s.database.CloseConnection(connID); err != nil {
				logger.Warn("[%s] failed to record close: %v", connID, err)
			}
		}
		logger.Info("[%s] websocket client disconnected", connID)
	}()

	if s.database != nil {
		if err := s.database.OpenConnection(connID, "websocket", conn.RemoteAddr().String()); err != nil {
			logger.Warn("[%s] failed to record connection: %v", connID, err)
		}
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		logger.Traffic(connID, "<-", message)
		s.logMessage(connID, db.DirectionClientToBridge, message)

		env := jsonrpc.Decode(message)
		var resp []byte
		result, err := s.dispatcher.Dispatch(env.Method, env.RawParams)
		if err != nil {
			resp = jsonrpc.EncodeError(err.Error())
		} else {
			resp, err = jsonrpc.EncodeResult(env.ID, result)
			if err != nil {
				logger.Error("[%s] failed to encode result for %s: %v", connID, env.Method, err)
				resp = jsonrpc.EncodeError("Internal error encoding result")
			}
		}

		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			logger.Warn("[%s] write failed: %v", connID, err)
			return
		}
		logger.Traffic(connID, "->", resp)
		s.logMessage(connID, db.DirectionBridgeToClient, resp)
	}
}

func (s *Server) logMessage(connID string, direction db.MessageDirection, raw []byte) {
	if s.database == nil {
		return
	}
	if err := s.database.LogMessage(connID, direction, raw); err != nil {
		logger.Warn("[%s] failed to log message: %v", connID, err)
	}
}
