// ABOUTME: SQLite traffic log for every connection and JSON-RPC message
// ABOUTME: Queried by the management API, written by the TCP and WS servers

package db

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scenebridge/unity-bridge/internal/logger"
)

//go:embed schema.sql
var schemaSQL string

type DB struct {
	conn *sql.DB
}

type MessageDirection string

const (
	DirectionClientToBridge MessageDirection = "client_to_bridge"
	DirectionBridgeToClient MessageDirection = "bridge_to_client"
)

// Open opens or creates the SQLite database
func Open(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("database initialized at %s", dbPath)
	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// OpenConnection records a newly accepted client connection.
func (db *DB) OpenConnection(connID, transport, remoteAddr string) error {
	_, err := db.conn.Exec(
		"INSERT INTO connections (id, transport, remote_addr) VALUES (?, ?, ?)",
		connID, transport, remoteAddr,
	)
	if err != nil {
		return fmt.Errorf("failed to record connection: %w", err)
	}
	return nil
}

// CloseConnection marks a connection as closed.
func (db *DB) CloseConnection(connID string) error {
	_, err := db.conn.Exec(
		"UPDATE connections SET closed_at = CURRENT_TIMESTAMP WHERE id = ?",
		connID,
	)
	if err != nil {
		return fmt.Errorf("failed to close connection record: %w", err)
	}
	return nil
}

// LogMessage logs one wire message, extracting the method and request id
// when the payload parses as a JSON-RPC envelope.
func (db *DB) LogMessage(connID string, direction MessageDirection, rawMessage []byte) error {
	var method string
	var jsonrpcID *string

	var msg struct {
		Method string           `json:"method"`
		ID     *json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(rawMessage, &msg); err == nil {
		method = msg.Method
		if msg.ID != nil {
			id := string(*msg.ID)
			jsonrpcID = &id
		}
	}

	_, err := db.conn.Exec(
		`INSERT INTO messages (connection_id, direction, method, jsonrpc_id, raw_message)
		 VALUES (?, ?, ?, ?, ?)`,
		connID, direction, method, jsonrpcID, string(rawMessage),
	)
	if err != nil {
		return fmt.Errorf("failed to log message: %w", err)
	}
	return nil
}

// Message represents a logged message
type Message struct {
	ID           int64
	ConnectionID string
	Direction    MessageDirection
	Method       string
	JSONRPCId    string
	RawMessage   string
	Timestamp    time.Time
}

// RecentMessages returns the newest messages, newest first.
func (db *DB) RecentMessages(limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(
		`SELECT id, connection_id, direction, method, jsonrpc_id, raw_message, timestamp
		 FROM messages ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var method sql.NullString
		var jsonrpcID sql.NullString

		err := rows.Scan(&m.ID, &m.ConnectionID, &m.Direction, &method, &jsonrpcID, &m.RawMessage, &m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		if method.Valid {
			m.Method = method.String
		}
		if jsonrpcID.Valid {
			m.JSONRPCId = jsonrpcID.String
		}

		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// Connection represents a logged client connection
type Connection struct {
	ID         string
	Transport  string
	RemoteAddr string
	OpenedAt   time.Time
	ClosedAt   *time.Time
}

// GetAllConnections retrieves all connections, newest first.
func (db *DB) GetAllConnections() ([]Connection, error) {
	rows, err := db.conn.Query(
		`SELECT id, transport, remote_addr, opened_at, closed_at
		 FROM connections ORDER BY opened_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		var closedAt sql.NullTime

		err := rows.Scan(&c.ID, &c.Transport, &c.RemoteAddr, &c.OpenedAt, &closedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}

		if closedAt.Valid {
			c.ClosedAt = &closedAt.Time
		}

		conns = append(conns, c)
	}

	return conns, rows.Err()
}
