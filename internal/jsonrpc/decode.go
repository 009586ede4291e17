// ABOUTME: Envelope decoding for inbound JSON-RPC messages
// ABOUTME: Strict parse first, lenient field scan as salvage for partial reads

package jsonrpc

import (
	"encoding/json"
	"strconv"

	"github.com/scenebridge/unity-bridge/internal/rawjson"
)

// Envelope is the decoded form of one inbound message. RawParams holds the
// untouched params substring so each handler can unmarshal it into its own
// typed record later; it defaults to "{}" when params is absent.
type Envelope struct {
	JSONRPC   string
	Method    string
	ID        *json.RawMessage
	RawParams string
}

// Decode extracts the envelope fields from a raw message. It never fails:
// a message that is not strict JSON (a truncated read, trailing garbage) is
// handed to the lenient scanner, and whatever fields survive are returned.
// A missing method comes back as the empty string and is rejected later by
// the dispatcher, not here.
func Decode(raw []byte) Envelope {
	var req Request
	if err := json.Unmarshal(raw, &req); err == nil {
		env := Envelope{
			JSONRPC:   req.JSONRPC,
			Method:    req.Method,
			ID:        req.ID,
			RawParams: "{}",
		}
		if len(req.Params) > 0 {
			env.RawParams = string(req.Params)
		}
		return env
	}

	// Salvage path: partial or malformed message.
	fields := rawjson.Fields(string(raw))
	env := Envelope{
		JSONRPC:   fields["jsonrpc"],
		Method:    fields["method"],
		RawParams: rawjson.Extract(string(raw), "params"),
	}
	if id, ok := fields["id"]; ok && id != "null" {
		quoted := json.RawMessage(strconv.Quote(id))
		env.ID = &quoted
	}
	return env
}
