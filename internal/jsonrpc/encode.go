// ABOUTME: Response envelope encoding for the Unity bridge wire protocol
// ABOUTME: Preserves the double-encoded result string the original clients expect

package jsonrpc

import "encoding/json"

// EncodeResult builds a success envelope. The result record is serialized
// once and embedded as a JSON string value, not as a nested object: the
// original engine-side serializer could only emit flat shapes, so its
// clients all decode the result field a second time. Wire compatibility
// requires keeping that shape.
func EncodeResult(id *json.RawMessage, result interface{}) ([]byte, error) {
	inner, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	embedded, err := json.Marshal(string(inner))
	if err != nil {
		return nil, err
	}

	resp := Response{
		JSONRPC: "2.0",
		Result:  embedded,
		ID:      id,
	}
	return json.Marshal(resp)
}

// EncodeError builds an error envelope. Every failure category collapses to
// code -32603 with a null id, matching the engine-side server.
func EncodeError(message string) []byte {
	resp := Response{
		JSONRPC: "2.0",
		Error: &Error{
			Code:    InternalError,
			Message: message,
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		// A flat struct with a string message cannot fail to marshal.
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"internal error"}}`)
	}
	return data
}
