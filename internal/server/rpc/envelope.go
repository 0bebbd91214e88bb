// Package rpc implements the internal RPC channel: named procedures served
// over a REP socket for peer services, and the outbound client used to reach
// the user-profile peer. Payloads are JSON; procedure names are part of the
// inter-service compatibility contract.
package rpc

import "encoding/json"

// Request is the wire form of a procedure call.
type Request struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Response is the wire form of a procedure result. OK is false when the
// procedure raised an error, in which case Error carries a short message and
// Result is absent.
type Response struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func errorResponse(msg string) []byte {
	b, _ := json.Marshal(Response{OK: false, Error: msg})
	return b
}

func resultResponse(result any) ([]byte, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Response{OK: true, Result: raw})
}
