// Package api holds the wire messages of the groupledger RPC services.
//
// Messages are plain structs carried as JSON over the Connect protocol.
// Amounts travel as decimal strings ("12.50") so clients never round
// through floating point.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONCodec is the Connect codec for api messages. It rejects unknown fields.
type JSONCodec struct{}

// Name returns "json", so the codec serves application/json requests.
func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	return nil
}
