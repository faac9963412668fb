package export

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes an envelope as MessagePack.
func Encode(env Envelope) ([]byte, error) {
	data, err := msgpack.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return data, nil
}

// Decode parses a MessagePack envelope.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if len(data) == 0 {
		return env, fmt.Errorf("empty envelope data")
	}
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return env, nil
}
