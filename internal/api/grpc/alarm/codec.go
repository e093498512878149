package alarm

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype of the wire format ("application/grpc+json").
const CodecName = "json"

// jsonCodec marshals messages as JSON.
type jsonCodec struct{}

func init() { //nolint:gochecknoinits // Codecs must be registered before any server or client starts.
	encoding.RegisterCodec(jsonCodec{})
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal: %w", err)
	}

	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal: %w", err)
	}

	return nil
}

func (jsonCodec) Name() string {
	return CodecName
}
