package api

import "encoding/json"

// CodecName is the Connect codec name; it selects the application/json content type.
const CodecName = "json"

// Codec marshals messages with encoding/json. It replaces Connect's default
// protojson codec, since the messages in this package are plain Go structs.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

// Unmarshal treats an empty body as an empty message so that
// `curl -X POST` without a payload works for parameterless procedures.
func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}
