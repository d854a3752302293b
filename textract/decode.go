package textract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a Textract JSON response
func Decode(r io.Reader) (*Response, error) {
	var resp Response
	dec := json.NewDecoder(r)
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode Textract response: %w", err)
	}
	if resp.Blocks == nil {
		return nil, fmt.Errorf("failed to decode Textract response: no Blocks field")
	}
	return &resp, nil
}

// DecodeBytes reads a Textract JSON response from memory
func DecodeBytes(data []byte) (*Response, error) {
	return Decode(bytes.NewReader(data))
}
