package docai

import (
	"bytes"
	"fmt"
	"io"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
)

// Decode reads the JSON form of a Document AI document. Both the document
// itself and a ProcessResponse body ({"document": {...}}) are accepted.
// Unknown fields are ignored.
func Decode(r io.Reader) (*documentaipb.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read Document AI response: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory payload
func DecodeBytes(data []byte) (*documentaipb.Document, error) {
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}

	if bytes.Contains(data, []byte(`"document"`)) {
		var resp documentaipb.ProcessResponse
		if err := opts.Unmarshal(data, &resp); err == nil && resp.GetDocument() != nil {
			return resp.GetDocument(), nil
		}
	}

	var doc documentaipb.Document
	if err := opts.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode Document AI document: %w", err)
	}
	return &doc, nil
}
