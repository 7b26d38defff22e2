package registry

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/markgate/markgate/internal/domain/document"
)

// Encoder serializes a document to its canonical byte representation.
// The default implementation uses encoding/json, which emits struct fields
// in declaration order, so encoding the same document twice yields identical
// bytes. That determinism matters: the detached signature is computed over
// the Base64 text of exactly these bytes.
type Encoder interface {
	Encode(doc *document.IntroduceGoods) ([]byte, error)
}

// jsonEncoder is the default Encoder.
type jsonEncoder struct{}

func (jsonEncoder) Encode(doc *document.IntroduceGoods) ([]byte, error) {
	return json.Marshal(doc)
}

// EncodeDocument returns the Base64 text of the JSON-encoded document using
// the default encoder. It produces the same text a Client without a custom
// Encoder would transmit, so external signing tools can work from it without
// constructing a client.
func EncodeDocument(doc *document.IntroduceGoods) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: document is nil", ErrInvalidArgument)
	}
	raw, err := jsonEncoder{}.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
