package registry

import (
	"fmt"
	"strings"
)

// envelope is the wire body of the create-document request. All four fields
// are required; construction fails on a blank value. The product group is
// deliberately absent: it travels as a query parameter, outside the signed
// body.
type envelope struct {
	DocumentFormat  string `json:"document_format"`
	Type            string `json:"type"`
	ProductDocument string `json:"product_document"`
	Signature       string `json:"signature"`
}

// newEnvelope builds an immutable envelope, rejecting blank fields so the
// non-empty invariant holds from construction onward.
func newEnvelope(documentFormat, docType, productDocument, signature string) (envelope, error) {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"document_format", documentFormat},
		{"type", docType},
		{"product_document", productDocument},
		{"signature", signature},
	} {
		if strings.TrimSpace(field.value) == "" {
			return envelope{}, fmt.Errorf("%w: envelope field %s is blank", ErrInvalidArgument, field.name)
		}
	}

	return envelope{
		DocumentFormat:  documentFormat,
		Type:            docType,
		ProductDocument: productDocument,
		Signature:       signature,
	}, nil
}
