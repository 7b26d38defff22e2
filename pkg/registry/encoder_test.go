package registry

import (
	"errors"
	"testing"
)

func TestEncodeDocument_MatchesClientEncoding(t *testing.T) {
	t.Parallel()

	client, err := New(testConfig("http://example.com"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer client.Close()

	doc := testDocument()

	standalone, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument() error: %v", err)
	}
	viaClient, err := client.EncodedDocument(doc)
	if err != nil {
		t.Fatalf("EncodedDocument() error: %v", err)
	}

	// The text signed from "markgate encode" must be the text submitted.
	if standalone != viaClient {
		t.Errorf("EncodeDocument() = %q, client encoding = %q", standalone, viaClient)
	}
}

func TestEncodeDocument_NilDocument(t *testing.T) {
	t.Parallel()

	if _, err := EncodeDocument(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EncodeDocument(nil) error = %v, want ErrInvalidArgument", err)
	}
}
