package registry

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewEnvelope_BlankFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		format          string
		docType         string
		productDocument string
		signature       string
	}{
		{"blank format", "", "LP_INTRODUCE_GOODS", "ZG9j", "c2ln"},
		{"blank type", "MANUAL", "   ", "ZG9j", "c2ln"},
		{"blank product document", "MANUAL", "LP_INTRODUCE_GOODS", "", "c2ln"},
		{"blank signature", "MANUAL", "LP_INTRODUCE_GOODS", "ZG9j", "\t"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newEnvelope(tt.format, tt.docType, tt.productDocument, tt.signature)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("newEnvelope() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewEnvelope_FieldsRoundTrip(t *testing.T) {
	t.Parallel()

	env, err := newEnvelope("MANUAL", "LP_INTRODUCE_GOODS", "ZG9j", "c2ln")
	if err != nil {
		t.Fatalf("newEnvelope() error: %v", err)
	}

	body, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	want := map[string]string{
		"document_format":  "MANUAL",
		"type":             "LP_INTRODUCE_GOODS",
		"product_document": "ZG9j",
		"signature":        "c2ln",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("%s = %q, want %q", key, got[key], value)
		}
	}
	if len(got) != len(want) {
		t.Errorf("envelope has %d fields, want %d", len(got), len(want))
	}
}
