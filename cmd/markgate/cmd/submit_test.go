package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	content := `{
		"doc_id": "doc-42",
		"owner_inn": "7700000000",
		"products": [{"tnved_code": "6401"}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := loadDocument(path)
	if err != nil {
		t.Fatalf("loadDocument() error: %v", err)
	}
	if doc.DocumentID != "doc-42" {
		t.Errorf("DocumentID = %q, want doc-42", doc.DocumentID)
	}
	if len(doc.Products) != 1 || doc.Products[0].TNVEDCode != "6401" {
		t.Errorf("Products = %+v", doc.Products)
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	t.Parallel()

	if _, err := loadDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loadDocument() on missing file expected error")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := loadDocument(path); err == nil {
		t.Error("loadDocument() on malformed JSON expected error")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if logger := newLogger(level); logger == nil {
			t.Errorf("newLogger(%q) returned nil", level)
		}
	}
}
