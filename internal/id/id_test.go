package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	token, err := Generate("item")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(token, "item-") {
		t.Errorf("expected item- prefix, got %q", token)
	}

	// The token body must stay within the slug character set.
	body := strings.TrimPrefix(token, "item-")
	if len(body) != 12 {
		t.Errorf("expected 12-char body, got %q", body)
	}
	for _, r := range body {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			t.Errorf("token %q contains non-slug character %q", token, r)
		}
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		token := MustGenerate("item")
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
