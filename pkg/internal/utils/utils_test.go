// utils_test.go

package utils_test

import (
	"testing"

	"github.com/moorings-io/fathom/pkg/internal/utils"
)

func TestGenerateUniqueHash(t *testing.T) {
	first := utils.GenerateUniqueHash()
	second := utils.GenerateUniqueHash()

	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if first == second {
		t.Errorf("expected distinct hashes, got %s twice", first)
	}
}

func TestGenerateSha256Hash(t *testing.T) {
	a := utils.GenerateSha256Hash("logger-01")
	b := utils.GenerateSha256Hash("logger-01")
	c := utils.GenerateSha256Hash("logger-02")

	if a != b {
		t.Errorf("expected stable hash for equal input, got %s and %s", a, b)
	}
	if a == c {
		t.Errorf("expected different hashes for different inputs")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(a))
	}
}
