package crypto

import (
	"strings"
	"testing"
)

func TestGenerateKeyMaterialLength(t *testing.T) {
	material, err := GenerateKeyMaterial()
	if err != nil {
		t.Fatalf("GenerateKeyMaterial failed: %v", err)
	}
	if len(material) != KeyMaterialLength {
		t.Errorf("expected length %d, got %d", KeyMaterialLength, len(material))
	}
	for _, c := range material {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("unexpected character %q in key material", c)
		}
	}
}

func TestGenerateSecretBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret failed: %v", err)
		}
		if len(secret) < MinSecretLength || len(secret) > MaxSecretLength {
			t.Fatalf("length %d outside [%d, %d]", len(secret), MinSecretLength, MaxSecretLength)
		}
		for _, c := range secret {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("unexpected character %q in secret", c)
			}
		}
	}
}

func TestGenerateSecretCoversAlphabet(t *testing.T) {
	// Across a large sample every character class should appear; a missing
	// class would indicate a biased or truncated alphabet.
	var sawUpper, sawLower, sawDigit bool
	for i := 0; i < 500; i++ {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret failed: %v", err)
		}
		for _, c := range secret {
			switch {
			case c >= 'A' && c <= 'Z':
				sawUpper = true
			case c >= 'a' && c <= 'z':
				sawLower = true
			case c >= '0' && c <= '9':
				sawDigit = true
			}
		}
	}
	if !sawUpper || !sawLower || !sawDigit {
		t.Errorf("alphabet coverage: upper=%t lower=%t digit=%t", sawUpper, sawLower, sawDigit)
	}
}

func TestGenerateSecretVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret failed: %v", err)
		}
		seen[secret] = true
	}
	if len(seen) < 45 {
		t.Errorf("expected nearly all generated secrets to be distinct, got %d/50", len(seen))
	}
}
