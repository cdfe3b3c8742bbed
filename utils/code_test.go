package utils

import (
	"strings"
	"testing"
)

func TestGenerateAccessCode(t *testing.T) {
	t.Run("Given many generated codes Then each is six characters from the safe alphabet", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			code := GenerateAccessCode()
			if len(code) != 6 {
				t.Fatalf("len(%q) = %d, want 6", code, len(code))
			}
			for _, r := range code {
				if !strings.ContainsRune(codeAlphabet, r) {
					t.Fatalf("code %q contains %q outside the alphabet", code, r)
				}
			}
			if strings.ContainsAny(code, "0O1I") {
				t.Fatalf("code %q contains an ambiguous character", code)
			}
		}
	})

	t.Run("Given repeated draws Then codes are not all identical", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			seen[GenerateAccessCode()] = true
		}
		if len(seen) < 2 {
			t.Error("50 draws produced a single code")
		}
	})
}
