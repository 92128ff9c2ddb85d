package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// Low cost keeps the suite fast; the cost does not change behavior.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := testHasher()

	password := "correct horse battery staple"
	digest, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if digest == password {
		t.Error("Hash() returned the plaintext password")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("Hash() = %q, want a bcrypt digest", digest)
	}

	if !hasher.Verify(password, digest) {
		t.Error("Verify() = false for the correct password")
	}
	if hasher.Verify("wrong password", digest) {
		t.Error("Verify() = true for a wrong password")
	}
}

func TestPasswordHasher_DistinctDigests(t *testing.T) {
	hasher := testHasher()

	first, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("Hash() produced identical digests for two calls, want distinct salts")
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", bcrypt.MinCost - 1, DefaultBcryptCost},
		{"above maximum", bcrypt.MaxCost + 1, DefaultBcryptCost},
		{"in range", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPasswordHasher(tt.cost)
			if h.cost != tt.want {
				t.Errorf("NewPasswordHasher(%d).cost = %d, want %d", tt.cost, h.cost, tt.want)
			}
		})
	}
}
