package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordClampsOutOfRangeCost(t *testing.T) {
	hash, err := HashPassword("ring-general", 99)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("ring-general", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "ring-general") {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword(hash, "jobber") {
		t.Fatalf("expected wrong password to fail verification")
	}
}
