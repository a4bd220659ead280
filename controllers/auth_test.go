package controllers

import (
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsDuplicateKey_MatchesTranslatedConstraintErrors(t *testing.T) {
	if !isDuplicateKey(gorm.ErrDuplicatedKey) {
		t.Fatalf("bare duplicate-key error must match")
	}
	if !isDuplicateKey(fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey)) {
		t.Fatalf("wrapped duplicate-key error must match")
	}
}

func TestIsDuplicateKey_IgnoresOtherErrors(t *testing.T) {
	if isDuplicateKey(gorm.ErrRecordNotFound) {
		t.Fatalf("not-found must not be treated as a duplicate")
	}
	if isDuplicateKey(nil) {
		t.Fatalf("nil is not a duplicate")
	}
}
