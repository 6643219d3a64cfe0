package auth

import (
	"errors"
	"testing"
)

func TestStaticTokenValidate(t *testing.T) {
	v := StaticToken{Token: "secret"}
	if err := v.Validate("secret"); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if err := v.Validate("wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestStaticTokenEmptyConfiguredTokenRejectsEverything(t *testing.T) {
	v := StaticToken{}
	if err := v.Validate(""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestFromHeader(t *testing.T) {
	if token, ok := FromHeader("Bearer abc"); !ok || token != "abc" {
		t.Fatalf("bearer parse failed: %q ok=%v", token, ok)
	}
	if _, ok := FromHeader("Basic abc"); ok {
		t.Fatalf("non-bearer scheme accepted")
	}
	if _, ok := FromHeader("Bearer "); ok {
		t.Fatalf("empty token accepted")
	}
}
