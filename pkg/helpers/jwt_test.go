package helpers

import (
	"testing"
	"time"
)

func TestJWTManagerKeepsSecretsApart(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, exp, err := m.GenerateAccessToken("u-1", "s-1")
	if err != nil {
		t.Fatalf("access: %v", err)
	}
	if time.Until(exp) > time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}
	claims, err := m.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u-1" || claims.SessionID != "s-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Fatal("access token must not validate as refresh token")
	}
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	tok, _, err := m.GenerateAccessToken("u-1", "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ParseAccessToken(tok); err == nil {
		t.Fatal("expected expired token error")
	}
}
