package auth

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func Test_Encrypt(t *testing.T) {
	tests := []struct {
		name             string
		username         string
		password         string
		registerUsername string
		registerPassword string
		legacy           bool
		wantPass         bool
	}{
		{"happy pass", "alice", "123456", "alice", "123456", false, true},
		{"wrong password", "alice", "123456", "alice", "aaa", false, false},
		{"wrong username", "ben", "123456", "alice", "123456", false, false},
		{"neither right", "ben", "123456", "alice", "aaa", false, false},
		{"legacy pass", "alice", "123456", "alice", "123456", true, true},
		{"legacy wrong password", "alice", "123456", "alice", "aaa", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			register := Register
			if tt.legacy {
				register = RegisterLegacy
			}
			line, err := register(tt.registerUsername, tt.registerPassword)
			if err != nil {
				t.Error(err)
				return
			}
			account, err := newAccount(line)
			if err != nil {
				t.Error(err)
				return
			}
			service, err := NewService([]Account{account})
			if err != nil {
				t.Error(err)
				return
			}
			got, err := service.Auth(tt.username, tt.password)
			if err != nil {
				t.Error(err)
				return
			}
			if tt.wantPass != got {
				t.Errorf("Auth got = %v, want %v", got, tt.wantPass)
			}
		})
	}
}

func TestHash(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatal(err)
	}
	if len(salt) != SaltLength {
		t.Errorf("salt length = %d, want %d", len(salt), SaltLength)
	}
	other, err := NewSalt()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(salt, other) {
		t.Error("two salts are equal")
	}

	hash := Hash("secret", salt)
	if len(hash) != KeyLength {
		t.Errorf("hash length = %d, want %d", len(hash), KeyLength)
	}
	if !bytes.Equal(hash, Hash("secret", salt)) {
		t.Error("Hash is not deterministic")
	}
	if bytes.Equal(hash, Hash("secret", other)) {
		t.Error("salt does not change the hash")
	}
	if !Matches("secret", salt, hash) || Matches("Secret", salt, hash) {
		t.Error("Matches mismatch")
	}
}

func TestParseShadow(t *testing.T) {
	accounts, err := ParseShadow(strings.NewReader("alice:pbkdf2$00$11\n\nben:$2a$04$xyz\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 2 || accounts[0].Username != "alice" || accounts[1].EncryptedPassword != "$2a$04$xyz" {
		t.Errorf("ParseShadow got %v", accounts)
	}
	if _, err := ParseShadow(strings.NewReader("nocolon\n")); err == nil {
		t.Error("expected error for a line without password")
	}
	if _, err := NewService(accounts[:1]); err != nil {
		t.Error(err)
	}
	if _, err := NewService([]Account{accounts[0], accounts[0]}); err == nil {
		t.Error("expected error for duplicate accounts")
	}
}

func TestAuthBadEncoding(t *testing.T) {
	service, err := NewService([]Account{{Username: "alice", EncryptedPassword: "plain"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := service.Auth("alice", "plain"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Auth err = %v, want %v", err, ErrUnknownScheme)
	}
	if _, err := Register("a:b", "x"); err == nil {
		t.Error("expected error for a username with a colon")
	}
}
