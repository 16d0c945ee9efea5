package auth

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"io"
	"os"
	"strings"
)

const (
	SaltLength = 16
	Iterations = 11237
	KeyLength  = 32

	pbkdf2Prefix = "pbkdf2$"
	bcryptPrefix = "$2"
)

var ErrUnknownScheme = errors.New("auth: unknown password encoding")

type Account struct {
	Username          string
	EncryptedPassword string
}

func newAccount(shadowLine string) (Account, error) {
	parts := strings.Split(shadowLine, ":")
	if len(parts) < 2 || parts[0] == "" {
		return Account{}, fmt.Errorf("bad shadow line %s", shadowLine)
	}
	return Account{
		Username:          parts[0],
		EncryptedPassword: parts[1],
	}, nil
}

// NewSalt returns SaltLength random bytes.
func NewSalt() ([]byte, error) {
	ret := make([]byte, SaltLength)
	if _, err := rand.Read(ret); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	return ret, nil
}

func Hash(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha1.New)
}

// Matches hashes password with salt and compares it to expected in constant time.
func Matches(password string, salt, expected []byte) bool {
	return subtle.ConstantTimeCompare(Hash(password, salt), expected) == 1
}

func encode(salt, hash []byte) string {
	return pbkdf2Prefix + hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash)
}

func decode(encoded string) (salt, hash []byte, err error) {
	parts := strings.Split(strings.TrimPrefix(encoded, pbkdf2Prefix), "$")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("bad pbkdf2 encoding")
	}
	if salt, err = hex.DecodeString(parts[0]); err != nil {
		return nil, nil, fmt.Errorf("bad salt: %w", err)
	}
	if hash, err = hex.DecodeString(parts[1]); err != nil {
		return nil, nil, fmt.Errorf("bad hash: %w", err)
	}
	return salt, hash, nil
}

type Service struct {
	usernameToEncryptedPassword map[string]string
}

func LoadAccounts(shadowFilePath string) ([]Account, error) {
	data, err := os.ReadFile(shadowFilePath)
	if err != nil {
		return nil, fmt.Errorf("read shadow file %s: %w", shadowFilePath, err)
	}
	ret, err := ParseShadow(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse shadow file %s: %w", shadowFilePath, err)
	}
	return ret, nil
}

func NewService(accounts []Account) (*Service, error) {
	usernameToEncryptedPassword := make(map[string]string)
	for _, account := range accounts {
		if _, ok := usernameToEncryptedPassword[account.Username]; ok {
			return nil, fmt.Errorf("duplicate account %s", account.Username)
		}
		usernameToEncryptedPassword[account.Username] = account.EncryptedPassword
	}
	return &Service{usernameToEncryptedPassword: usernameToEncryptedPassword}, nil
}

// ParseShadow reads one account per line, skipping blank lines.
func ParseShadow(reader io.Reader) ([]Account, error) {
	var ret []Account
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		one, err := newAccount(line)
		if err != nil {
			return nil, err
		}
		ret = append(ret, one)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

var dummyEncryptedPassword = encode(make([]byte, SaltLength), Hash("dummy", make([]byte, SaltLength)))

func verify(encryptedPassword, password string) (bool, error) {
	switch {
	case strings.HasPrefix(encryptedPassword, pbkdf2Prefix):
		salt, hash, err := decode(encryptedPassword)
		if err != nil {
			return false, err
		}
		return Matches(password, salt, hash), nil
	case strings.HasPrefix(encryptedPassword, bcryptPrefix):
		e := bcrypt.CompareHashAndPassword([]byte(encryptedPassword), []byte(password))
		if e != nil && !errors.Is(e, bcrypt.ErrMismatchedHashAndPassword) {
			return false, e
		}
		return e == nil, nil
	}
	return false, ErrUnknownScheme
}

func (s *Service) Auth(username, password string) (ok bool, err error) {
	encryptedPassword, ok := s.usernameToEncryptedPassword[username]
	if !ok {
		// Hash anyway, so the time cost does not tell whether the username exists.
		_, _ = verify(dummyEncryptedPassword, password)
		return false, nil
	}
	return verify(encryptedPassword, password)
}

// Register returns the shadow line for a new account.
func Register(username, password string) (shadowLine string, err error) {
	if username == "" || strings.Contains(username, ":") {
		return "", fmt.Errorf("bad username %q", username)
	}
	salt, err := NewSalt()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", username, encode(salt, Hash(password, salt))), nil
}

// RegisterLegacy returns a bcrypt shadow line, the encoding older shadow files use.
func RegisterLegacy(username, password string) (shadowLine string, err error) {
	encryptedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", username, encryptedPassword), nil
}
