package persist

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	nonceSize        = 12 // GCM standard nonce size
	saltSize         = 16
	pbkdf2Iterations = 100000
)

// sealed payloads look like "igs1.<salt>.<nonce+ciphertext>", base64 parts
var sealPrefix = []byte("igs1.")

// Crypto handles encryption/decryption
type Crypto struct {
	key []byte
}

// NewCrypto creates a crypto instance with derived key from password
func NewCrypto(password string, salt []byte) *Crypto {
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
	return &Crypto{key: key}
}

// GenerateSalt generates a random salt
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Encrypt encrypts data using AES-256-GCM
func (c *Crypto) Encrypt(plaintext []byte) (string, error) {
	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Seal appends nonce + ciphertext
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts data using AES-256-GCM
func (c *Crypto) Decrypt(encrypted string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, err
	}

	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}

	gcm, err := c.gcm()
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return nil, errors.New("decryption failed: invalid passphrase or corrupted data")
	}

	return plaintext, nil
}

func (c *Crypto) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with a fresh salt carried in the output
func Seal(passphrase string, plaintext []byte) ([]byte, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	body, err := NewCrypto(passphrase, salt).Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(sealPrefix)
	buf.WriteString(base64.StdEncoding.EncodeToString(salt))
	buf.WriteByte('.')
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// IsSealed reports whether data was produced by Seal
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealPrefix)
}

// Unseal reverses Seal
func Unseal(passphrase string, sealed []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, errors.New("payload is not encrypted")
	}
	parts := bytes.SplitN(bytes.TrimPrefix(sealed, sealPrefix), []byte("."), 2)
	if len(parts) != 2 {
		return nil, errors.New("malformed encrypted payload")
	}
	salt, err := base64.StdEncoding.DecodeString(string(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("malformed salt: %w", err)
	}
	return NewCrypto(passphrase, salt).Decrypt(string(parts[1]))
}
