// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Token encryption errors
var (
	// ErrDecryptionFailed indicates the ciphertext did not authenticate.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidCiphertext indicates the ciphertext is malformed.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

const defaultEncryptionContext = "oyonews-cms-token"

// TokenEncryptor seals CMS bearer tokens with AES-GCM under a key derived
// from the configured master key with HKDF-SHA256. A nil encryptor passes
// values through unchanged.
type TokenEncryptor struct {
	aead cipher.AEAD
}

// TokenEncryptorConfig holds configuration for token encryption.
type TokenEncryptorConfig struct {
	// MasterKey is the base64-encoded master key, at least 16 bytes.
	MasterKey string

	// Context separates keys derived for different purposes.
	Context string
}

// NewTokenEncryptor returns nil without error when no master key is set.
func NewTokenEncryptor(cfg *TokenEncryptorConfig) (*TokenEncryptor, error) {
	if cfg == nil || cfg.MasterKey == "" {
		return nil, nil
	}

	masterKey, err := base64.StdEncoding.DecodeString(cfg.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	if len(masterKey) < 16 {
		return nil, errors.New("master key must be at least 16 bytes")
	}

	info := cfg.Context
	if info == "" {
		info = defaultEncryptionContext
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive encryption key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM cipher: %w", err)
	}

	return &TokenEncryptor{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext). Empty input stays empty.
func (e *TokenEncryptor) Encrypt(plaintext string) (string, error) {
	if !e.IsEnabled() || plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (e *TokenEncryptor) Decrypt(ciphertext string) (string, error) {
	if !e.IsEnabled() || ciphertext == "" {
		return ciphertext, nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode failed", ErrInvalidCiphertext)
	}

	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize+1+e.aead.Overhead() {
		return "", fmt.Errorf("%w: data too short", ErrInvalidCiphertext)
	}

	plaintext, err := e.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDecryptionFailed, err.Error())
	}
	return string(plaintext), nil
}

// IsEnabled returns true if encryption is enabled.
func (e *TokenEncryptor) IsEnabled() bool {
	return e != nil && e.aead != nil
}

// GenerateEncryptionKey returns a random 256-bit key in base64, suitable for
// TOKEN_ENCRYPTION_KEY.
func GenerateEncryptionKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate random key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
