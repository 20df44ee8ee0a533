// Package secure seals plan files and rendered reports with an age
// passphrase. Both carry income and grant details.
package secure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
	"golang.org/x/term"
)

// PassphraseEnv names the environment variable consulted before prompting
const PassphraseEnv = "ISOAMT_PASSPHRASE"

// ErrNoPassphrase is returned when no passphrase is available
var ErrNoPassphrase = errors.New("no passphrase available: set " + PassphraseEnv + " or run in a terminal")

// workFactor is the scrypt cost used when sealing
var workFactor = 18

var header = []byte("age-encryption.org/v1\n")

// IsEncrypted reports whether data is a binary age envelope
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, header)
}

// Seal encrypts data to a scrypt passphrase recipient
func Seal(data []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipient: %w", err)
	}
	recipient.SetWorkFactor(workFactor)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Open decrypts data sealed with Seal
func Open(data []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("incorrect passphrase or corrupt file: %w", err)
	}
	return io.ReadAll(r)
}

// Passphrase returns the passphrase from the environment, or prompts on the
// controlling terminal when stdin is one.
func Passphrase(prompt string) (string, error) {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return p, nil
	}
	return PromptPassphrase(prompt)
}

// PromptPassphrase reads a passphrase without echo
func PromptPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoPassphrase
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	p := strings.TrimSpace(string(raw))
	if p == "" {
		return "", ErrNoPassphrase
	}
	return p, nil
}
