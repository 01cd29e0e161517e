package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	verifierCost   = 12
	verifierRounds = 10
)

// DeriveVerifier turns a plaintext secret into the stored verifier.
// The write path is deliberately expensive: bcrypt at cost 12 runs ten
// rounds over the submitted secret and only the final round's output is
// retained. Each round hashes the secret itself, never the previous
// round's output, so the stored verifier remains directly comparable by
// VerifyDirect. The chained-feed variant is preserved (and unusable) as
// DeriveVerifierChained.
func DeriveVerifier(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	var verifier []byte
	for i := 0; i < verifierRounds; i++ {
		out, err := bcrypt.GenerateFromPassword([]byte(secret), verifierCost)
		if err != nil {
			return "", err
		}
		verifier = out
	}
	return string(verifier), nil
}

// VerifyDirect checks a submitted secret against the stored verifier
// using bcrypt's constant-time comparison. Single round, not chained;
// this is the only comparison wired into login.
func VerifyDirect(secret, verifier string) bool {
	return bcrypt.CompareHashAndPassword([]byte(verifier), []byte(secret)) == nil
}

// DeriveVerifierChained feeds each round's output into the next round.
//
// Deprecated: a verifier derived this way cannot be checked. bcrypt
// salts every call, so re-deriving the chain from the same secret
// diverges at round one, and direct comparison fails because the final
// round hashed intermediate bytes rather than the secret. Kept to
// document the failure mode; nothing in the login path may use it.
func DeriveVerifierChained(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	current := []byte(secret)
	for i := 0; i < verifierRounds; i++ {
		next, err := bcrypt.GenerateFromPassword(current, verifierCost)
		if err != nil {
			return "", err
		}
		current = next
	}
	return string(current), nil
}

// VerifyChained re-derives the chain from the candidate secret and
// compares the result to the stored verifier.
//
// Deprecated: always false for distinct derivations; see
// DeriveVerifierChained. Use VerifyDirect.
func VerifyChained(secret, verifier string) (bool, error) {
	rederived, err := DeriveVerifierChained(secret)
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(verifier), []byte(rederived)) == nil, nil
}
