package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Sentinel errors for signature verification failures.
var (
	ErrMissingSignature     = fmt.Errorf("webhook: missing signature header")
	ErrInvalidSignature     = fmt.Errorf("webhook: signature verification failed")
	ErrMalformedSignature   = fmt.Errorf("webhook: malformed signature header")
	ErrUnsupportedAlgorithm = fmt.Errorf("webhook: unsupported signature algorithm")
)

// SecurityValidator verifies that a webhook payload was signed with the
// pre-shared app secret. This is the security boundary: no session state may
// be touched before ValidateSignature succeeds.
type SecurityValidator struct {
	config SecurityConfig
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{config: config}
}

// ValidateSignature verifies a header of the form "algorithm=hexdigest"
// computed over the exact raw request bytes. sha256 is the expected
// algorithm; sha1 is accepted for platform compatibility.
func (v *SecurityValidator) ValidateSignature(payload []byte, signature string) error {
	if v.config.AppSecret == "" {
		return fmt.Errorf("webhook: app secret not configured")
	}

	if signature == "" {
		if v.config.AllowUnsigned {
			return nil
		}
		return ErrMissingSignature
	}

	algorithm, digestHex, ok := strings.Cut(signature, "=")
	if !ok {
		return ErrMalformedSignature
	}

	var newHash func() hash.Hash
	switch algorithm {
	case "sha256":
		newHash = sha256.New
	case "sha1":
		newHash = sha1.New
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algorithm)
	}

	expectedSig, err := hex.DecodeString(digestHex)
	if err != nil {
		return fmt.Errorf("%w: invalid hex encoding", ErrMalformedSignature)
	}

	mac := hmac.New(newHash, []byte(v.config.AppSecret))
	mac.Write(payload)
	actualSig := mac.Sum(nil)

	// Constant-time comparison on raw bytes
	if !hmac.Equal(expectedSig, actualSig) {
		return ErrInvalidSignature
	}

	return nil
}
