// Package sr25519 wraps Schnorrkel/Ristretto signature verification for the
// fungible token's signed withdrawal path. It is deliberately narrow: this
// system only ever verifies, it never signs (signing is the off-chain
// backend's job).
package sr25519

import (
	"fmt"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
)

// SigningContext is the ASCII context tag spec.md requires all withdrawal
// signatures to be produced under.
const SigningContext = "substrate"

// Verify reports whether sig is a valid sr25519 Schnorr signature over msg
// under pub, inside a transcript tagged with SigningContext. msg is the
// already-hashed 32-byte withdrawal digest, not the raw payload.
func Verify(pub [32]byte, msg []byte, sig [64]byte) (bool, error) {
	publicKey := schnorrkel.NewPublicKey(pub)

	signature, err := schnorrkel.NewSignature(sig)
	if err != nil {
		return false, fmt.Errorf("decode signature: %w", err)
	}

	transcript := schnorrkel.NewSigningContext([]byte(SigningContext), msg)

	ok, err := publicKey.Verify(signature, transcript)
	if err != nil {
		return false, fmt.Errorf("verify signature: %w", err)
	}
	return ok, nil
}
