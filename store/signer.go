package store

import (
	"crypto/ecdsa"
	"crypto/rand"

	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/veraison/go-cose"
)

// RootSigner attaches a COSE signature over a snapshot's encoded content,
// grounded on massifs.RootSigner (SPEC_FULL §4 item 2). It is opt-in: a
// Store constructed without WithSigner never signs.
type RootSigner struct {
	issuer string
}

// NewRootSigner returns a RootSigner that attributes signatures to issuer,
// the same role massifs.NewRootSigner's issuer plays in the CWT claims it
// embeds.
func NewRootSigner(issuer string) RootSigner {
	return RootSigner{issuer: issuer}
}

// Sign1 produces a COSE_Sign1 message over the snapshot bytes already
// produced by EncodeSnapshot, embedding a CNF claim binding keyIdentifier
// and publicKey to subject, exactly as massifs.RootSigner.Sign1 does for
// MMR roots. Unlike that method, this signer has no field to detach from
// the payload before signing: snapshots are self-contained, so the full
// snapshot is what gets signed.
func (rs RootSigner) Sign1(signer cose.Signer, keyIdentifier string, publicKey *ecdsa.PublicKey, subject string, snapshotBytes []byte, external []byte) ([]byte, error) {
	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				dtcose.HeaderLabelCWTClaims: dtcose.NewCNFClaim(
					rs.issuer, subject, keyIdentifier, signer.Algorithm(), *publicKey),
			},
		},
		Payload: snapshotBytes,
	}
	if err := msg.Sign(rand.Reader, external, signer); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}
