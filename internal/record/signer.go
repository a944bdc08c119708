package record

import (
	"encoding/hex"
	"fmt"
	"strings"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Signer wraps the node's sr25519 keypair. One signer is constructed at
// startup from the keystore and injected everywhere that publishes.
type Signer struct {
	secret    *schnorrkel.SecretKey
	public    *schnorrkel.PublicKey
	pubkey    string
	secretHex string
}

// NewSigner constructs a signer from a hex encoded 32-byte mini secret.
func NewSigner(hexKey string) (*Signer, error) {
	hexKey = strings.TrimPrefix(hexKey, "0x")
	keyBytes, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode hex key: %w", err)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("invalid key length: expected 32 bytes, got %d", len(keyBytes))
	}

	var miniSecret [32]byte
	copy(miniSecret[:], keyBytes)

	miniSecretKey, err := schnorrkel.NewMiniSecretKeyFromRaw(miniSecret)
	if err != nil {
		return nil, fmt.Errorf("create mini secret key: %w", err)
	}

	return newSigner(miniSecretKey)
}

// GenerateSigner creates a fresh random identity. The caller is responsible
// for persisting SecretHex to the keystore.
func GenerateSigner() (*Signer, error) {
	miniSecretKey, err := schnorrkel.GenerateMiniSecretKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return newSigner(miniSecretKey)
}

func newSigner(mini *schnorrkel.MiniSecretKey) (*Signer, error) {
	secret := mini.ExpandEd25519()
	public, err := secret.Public()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	pubkeyBytes := public.Encode()
	miniBytes := mini.Encode()
	return &Signer{
		secret:    secret,
		public:    public,
		pubkey:    hex.EncodeToString(pubkeyBytes[:]),
		secretHex: hex.EncodeToString(miniBytes[:]),
	}, nil
}

// Pubkey returns the hex encoded public key; it identifies this node's user.
func (s *Signer) Pubkey() string {
	return s.pubkey
}

// SecretHex returns the hex encoded mini secret for keystore persistence.
func (s *Signer) SecretHex() string {
	return s.secretHex
}

func (s *Signer) sign(message []byte) ([]byte, error) {
	sig, err := s.secret.Sign(schnorrkel.NewSigningContext(signingContext, message))
	if err != nil {
		return nil, err
	}
	encoded := sig.Encode()
	return encoded[:], nil
}

// SignNonce signs an arbitrary login challenge. It uses the same signing
// context as records, so a nonce can never collide with a record digest
// (records sign 32-byte digests, nonces are longer).
func (s *Signer) SignNonce(nonce string) (string, error) {
	sig, err := s.sign([]byte(nonce))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

// VerifyNonce checks a hex signature over nonce against a hex pubkey.
func VerifyNonce(pubkey, nonce, sigHex string) bool {
	pubkeyBytes, err := hex.DecodeString(pubkey)
	if err != nil || len(pubkeyBytes) != 32 {
		return false
	}
	sigBytes, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
	if err != nil || len(sigBytes) != 64 {
		return false
	}

	var pkRaw [32]byte
	copy(pkRaw[:], pubkeyBytes)
	var pk schnorrkel.PublicKey
	if err := pk.Decode(pkRaw); err != nil {
		return false
	}

	var sigRaw [64]byte
	copy(sigRaw[:], sigBytes)
	var sig schnorrkel.Signature
	if err := sig.Decode(sigRaw); err != nil {
		return false
	}

	ok, err := pk.Verify(&sig, schnorrkel.NewSigningContext(signingContext, []byte(nonce)))
	return err == nil && ok
}

// NewEntityID mints a stable identifier for a new entity: kind, minting
// pubkey and a random uuid, base58 encoded into one printable token.
func NewEntityID(kind int, pubkey string) string {
	pubkeyBytes, err := hex.DecodeString(pubkey)
	if err != nil {
		pubkeyBytes = []byte(pubkey)
	}

	u := uuid.New()
	buf := make([]byte, 0, 2+len(pubkeyBytes)+len(u))
	buf = append(buf, byte(kind>>8), byte(kind))
	buf = append(buf, pubkeyBytes...)
	buf = append(buf, u[:]...)
	return base58.Encode(buf)
}
