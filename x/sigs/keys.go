package sigs

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/ed25519"
)

// KeyPerm is the file permissions for saved private keys
const KeyPerm = 0600

// KeyCondition returns the condition fulfilled by a signature of the given
// raw ed25519 public key. Its address is the account of the key holder.
func KeyCondition(pubkey []byte) remit.Condition {
	return remit.NewCondition("sigs", "ed25519", pubkey)
}

// RawPubKey returns the 32 raw bytes of an ed25519 public key.
func RawPubKey(pub crypto.PubKey) ([]byte, error) {
	ed, ok := pub.(ed25519.PubKeyEd25519)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidPubkey, "unsupported key type %T", pub)
	}
	return append([]byte(nil), ed[:]...), nil
}

// SignerAddress returns the account address controlled by the private key.
func SignerAddress(signer crypto.PrivKey) (remit.Address, error) {
	raw, err := RawPubKey(signer.PubKey())
	if err != nil {
		return nil, err
	}
	return KeyCondition(raw).Address(), nil
}

// GenPrivateKey creates a new random key.
func GenPrivateKey() ed25519.PrivKeyEd25519 {
	return ed25519.GenPrivKey()
}

// EncodePrivateKey returns the hex form of the 64 key bytes.
func EncodePrivateKey(key ed25519.PrivKeyEd25519) string {
	return hex.EncodeToString(key[:])
}

// DecodePrivateKey reads a hex string created by EncodePrivateKey
// and returns the original key.
func DecodePrivateKey(hexKey string) (ed25519.PrivKeyEd25519, error) {
	var key ed25519.PrivKeyEd25519
	raw, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return key, errors.Wrap(errors.ErrInput, "private key is not hex")
	}
	if len(raw) != len(key) {
		return key, errors.Wrapf(errors.ErrInput, "private key length %d", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// LoadPrivateKey will load a private key from a file,
// which was previously written by SavePrivateKey
func LoadPrivateKey(filename string) (ed25519.PrivKeyEd25519, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return ed25519.PrivKeyEd25519{}, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	return DecodePrivateKey(string(raw))
}

// SavePrivateKey will encode the private key in hex and write to
// the named file. It will refuse to overwrite a file
func SavePrivateKey(key ed25519.PrivKeyEd25519, filename string, force bool) error {
	if !force { // check before overwriting keys
		if _, err := os.Stat(filename); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "refusing to overwrite %s", filename)
		}
	}
	return ioutil.WriteFile(filename, []byte(EncodePrivateKey(key)), KeyPerm)
}

func verify(pubkey, msg, sig []byte) bool {
	if len(pubkey) != ed25519.PubKeyEd25519Size {
		return false
	}
	var pk ed25519.PubKeyEd25519
	copy(pk[:], pubkey)
	return pk.VerifyBytes(msg, sig)
}
