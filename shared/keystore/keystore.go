// Package keystore persists the node identity: the hex encoded secret key,
// its public key and the preferred relay address. It is read once at client
// construction and never mutated by the core.
package keystore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Keystore struct {
	SecretKey string `yaml:"secret_key"` // hex encoded 32-byte mini secret
	Pubkey    string `yaml:"pubkey"`
	RelayURL  string `yaml:"relay_url"`
}

// Load reads the keystore file. A missing file is reported with os.IsNotExist
// so callers can bootstrap a fresh identity.
func Load(path string) (*Keystore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ks Keystore
	if err := yaml.Unmarshal(data, &ks); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}
	if ks.SecretKey == "" {
		return nil, fmt.Errorf("keystore %s has no secret key", path)
	}
	return &ks, nil
}

// Save writes the keystore with owner-only permissions.
func Save(path string, ks *Keystore) error {
	data, err := yaml.Marshal(ks)
	if err != nil {
		return fmt.Errorf("marshal keystore: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
