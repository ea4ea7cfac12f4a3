// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram implements the SCRAM-SHA-256 and SCRAM-SHA-1 hashers
// which produce the role passwords hashes for PostgreSQL, using the
// github.com/xdg-go/scram module. The hashes may not be reversed.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// Mechanism is a SCRAM hasher with a fixed underlying hash algorithm.
// It implements the pkg/core/scram.Hasher interface.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	name          string
}

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// Hash computes a hash string in the standard SCRAM format:
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// The pass is normalized with SASLprep and must be non-empty. An empty
// salt is replaced by random bytes (as long as the hash output) and
// the iters must be at least 4096.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < 4096:
		return "", fmt.Errorf("iters (%d) is less than 4096", iters)
	}
	if salt == "" {
		saltBytes := make([]byte, m.outLen)
		if _, err := rand.Read(saltBytes); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		s := make([]byte, base64.StdEncoding.EncodedLen(m.outLen))
		base64.StdEncoding.Encode(s, saltBytes)
		salt = string(s)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return "", fmt.Errorf("obtaining stored credentials: %w", err)
	}
	h := fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		iters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	)
	return h, nil
}

func (m *Mechanism) storedCredentials(
	pass, salt string, iters int,
) (*scram.StoredCredentials, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 salt: %w", err)
	}
	// only needed by conversations, kept for a consistent client
	c = c.WithMinIterations(iters).WithNonceGenerator(func() string {
		return salt
	})
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(saltBytes),
		Iters: iters,
	})
	return &sc, nil
}
