package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	algorithmID           = "argon2id"
)

// dummyInput is hashed once at construction so that lookups for unknown
// identifiers can spend the same work as a real verification.
const dummyInput = "gostudio-absent-identifier"

// Config holds the Argon2id cost parameters. Memory is in KiB.
type Config struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// ErrMalformedHash is wrapped by every Verify failure caused by an
// unreadable stored hash.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Argon2 hashes and verifies secrets. It is immutable after NewArgon2.
type Argon2 struct {
	config Config
	dummy  *phc
}

// phc is a decoded "$argon2id$v=19$m=..,t=..,p=..$salt$key" string. Salt and
// key use unpadded standard base64.
type phc struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func (p *phc) String() string {
	return fmt.Sprintf("$%s$v=%d$%s$%s$%s",
		algorithmID,
		argon2.Version,
		p.params(),
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

func (p *phc) params() string {
	return fmt.Sprintf("m=%d,t=%d,p=%d", p.memory, p.time, p.parallelism)
}

func (p *phc) derive(password string) []byte {
	return argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.parallelism, uint32(len(p.key)))
}

// matches recomputes the key for password and compares in constant time.
func (p *phc) matches(password string) bool {
	return subtle.ConstantTimeCompare(p.derive(password), p.key) == 1
}

// NewArgon2 validates cfg and precomputes the dummy hash used by
// VerifyAbsent.
func NewArgon2(cfg Config) (*Argon2, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	a := &Argon2{config: cfg}
	dummy, err := a.generate(dummyInput)
	if err != nil {
		return nil, err
	}
	a.dummy = dummy
	return a, nil
}

// Hash returns a PHC-encoded Argon2id hash of password with a fresh salt.
// Length policy belongs to the caller; bytes are hashed without Unicode
// normalization.
func (a *Argon2) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	p, err := a.generate(password)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

func (a *Argon2) generate(password string) (*phc, error) {
	p := &phc{
		memory:      a.config.Memory,
		time:        a.config.Time,
		parallelism: a.config.Parallelism,
		salt:        make([]byte, a.config.SaltLength),
		key:         make([]byte, a.config.KeyLength),
	}
	if _, err := rand.Read(p.salt); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	p.key = p.derive(password)
	return p, nil
}

// Verify reports whether password matches encodedHash.
func (a *Argon2) Verify(password string, encodedHash string) (bool, error) {
	p, err := decodePHC(encodedHash)
	if err != nil {
		return false, err
	}
	return p.matches(password), nil
}

// VerifyAbsent burns one verification against the dummy hash and always
// reports false. Callers use it when no credential exists for an identifier.
func (a *Argon2) VerifyAbsent(password string) bool {
	a.dummy.matches(password)
	return false
}

// Params returns the configured cost parameters.
func (a *Argon2) Params() Config {
	return a.config
}

func malformed(what string) error {
	return fmt.Errorf("%w: %s", ErrMalformedHash, what)
}

func decodePHC(encoded string) (*phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, malformed("layout")
	}
	if parts[1] != algorithmID {
		return nil, malformed("algorithm " + parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, malformed("version")
	}

	var p phc
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.parallelism); err != nil {
		return nil, malformed("parameters")
	}
	// Sscanf stops at the last verb, so trailing or reordered fields only
	// show up on a round trip.
	if p.params() != parts[3] {
		return nil, malformed("parameters")
	}
	if p.memory < minMemoryKB || p.time < minTimeCost || p.parallelism < minParallelism {
		return nil, malformed("parameters below minimum")
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) < int(minSaltLength) {
		return nil, malformed("salt")
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.key) < int(minKeyLength) {
		return nil, malformed("key")
	}
	return &p, nil
}

func validateConfig(cfg Config) error {
	switch {
	case cfg.Memory < minMemoryKB:
		return errors.New("password memory must be >= 8192 KB")
	case cfg.Time < minTimeCost:
		return errors.New("password time must be >= 1")
	case cfg.Parallelism < minParallelism:
		return errors.New("password parallelism must be >= 1")
	case cfg.SaltLength < minSaltLength:
		return errors.New("password salt length must be >= 16")
	case cfg.KeyLength < minKeyLength:
		return errors.New("password key length must be >= 16")
	}
	return nil
}
