package cred

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"code.cloudfoundry.org/lager/v3"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/pbkdf2"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
)

const (
	pbkdf2Iterations = 4096
	keyLength        = 32
	saltLength       = 16
)

// Store hands out decrypted store API credentials.
type Store interface {
	Get(appId string) (*models.Credential, error)
}

// CachingStore decrypts credentials from a CredentialDB and caches the
// plaintext for a bounded TTL so a run over many apps does not hit the
// database and KDF once per app per metric.
type CachingStore struct {
	logger     lager.Logger
	cdb        db.CredentialDB
	passphrase string
	cache      *gocache.Cache
}

func NewCachingStore(logger lager.Logger, cdb db.CredentialDB, passphrase string, cacheTTL time.Duration) *CachingStore {
	return &CachingStore{
		logger:     logger.Session("credential-store"),
		cdb:        cdb,
		passphrase: passphrase,
		cache:      gocache.New(cacheTTL, cacheTTL),
	}
}

// Get returns the credential for appId. A missing or undecryptable
// credential is a configuration error, which callers treat as permanent.
func (s *CachingStore) Get(appId string) (*models.Credential, error) {
	if cached, found := s.cache.Get(appId); found {
		return cached.(*models.Credential), nil
	}

	encrypted, err := s.cdb.GetCredential(appId)
	if err != nil {
		if errors.Is(err, db.ErrDoesNotExist) {
			return nil, &models.ConfigError{Detail: fmt.Sprintf("no credential configured for app %s", appId)}
		}
		s.logger.Error("fetch-credential", err, lager.Data{"app-id": appId})
		return nil, err
	}

	credential, err := decrypt(s.passphrase, encrypted)
	if err != nil {
		s.logger.Error("decrypt-credential", err, lager.Data{"app-id": appId})
		return nil, &models.ConfigError{Detail: fmt.Sprintf("credential for app %s cannot be decrypted", appId)}
	}

	s.cache.SetDefault(appId, credential)
	return credential, nil
}

func decrypt(passphrase string, encrypted *models.EncryptedCredential) (*models.Credential, error) {
	gcm, err := aead(passphrase, encrypted.Salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, encrypted.Nonce, encrypted.Ciphertext, nil)
	if err != nil {
		return nil, err
	}
	credential := &models.Credential{}
	if err := json.Unmarshal(plaintext, credential); err != nil {
		return nil, err
	}
	credential.AppId = encrypted.AppId
	return credential, nil
}

// Encrypt seals a credential for storage, generating a fresh salt and
// nonce. Used by provisioning tooling and tests.
func Encrypt(passphrase string, credential *models.Credential) (*models.EncryptedCredential, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	gcm, err := aead(passphrase, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	plaintext, err := json.Marshal(credential)
	if err != nil {
		return nil, err
	}
	return &models.EncryptedCredential{
		AppId:      credential.AppId,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	}, nil
}

func aead(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
