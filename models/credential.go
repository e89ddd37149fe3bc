package models

// Credential is a decrypted store API credential for one app. For App
// Store Connect apps KeyId/IssuerId/Secret carry the API key triple; for
// Google Play apps Secret holds the service account JSON and the other
// fields stay empty.
type Credential struct {
	AppId    string `json:"app_id"`
	KeyId    string `json:"key_id,omitempty"`
	IssuerId string `json:"issuer_id,omitempty"`
	Secret   string `json:"secret"`
}

// EncryptedCredential is the at-rest form: AES-GCM ciphertext with the
// per-row KDF salt and nonce.
type EncryptedCredential struct {
	AppId      string
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}
