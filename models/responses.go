package models

// Status values returned by the vault API.
const (
	StatusOnline         = "online"
	StatusEncrypted      = "encrypted"
	StatusAuthenticated  = "authenticated"
	StatusVerified       = "verified"
	StatusVaultDestroyed = "VAULT DESTROYED"
)

// StatusResponse is a generic acknowledgement.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is written for every non-2xx answer. Detail is meant to be
// shown to the user as-is.
type ErrorResponse struct {
	Detail string `json:"detail"`
	// RecoveryToken is only set when a failed identity check destroyed the
	// vault.
	RecoveryToken string `json:"recovery_token,omitempty"`
}

// CreateVaultResponse returns the freshly generated vault key. The key is
// shown exactly once; the server keeps only its digest.
type CreateVaultResponse struct {
	PrivateKey string `json:"YOUR_PRIVATE_KEY"`
	Message    string `json:"message"`
}

// LoginVaultResponse is returned together with the Authorization header.
type LoginVaultResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// VerifyIdentityResponse carries the temporary password that replaces the
// master password after a successful identity check.
type VerifyIdentityResponse struct {
	Status       string `json:"status"`
	TempPassword string `json:"temp_password"`
}

// DestroyVaultResponse summarises a vault destruction.
type DestroyVaultResponse struct {
	Status        string `json:"status"`
	FilesAffected int    `json:"files_affected"`
	Message       string `json:"message"`
	RecoveryToken string `json:"recovery_token"`
}

// UploadResponse acknowledges a stored file.
type UploadResponse struct {
	Filename string `json:"filename"`
	Owner    string `json:"owner"`
	Status   string `json:"status"`
}

// DownloadResult is the decrypted file handed from the service layer to the
// transport.
type DownloadResult struct {
	Filename string
	Content  []byte
	SHA256   string
}

// DestroyResult is the service-level outcome of a vault destruction.
type DestroyResult struct {
	FilesAffected int
	RecoveryToken string
}
