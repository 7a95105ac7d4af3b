package models

// CreateVaultRequest is the body of POST /create-vault.
type CreateVaultRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
}

// LoginVaultRequest is the body of POST /login-vault. All three fields are
// required: the password proves knowledge of the account and the private key
// proves possession of the vault key.
type LoginVaultRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	PrivateKey string `json:"private_key"`
}

// VerifyIdentityRequest is the body of POST /verify-identity, used to unlock
// a vault that was locked after too many failed logins.
//
// PrivateKey is optional. When the answer is wrong the vault is destroyed and
// the recovery token is derived from it.
type VerifyIdentityRequest struct {
	Email          string `json:"email"`
	SecurityAnswer string `json:"security_answer"`
	PrivateKey     string `json:"private_key,omitempty"`
}

// DestroyVaultRequest is the body of POST /destroy-vault.
//
// UserEmail is optional for authenticated callers; when given it must match
// the token subject.
type DestroyVaultRequest struct {
	UserEmail  string `json:"user_email,omitempty"`
	PrivateKey string `json:"private_key"`
}

// DownloadRequest is the body of POST /download.
type DownloadRequest struct {
	Filename   string `json:"filename"`
	PrivateKey string `json:"private_key"`
	UserEmail  string `json:"user_email,omitempty"`
}

// UploadRequest carries a decoded multipart upload into the service layer.
type UploadRequest struct {
	Email      string
	Filename   string
	PrivateKey string
	Content    []byte
}
