package tui

import "github.com/MKhiriev/go-file-vault/models"

// Page names known to RootModel.
const (
	pageLogin     = "login"
	pageRegister  = "register"
	pageDashboard = "dashboard"
	pageRecovery  = "recovery"
)

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page before its Init runs.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginPrefill opens the login page with fields filled in and an optional
// notice above the form.
type LoginPrefill struct {
	Email    string
	VaultKey string
	Notice   string
}

// RecoveryRequest carries the email and vault key of a locked vault from
// the login page to the recovery page.
type RecoveryRequest struct {
	Email    string
	VaultKey string
}

type loginResultMsg struct {
	session models.Session
	err     error
}

type registerResultMsg struct {
	email    string
	vaultKey string
	err      error
}

type recoverResultMsg struct {
	tempPassword string
	err          error
}

type sessionLoadedMsg struct {
	session models.Session
	err     error
}

type filesLoadedMsg struct {
	files []models.FileInfo
	err   error
}

type uploadDoneMsg struct {
	resp models.UploadResponse
	err  error
}

type downloadDoneMsg struct {
	path string
	err  error
}

type destroyDoneMsg struct {
	resp models.DestroyVaultResponse
	err  error
}

type logoutDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
