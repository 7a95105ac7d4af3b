package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

type recoveryOutcome int

const (
	recoveryPending recoveryOutcome = iota
	recoveryVerified
	recoveryDestroyed
)

// RecoveryModel answers the security question of a locked vault. It only
// works with the email and vault key carried from the login page and sends
// the user back there without them.
//
// A wrong answer destroys the vault on the server; the page then shows the
// recovery token instead of a form.
type RecoveryModel struct {
	ctx    context.Context
	vaults service.ClientVaultService

	email    string
	vaultKey string

	form       form
	submitting bool
	errMsg     string

	outcome       recoveryOutcome
	tempPassword  string
	recoveryToken string
}

func NewRecoveryModel(ctx context.Context, vaults service.ClientVaultService) *RecoveryModel {
	return &RecoveryModel{
		ctx:    ctx,
		vaults: vaults,
		form: newForm(
			formField{label: "Answer", input: newInput("answer to your security question", 128, false)},
		),
	}
}

func (m *RecoveryModel) Init() tea.Cmd {
	if m.email == "" || m.vaultKey == "" {
		return navigate(pageLogin, nil)
	}
	return textinput.Blink
}

func (m *RecoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecoveryRequest:
		m.email = strings.TrimSpace(msg.Email)
		m.vaultKey = strings.TrimSpace(msg.VaultKey)
		m.form.reset()
		m.errMsg = ""
		m.submitting = false
		m.outcome = recoveryPending
		m.tempPassword, m.recoveryToken = "", ""
		return m, nil

	case recoverResultMsg:
		m.submitting = false
		var destroyed *service.VaultDestroyedError
		switch {
		case msg.err == nil:
			m.outcome = recoveryVerified
			m.tempPassword = msg.tempPassword
		case errors.As(msg.err, &destroyed):
			m.outcome = recoveryDestroyed
			m.recoveryToken = destroyed.RecoveryToken
		case errors.Is(msg.err, service.ErrVaultDestroyed):
			m.outcome = recoveryDestroyed
		default:
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.outcome != recoveryPending {
			if key.Matches(msg, keys.enter) {
				return m, m.finish()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.esc):
			return m, m.finish()
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			if m.form.missing() != "" {
				m.errMsg = "Answer is required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRecover(models.VerifyIdentityRequest{
				Email:          m.email,
				SecurityAnswer: m.form.value(0),
				PrivateKey:     m.vaultKey,
			})
		}
	}

	_, cmd := m.form.update(msg)
	return m, cmd
}

// finish leaves the page and forgets the carried credentials.
func (m *RecoveryModel) finish() tea.Cmd {
	prefill := LoginPrefill{Email: m.email, VaultKey: m.vaultKey}
	switch m.outcome {
	case recoveryVerified:
		prefill.Notice = "Identity verified. Log in with the temporary password."
	case recoveryDestroyed:
		prefill = LoginPrefill{Notice: "Vault destroyed. Recovery token: " + m.recoveryToken}
	}

	m.email, m.vaultKey = "", ""
	m.outcome = recoveryPending
	m.tempPassword, m.recoveryToken = "", ""
	m.form.reset()

	return navigate(pageLogin, prefill)
}

func (m *RecoveryModel) View() string {
	var b strings.Builder

	switch m.outcome {
	case recoveryVerified:
		b.WriteString("Identity verified. Your vault is unlocked.\n\n")
		b.WriteString("Temporary password: ")
		b.WriteString(secretStyle.Render(m.tempPassword))
		b.WriteString("\n\nIt replaces your old password. It was also sent to ")
		b.WriteString(m.email)
		b.WriteString(" if mail is configured.\n")
		return renderPage("IDENTITY VERIFIED", strings.TrimRight(b.String(), "\n"), "enter: continue to login")

	case recoveryDestroyed:
		b.WriteString(errorStyle.Render("Identity verification failed. Vault destroyed."))
		b.WriteString("\n\nYour files were moved to deep storage.\n")
		if m.recoveryToken != "" {
			b.WriteString("Recovery token: ")
			b.WriteString(secretStyle.Render(m.recoveryToken))
			b.WriteString("\n")
		}
		return renderPage("VAULT DESTROYED", strings.TrimRight(b.String(), "\n"), "enter: back to login")
	}

	b.WriteString(errorStyle.Render("Vault LOCKED. Identity verification required."))
	b.WriteString("\n\nVault: ")
	b.WriteString(m.email)
	b.WriteString("\nA wrong answer destroys the vault.\n\n")
	m.form.view(&b)

	if m.submitting {
		b.WriteString("\n[Verifying...]\n")
	} else {
		b.WriteString("\n[Verify identity]\n")
	}
	renderError(&b, m.errMsg)

	return renderPage("RECOVERY", strings.TrimRight(b.String(), "\n"), "enter: verify │ esc: back to login")
}

func (m *RecoveryModel) cmdRecover(req models.VerifyIdentityRequest) tea.Cmd {
	ctx := m.ctx
	vaults := m.vaults

	return func() tea.Msg {
		tempPassword, err := vaults.Recover(ctx, req)
		return recoverResultMsg{tempPassword: tempPassword, err: err}
	}
}
