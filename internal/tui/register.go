package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

const (
	registerEmail = iota
	registerPassword
	registerAnswer
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// RegisterModel creates a vault. The generated vault key is shown exactly
// once, with an option to copy it, before moving on to the login page.
type RegisterModel struct {
	ctx    context.Context
	vaults service.ClientVaultService

	form       form
	question   int
	submitting bool
	errMsg     string

	// set after a successful registration
	email    string
	vaultKey string
	status   string
}

func NewRegisterModel(ctx context.Context, vaults service.ClientVaultService) *RegisterModel {
	return &RegisterModel{
		ctx:    ctx,
		vaults: vaults,
		form: newForm(
			formField{label: "Email", input: newInput("owner@example.com", 254, false)},
			formField{label: "Password", input: newInput("master password", 256, true)},
			formField{label: "Answer", input: newInput("answer to the security question", 128, false)},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.vaultKey != "" {
		return m.updateKeyScreen(msg)
	}

	switch msg := msg.(type) {
	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.email = msg.email
		m.vaultKey = msg.vaultKey
		m.form.reset()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.errMsg = ""
			return m, navigate(pageLogin, nil)
		case key.Matches(msg, keys.left):
			m.question = (m.question - 1 + len(models.SecurityQuestions)) % len(models.SecurityQuestions)
			return m, nil
		case key.Matches(msg, keys.right):
			m.question = (m.question + 1) % len(models.SecurityQuestions)
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			if field := m.form.missing(); field != "" {
				m.errMsg = field + " is required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(models.CreateVaultRequest{
				Email:            m.form.value(registerEmail),
				Password:         m.form.value(registerPassword),
				SecurityQuestion: models.SecurityQuestions[m.question],
				SecurityAnswer:   m.form.value(registerAnswer),
			})
		}
	}

	_, cmd := m.form.update(msg)
	return m, cmd
}

func (m *RegisterModel) updateKeyScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Vault key copied to the clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			vaultKey := m.vaultKey
			return m, func() tea.Msg { return copiedMsg{err: writeClipboard(vaultKey)} }
		case key.Matches(msg, keys.enter):
			prefill := LoginPrefill{
				Email:    m.email,
				VaultKey: m.vaultKey,
				Notice:   "Vault created. Log in with your password and vault key.",
			}
			m.email, m.vaultKey, m.status = "", "", ""
			return m, navigate(pageLogin, prefill)
		}
	}
	return m, nil
}

func (m *RegisterModel) View() string {
	var b strings.Builder

	if m.vaultKey != "" {
		b.WriteString("Your vault has been created.\n\n")
		b.WriteString("Vault key: ")
		b.WriteString(secretStyle.Render(m.vaultKey))
		b.WriteString("\n\nThis key is shown only once. Without it your files cannot be decrypted.\n")
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(noticeStyle.Render(m.status))
			b.WriteString("\n")
		}
		return renderPage("VAULT KEY", strings.TrimRight(b.String(), "\n"), "c: copy key │ enter: continue to login")
	}

	m.form.view(&b)
	b.WriteString("Question │ ◀ ")
	b.WriteString(models.SecurityQuestions[m.question])
	b.WriteString(" ▶\n")

	if m.submitting {
		b.WriteString("\n[Creating vault...]\n")
	} else {
		b.WriteString("\n[Create vault]\n")
	}
	renderError(&b, m.errMsg)

	return renderPage("CREATE VAULT", strings.TrimRight(b.String(), "\n"),
		"tab: next field │ ←/→: question │ enter: create │ esc: back")
}

func (m *RegisterModel) cmdRegister(req models.CreateVaultRequest) tea.Cmd {
	ctx := m.ctx
	vaults := m.vaults

	return func() tea.Msg {
		vaultKey, err := vaults.Register(ctx, req)
		return registerResultMsg{email: req.Email, vaultKey: vaultKey, err: err}
	}
}
