// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

const (
	loginEmail = iota
	loginPassword
	loginVaultKey
)

// LoginModel asks for email, password and vault key. A locked vault sends
// the user to the recovery page with email and key carried over; a
// successful login opens the dashboard.
type LoginModel struct {
	ctx    context.Context
	vaults service.ClientVaultService

	form       form
	submitting bool
	notice     string
	errMsg     string
}

func NewLoginModel(ctx context.Context, vaults service.ClientVaultService) *LoginModel {
	return &LoginModel{
		ctx:    ctx,
		vaults: vaults,
		form: newForm(
			formField{label: "Email", input: newInput("owner@example.com", 254, false)},
			formField{label: "Password", input: newInput("master password", 256, true)},
			formField{label: "Vault key", input: newInput("VK-...", 128, true)},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginPrefill:
		m.form.reset()
		m.form.setValue(loginEmail, msg.Email)
		m.form.setValue(loginVaultKey, msg.VaultKey)
		if msg.Email != "" {
			m.form.focusOn(loginPassword)
		}
		m.notice = msg.Notice
		m.errMsg = ""
		m.submitting = false
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrVaultLocked) {
				m.errMsg = ""
				return m, navigate(pageRecovery, RecoveryRequest{
					Email:    m.form.value(loginEmail),
					VaultKey: m.form.value(loginVaultKey),
				})
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = ""
		m.form.setValue(loginPassword, "")
		return m, navigate(pageDashboard, nil)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.register):
			m.errMsg = ""
			return m, navigate(pageRegister, nil)
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
			return m, m.cmdLogin(models.LoginVaultRequest{
				Email:      m.form.value(loginEmail),
				Password:   m.form.value(loginPassword),
				PrivateKey: m.form.value(loginVaultKey),
			})
		}
	}

	_, cmd := m.form.update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder
	renderNotice(&b, m.notice)
	m.form.view(&b)

	if m.submitting {
		b.WriteString("\n[Unlocking...]\n")
	} else {
		b.WriteString("\n[Unlock vault]\n")
	}
	renderError(&b, m.errMsg)

	return renderPage("LOGIN", strings.TrimRight(b.String(), "\n"),
		"tab: next field │ enter: unlock │ ctrl+r: create a vault │ f1: about")
}

func (m *LoginModel) cmdLogin(req models.LoginVaultRequest) tea.Cmd {
	ctx := m.ctx
	vaults := m.vaults

	return func() tea.Msg {
		session, err := vaults.Login(ctx, req)
		return loginResultMsg{session: session, err: err}
	}
}
