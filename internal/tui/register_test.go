package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

func TestRegisterModel_RequiredFields(t *testing.T) {
	m := NewRegisterModel(context.Background(), nil)
	m.form.setValue(registerEmail, "a@b.c")
	m.form.setValue(registerPassword, "pw")

	_, cmd := m.Update(keyEnter())
	assert.Nil(t, cmd)
	assert.Equal(t, "Answer is required", m.errMsg)
}

func TestRegisterModel_QuestionPicker(t *testing.T) {
	m := NewRegisterModel(context.Background(), nil)
	require.Equal(t, 0, m.question)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, len(models.SecurityQuestions)-1, m.question)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.question)
	assert.Contains(t, m.View(), models.SecurityQuestions[1])
}

func TestRegisterModel_ShowsKeyOnce(t *testing.T) {
	var got models.CreateVaultRequest
	m := NewRegisterModel(context.Background(), &fakeVaults{
		registerFn: func(_ context.Context, req models.CreateVaultRequest) (string, error) {
			got = req
			return "VK-0123", nil
		},
	})
	m.form.setValue(registerEmail, "a@b.c")
	m.form.setValue(registerPassword, "pw")
	m.form.setValue(registerAnswer, "Rex")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	_, cmd := m.Update(keyEnter())
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())

	assert.Equal(t, models.CreateVaultRequest{
		Email:            "a@b.c",
		Password:         "pw",
		SecurityQuestion: models.SecurityQuestions[1],
		SecurityAnswer:   "Rex",
	}, got)
	assert.Contains(t, m.View(), "VK-0123")

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	_, cmd = m.Update(keyRunes("c"))
	_, _ = m.Update(cmd())
	assert.Equal(t, "VK-0123", copied)
	assert.Contains(t, m.View(), "Vault key copied")

	_, cmd = m.Update(keyEnter())
	nav, ok := navigation(cmd)
	require.True(t, ok)
	assert.Equal(t, pageLogin, nav.Page)
	assert.Equal(t, "VK-0123", nav.Payload.(LoginPrefill).VaultKey)
	assert.Empty(t, m.vaultKey, "the key is not kept after leaving")
}

func TestRegisterModel_CopyFailure(t *testing.T) {
	m := NewRegisterModel(context.Background(), nil)
	_, _ = m.Update(registerResultMsg{email: "a@b.c", vaultKey: "VK-1"})

	_, _ = m.Update(copiedMsg{err: errors.New("no clipboard utility")})
	assert.Contains(t, m.View(), "Copy failed: no clipboard utility")
}

func TestRegisterModel_DuplicateEmail(t *testing.T) {
	m := NewRegisterModel(context.Background(), nil)

	_, _ = m.Update(registerResultMsg{err: &service.RemoteError{Err: service.ErrVaultAlreadyExists, Detail: "Vault already exists"}})
	assert.Equal(t, "Vault already exists", m.errMsg)
	assert.Empty(t, m.vaultKey)
}
