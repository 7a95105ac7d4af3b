package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

type dashboardMode int

const (
	modeList dashboardMode = iota
	modeUploadPrompt
	modeConfirmDestroy
)

const statusTTL = 4 * time.Second

// DashboardModel lists the files of the logged-in vault and drives upload,
// download, destruction and logout. Without a saved session it sends the
// user to the login page.
type DashboardModel struct {
	ctx         context.Context
	vaults      service.ClientVaultService
	sessions    service.ClientSessionService
	downloadDir string

	session models.Session
	files   []models.FileInfo
	idx     int

	mode      dashboardMode
	pathInput textinput.Model

	loading bool
	busy    bool
	spinner spinner.Model
	status  string
	errMsg  string
}

// NewDashboardModel creates the dashboard. Downloads are written to
// downloadDir, or the working directory when it is empty.
func NewDashboardModel(ctx context.Context, vaults service.ClientVaultService, sessions service.ClientSessionService, downloadDir string) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &DashboardModel{
		ctx:         ctx,
		vaults:      vaults,
		sessions:    sessions,
		downloadDir: downloadDir,
		pathInput:   newInput("/path/to/file", 4096, false),
		spinner:     s,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	m.mode = modeList
	m.loading = true
	m.files = nil
	m.idx = 0
	m.status, m.errMsg = "", ""
	return tea.Batch(m.spinner.Tick, m.cmdLoadSession())
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionLoadedMsg:
		if msg.err != nil {
			m.loading = false
			return m, m.leave(msg.err)
		}
		m.session = msg.session
		return m, m.cmdListFiles()

	case filesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.files = msg.files
		if m.idx >= len(m.files) {
			m.idx = max(len(m.files)-1, 0)
		}
		return m, nil

	case uploadDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.loading = true
		return m, tea.Batch(m.setStatus("Uploaded and encrypted: "+msg.resp.Filename), m.cmdListFiles())

	case downloadDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, m.setStatus("Saved to " + msg.path)

	case destroyDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, navigate(pageLogin, LoginPrefill{Notice: fmt.Sprintf("%s %d file(s) affected. Recovery token: %s",
			msg.resp.Message, msg.resp.FilesAffected, msg.resp.RecoveryToken)})

	case logoutDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, navigate(pageLogin, LoginPrefill{Notice: "Logged out."})

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.loading || m.busy {
			return m, nil
		}
		switch m.mode {
		case modeUploadPrompt:
			return m.updateUploadPrompt(msg)
		case modeConfirmDestroy:
			return m.updateConfirmDestroy(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeUploadPrompt {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.files)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdListFiles())
	case key.Matches(msg, keys.upload):
		m.mode = modeUploadPrompt
		m.errMsg = ""
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.download):
		file, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdDownload(file.Name))
	case key.Matches(msg, keys.destroy):
		m.mode = modeConfirmDestroy
		m.errMsg = ""
	case key.Matches(msg, keys.logout):
		m.busy = true
		return m, m.cmdLogout()
	}
	return m, nil
}

func (m *DashboardModel) updateUploadPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.mode = modeList
		m.pathInput.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.errMsg = "File path is required"
			return m, nil
		}
		m.mode = modeList
		m.pathInput.Blur()
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdUpload(path))
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *DashboardModel) updateConfirmDestroy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.mode = modeList
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.cmdDestroy())
	case key.Matches(msg, keys.no):
		m.mode = modeList
	}
	return m, nil
}

func (m *DashboardModel) selected() (models.FileInfo, bool) {
	if len(m.files) == 0 || m.idx < 0 || m.idx >= len(m.files) {
		return models.FileInfo{}, false
	}
	return m.files[m.idx], true
}

// fail shows err, or leaves for the login page when the session is gone.
func (m *DashboardModel) fail(err error) tea.Cmd {
	if needsLogin(err) {
		return m.leave(err)
	}
	m.errMsg = humanizeError(err)
	return nil
}

func (m *DashboardModel) leave(err error) tea.Cmd {
	m.session = models.Session{}
	m.files = nil
	prefill := LoginPrefill{}
	if err != nil && !needsLoginSilently(err) {
		prefill.Notice = humanizeError(err)
	}
	return navigate(pageLogin, prefill)
}

func (m *DashboardModel) setStatus(text string) tea.Cmd {
	m.status = text
	return clearStatusAfter(statusTTL)
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	header := "Vault: " + m.session.Email
	if m.loading || m.busy {
		header += "  " + m.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.files) == 0:
		b.WriteString("No files yet. Press u to upload one.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-36s │ %10s │ %s\n", "Name", "Size", "Uploaded"))
		b.WriteString("  " + strings.Repeat("─", 36) + "─┼─" + strings.Repeat("─", 10) + "─┼─" + strings.Repeat("─", 16) + "\n")
		for i, file := range m.files {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-36s │ %10s │ %s\n", cursor, fitText(file.Name, 36),
				humanSize(file.Size), file.CreatedAt().Local().Format("2006-01-02 15:04")))
		}
	}

	switch m.mode {
	case modeUploadPrompt:
		b.WriteString("\nUpload file │ [")
		b.WriteString(m.pathInput.View())
		b.WriteString("]\n")
	case modeConfirmDestroy:
		b.WriteString("\n")
		b.WriteString(overlayBoxStyle.Render("Destroy this vault?\n\nEvery file is moved to deep storage and the vault is deleted.\n\ny yes    n no"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}
	renderError(&b, m.errMsg)

	hotKeys := "↑/↓: select │ u: upload │ d: download │ r: refresh │ x: destroy vault │ l: logout"
	if m.mode == modeUploadPrompt {
		hotKeys = "enter: upload │ esc: cancel"
	}
	return renderPage("DASHBOARD", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *DashboardModel) cmdLoadSession() tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		session, err := sessions.Current(ctx)
		return sessionLoadedMsg{session: session, err: err}
	}
}

func (m *DashboardModel) cmdListFiles() tea.Cmd {
	ctx, vaults := m.ctx, m.vaults
	return func() tea.Msg {
		files, err := vaults.ListFiles(ctx)
		return filesLoadedMsg{files: files, err: err}
	}
}

func (m *DashboardModel) cmdUpload(path string) tea.Cmd {
	ctx, vaults := m.ctx, m.vaults
	return func() tea.Msg {
		resp, err := vaults.Upload(ctx, path)
		return uploadDoneMsg{resp: resp, err: err}
	}
}

func (m *DashboardModel) cmdDownload(name string) tea.Cmd {
	ctx, vaults, dir := m.ctx, m.vaults, m.downloadDir
	return func() tea.Msg {
		path, err := vaults.Download(ctx, name, dir)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (m *DashboardModel) cmdDestroy() tea.Cmd {
	ctx, vaults := m.ctx, m.vaults
	return func() tea.Msg {
		resp, err := vaults.Destroy(ctx)
		return destroyDoneMsg{resp: resp, err: err}
	}
}

func (m *DashboardModel) cmdLogout() tea.Cmd {
	ctx, vaults := m.ctx, m.vaults
	return func() tea.Msg {
		return logoutDoneMsg{err: vaults.Logout(ctx)}
	}
}
