package controller

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/internal/api"
	"fleetctl/internal/dashboard"
	"fleetctl/internal/tui/model"
)

// handleKeyMsgForm drives the add-host and add-application forms.
func handleKeyMsgForm(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	form := m.Form
	if form == nil {
		m.CurrentAppMode = model.ModeMainDashboard
		return m, nil
	}

	switch {
	case keyMsg.Type == tea.KeyEsc:
		closeForm(m)
		return m, nil
	case key.Matches(keyMsg, m.Keys.NextField):
		return m, form.NextField()
	case key.Matches(keyMsg, m.Keys.PrevField):
		return m, form.PrevField()
	case keyMsg.Type == tea.KeyEnter:
		if !form.OnLastField() {
			return m, form.NextField()
		}
		return submitForm(m)
	}
	return m, form.Update(keyMsg)
}

// submitForm validates locally; invalid input keeps the form open and
// raises a warning, valid input closes it and dispatches.
func submitForm(m *model.Model) (*model.Model, tea.Cmd) {
	form := m.Form

	switch m.CurrentAppMode {
	case model.ModeAddHostForm:
		req := form.AddHostRequest()
		if err := api.Validate(req); err != nil {
			m.Engine.Notify(dashboard.KindWarning, err.Error())
			m.ApplySnapshot(m.Engine.View())
			return m, nil
		}
		closeForm(m)
		return m, model.RunEngineCmd(m.Ctx, "add-host", func(ctx context.Context) error {
			return m.Engine.AddHost(ctx, req)
		})

	case model.ModeAddAppForm:
		req := form.AddAppRequest()
		if err := api.Validate(req); err != nil {
			m.Engine.Notify(dashboard.KindWarning, err.Error())
			m.ApplySnapshot(m.Engine.View())
			return m, nil
		}
		hostID := form.HostID
		closeForm(m)
		return m, model.RunEngineCmd(m.Ctx, "add-app", func(ctx context.Context) error {
			return m.Engine.AddApp(ctx, hostID, req)
		})
	}
	return m, nil
}

func closeForm(m *model.Model) {
	m.Form = nil
	m.CurrentAppMode = model.ModeMainDashboard
}
