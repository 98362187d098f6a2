package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/internal/api"
)

// FormField is one labelled text input.
type FormField struct {
	Label    string
	Required bool
	Input    textinput.Model
}

// Form is a small modal input form. HostID is set for forms that act on a
// host (add application).
type Form struct {
	Title  string
	HostID string
	Fields []FormField
	Focus  int
}

func newField(label, placeholder string, required bool) FormField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if required {
		label += "*"
	}
	return FormField{Label: label, Required: required, Input: ti}
}

// NewAddHostForm builds the "Add New Computer" form.
func NewAddHostForm() *Form {
	f := &Form{
		Title: "Add New Computer",
		Fields: []FormField{
			newField("Computer Name", "e.g., Living Room PC", true),
			newField("IP Address", "e.g., 192.168.1.100", true),
		},
	}
	f.focus(0)
	return f
}

// NewAddAppForm builds the "Add Application" form for a host.
func NewAddAppForm(hostID, hostName string) *Form {
	f := &Form{
		Title:  "Add Application to " + hostName,
		HostID: hostID,
		Fields: []FormField{
			newField("Application Name", "e.g., Web Server", true),
			newField("Executable Path", `e.g., C:\nginx\nginx.exe`, true),
			newField("Process Name", "e.g., nginx.exe", true),
			newField("Arguments", "optional", false),
		},
	}
	f.focus(0)
	return f
}

func (f *Form) focus(i int) tea.Cmd {
	for j := range f.Fields {
		f.Fields[j].Input.Blur()
	}
	f.Focus = i
	return f.Fields[i].Input.Focus()
}

// NextField moves focus down, wrapping around.
func (f *Form) NextField() tea.Cmd {
	return f.focus((f.Focus + 1) % len(f.Fields))
}

// PrevField moves focus up, wrapping around.
func (f *Form) PrevField() tea.Cmd {
	return f.focus((f.Focus - 1 + len(f.Fields)) % len(f.Fields))
}

// OnLastField reports whether the last field has focus.
func (f *Form) OnLastField() bool {
	return f.Focus == len(f.Fields)-1
}

// Update forwards a message to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.Fields[f.Focus].Input, cmd = f.Fields[f.Focus].Input.Update(msg)
	return cmd
}

// Value returns the trimmed text of field i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[i].Input.Value())
}

// SetValue sets the text of field i.
func (f *Form) SetValue(i int, v string) {
	f.Fields[i].Input.SetValue(v)
}

// AddHostRequest reads an add-host form.
func (f *Form) AddHostRequest() api.AddHostRequest {
	return api.AddHostRequest{Name: f.Value(0), IPAddress: f.Value(1)}
}

// AddAppRequest reads an add-application form.
func (f *Form) AddAppRequest() api.AddAppRequest {
	return api.AddAppRequest{
		Name:        f.Value(0),
		Path:        f.Value(1),
		ProcessName: f.Value(2),
		Args:        f.Value(3),
	}
}
