package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"fleetctl/internal/api"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Printer writes command results to out and status lines to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format OutputFormat
	quiet  bool
}

// NewPrinter creates a printer.
func NewPrinter(out, errOut io.Writer, format OutputFormat, quiet bool) *Printer {
	return &Printer{out: out, errOut: errOut, format: format, quiet: quiet}
}

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Success prints a command's success message.
func (p *Printer) Success(msg string) {
	if p.quiet {
		return
	}
	successColor.Fprintf(p.out, "✓ %s\n", msg)
}

// Warning prints a refusal such as an offline host.
func (p *Printer) Warning(msg string) {
	warningColor.Fprintf(p.errOut, "! %s\n", msg)
}

// Failure prints an error line.
func (p *Printer) Failure(msg string) {
	errorColor.Fprintf(p.errOut, "✗ %s\n", msg)
}

// Hosts prints the fleet.
func (p *Printer) Hosts(hosts []api.Host) error {
	switch p.format {
	case OutputFormatJSON:
		return p.json(hosts)
	case OutputFormatYAML:
		return p.yaml(hosts)
	}

	if len(hosts) == 0 {
		fmt.Fprintln(p.out, text.FgYellow.Sprint("No computers found"))
		return nil
	}

	t := p.newTable()
	t.AppendHeader(header("ID", "Name", "Address", "State", "CPU", "Memory", "Apps"))
	online := 0
	for _, h := range hosts {
		cpu, mem := dash(), dash()
		if h.IsOnline {
			online++
			cpu, mem = percent(h.Stats.CPUUsage), percent(h.Stats.MemUsage)
		}
		t.AppendRow(table.Row{h.ID, h.Name, h.IPAddress, onlineState(h.IsOnline), cpu, mem, appsSummary(h)})
	}
	t.Render()

	fmt.Fprintf(p.out, "\n%s %s\n",
		text.FgHiBlue.Sprint("Total:"),
		text.FgHiWhite.Sprintf("%d computers, %d online", len(hosts), online))
	return nil
}

// Host prints one host with its applications.
func (p *Printer) Host(h api.Host) error {
	switch p.format {
	case OutputFormatJSON:
		return p.json(h)
	case OutputFormatYAML:
		return p.yaml(h)
	}

	kv := p.newTable()
	kv.AppendHeader(header("Property", "Value"))
	kv.AppendRows([]table.Row{
		{text.FgYellow.Sprint("id"), h.ID},
		{text.FgYellow.Sprint("name"), h.Name},
		{text.FgYellow.Sprint("address"), h.IPAddress},
		{text.FgYellow.Sprint("state"), onlineState(h.IsOnline)},
	})
	if h.IsOnline {
		kv.AppendRows([]table.Row{
			{text.FgYellow.Sprint("cpu"), percent(h.Stats.CPUUsage)},
			{text.FgYellow.Sprint("memory"), percent(h.Stats.MemUsage)},
			{text.FgYellow.Sprint("processes"), h.Stats.TotalProcesses},
		})
	}
	kv.Render()

	if len(h.Apps) == 0 {
		fmt.Fprintln(p.out, text.FgHiBlack.Sprint("No applications configured"))
		return nil
	}

	apps := p.newTable()
	apps.AppendHeader(header("ID", "Name", "State", "Process", "Path", "CPU", "Memory"))
	for _, a := range h.Apps {
		cpu, mem := dash(), dash()
		if a.IsRunning {
			cpu, mem = percent(a.CPUUsage), percent(a.MemUsage)
		}
		apps.AppendRow(table.Row{a.ID, a.Name, runState(a.IsRunning), a.ProcessName, truncate(a.Path, 40), cpu, mem})
	}
	apps.Render()
	return nil
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func (p *Printer) json(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(p.out, string(data))
	return nil
}

// yaml goes through JSON so the keys match the wire names.
func (p *Printer) yaml(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	_, err = p.out.Write(out)
	return err
}

func header(cols ...string) table.Row {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = text.FgHiCyan.Sprint(strings.ToUpper(c))
	}
	return row
}

func onlineState(online bool) string {
	if online {
		return text.FgGreen.Sprint("● online")
	}
	return text.FgHiBlack.Sprint("○ offline")
}

func runState(running bool) string {
	if running {
		return text.FgGreen.Sprint("▶ running")
	}
	return text.FgRed.Sprint("■ stopped")
}

func appsSummary(h api.Host) string {
	running := 0
	for _, a := range h.Apps {
		if a.IsRunning {
			running++
		}
	}
	return fmt.Sprintf("%d/%d", running, len(h.Apps))
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func dash() string {
	return text.FgHiBlack.Sprint("-")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
