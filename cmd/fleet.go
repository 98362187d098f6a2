package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fleetctl/internal/api"
	"fleetctl/internal/app"
	"fleetctl/internal/cli"
	"fleetctl/internal/dashboard"
)

// fleetEngine is the engine surface the scripting commands use.
type fleetEngine interface {
	Refresh(ctx context.Context) error
	View() dashboard.View
	Dispatch(ctx context.Context, cmd dashboard.Command) error
	RequestConfirmation(title, description string, cmd dashboard.Command)
	ConfirmPending(ctx context.Context) error
	CancelPending()
}

var _ fleetEngine = (*dashboard.Engine)(nil)

var newFleetEngine = func() (fleetEngine, error) {
	application, err := app.NewApplication(appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Services().Engine, nil
}

// fleetSession is one scripting command's view of the fleet.
type fleetSession struct {
	cmd     *cobra.Command
	engine  fleetEngine
	printer *cli.Printer
}

func newFleetSession(cmd *cobra.Command, format cli.OutputFormat) (*fleetSession, error) {
	engine, err := newFleetEngine()
	if err != nil {
		return nil, err
	}
	return &fleetSession{
		cmd:     cmd,
		engine:  engine,
		printer: cli.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, false),
	}, nil
}

func (s *fleetSession) ctx() context.Context {
	if ctx := s.cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// hosts fetches a fresh snapshot.
func (s *fleetSession) hosts() ([]api.Host, error) {
	if err := s.engine.Refresh(s.ctx()); err != nil {
		return nil, errors.New(dashboard.ConnectionBanner(err))
	}
	return s.engine.View().Hosts, nil
}

// host resolves ref as a host id or, failing that, an exact name.
func (s *fleetSession) host(ref string) (api.Host, error) {
	hosts, err := s.hosts()
	if err != nil {
		return api.Host{}, err
	}
	return resolveHost(hosts, ref)
}

func resolveHost(hosts []api.Host, ref string) (api.Host, error) {
	var byName []api.Host
	for _, h := range hosts {
		if h.ID == ref {
			return h, nil
		}
		if strings.EqualFold(h.Name, ref) {
			byName = append(byName, h)
		}
	}
	switch len(byName) {
	case 0:
		return api.Host{}, fmt.Errorf("computer %q not found", ref)
	case 1:
		return byName[0], nil
	default:
		return api.Host{}, fmt.Errorf("%d computers are named %q; use the id instead", len(byName), ref)
	}
}

func resolveApp(host api.Host, ref string) (api.Application, error) {
	if a, ok := host.FindApp(ref); ok {
		return a, nil
	}
	var match []api.Application
	for _, a := range host.Apps {
		if strings.EqualFold(a.Name, ref) {
			match = append(match, a)
		}
	}
	switch len(match) {
	case 0:
		return api.Application{}, fmt.Errorf("application %q not found on %s", ref, host.Name)
	case 1:
		return match[0], nil
	default:
		return api.Application{}, fmt.Errorf("%d applications on %s are named %q; use the id instead", len(match), host.Name, ref)
	}
}

// dispatch runs c through the engine and prints its outcome.
func (s *fleetSession) dispatch(c dashboard.Command) error {
	return s.report(c, s.engine.Dispatch(s.ctx(), c))
}

// confirmAndDispatch parks c behind the confirmation gate and runs it once
// the user agrees, or straight away with --yes.
func (s *fleetSession) confirmAndDispatch(title, description string, c dashboard.Command, yes bool) error {
	s.engine.RequestConfirmation(title, description, c)
	if !yes && !s.ask(description) {
		s.engine.CancelPending()
		fmt.Fprintln(s.cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return s.report(c, s.engine.ConfirmPending(s.ctx()))
}

func (s *fleetSession) ask(question string) bool {
	fmt.Fprintf(s.cmd.OutOrStdout(), "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(s.cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (s *fleetSession) report(c dashboard.Command, err error) error {
	switch {
	case err == nil:
		s.printer.Success(c.SuccessMessage)
		return nil
	case errors.Is(err, dashboard.ErrHostOffline):
		s.printer.Warning(s.latestNotification(err))
	default:
		s.printer.Failure("Action failed: " + err.Error())
	}
	return reportedError{err: err}
}

// latestNotification returns the message the engine just pushed for a
// refused command.
func (s *fleetSession) latestNotification(fallback error) string {
	notes := s.engine.View().Notifications
	if len(notes) == 0 {
		return fallback.Error()
	}
	return notes[len(notes)-1].Message
}

// refuseOffline mirrors the dashboard: power actions on an offline host are
// refused before asking for confirmation.
func (s *fleetSession) refuseOffline(host api.Host) error {
	if host.IsOnline {
		return nil
	}
	msg := fmt.Sprintf("%s is offline.", host.Name)
	s.printer.Warning(msg)
	return reportedError{err: fmt.Errorf("%s: %w", host.Name, dashboard.ErrHostOffline)}
}
