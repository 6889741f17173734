// Package term is the client's terminal transport: a line-oriented loop that
// renders the active view and dispatches commands to the view controllers.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cyclesync/cyclesync-client/internal/domain"
	"github.com/cyclesync/cyclesync-client/internal/service/auth"
	"github.com/cyclesync/cyclesync-client/internal/service/dashboard"
	"github.com/cyclesync/cyclesync-client/internal/service/settings"
	"github.com/cyclesync/cyclesync-client/internal/service/tracking"
	"github.com/cyclesync/cyclesync-client/internal/session"
	"github.com/cyclesync/cyclesync-client/internal/view"
	"github.com/cyclesync/cyclesync-client/pkg/ctxutil"
)

// Services bundles everything the loop dispatches to.
type Services struct {
	Sessions  *session.Manager
	Router    *view.Router
	Auth      *auth.Service
	Dashboard *dashboard.Service
	Tracking  *tracking.Service
	Settings  *settings.Service
}

// Term reads commands from in and renders views to out.
type Term struct {
	log *slog.Logger
	svc Services
	in  io.Reader
	out io.Writer

	// lastView detects transitions into the dashboard so its controller
	// activates once per arrival, whether the move was a command or the
	// automatic post-sign-in navigation.
	lastView view.View
}

func New(svc Services, in io.Reader, out io.Writer, logger *slog.Logger) *Term {
	return &Term{
		log:      logger.With("transport", "term"),
		svc:      svc,
		in:       in,
		out:      out,
		lastView: view.ViewLanding,
	}
}

// Run renders the initial view and processes commands until the input ends,
// the user quits, or ctx is cancelled.
func (t *Term) Run(ctx context.Context) error {
	t.afterCommand(ctx)
	t.render()
	t.prompt()

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			return err
		case line := <-lines:
			quit := t.dispatch(ctx, line)
			if quit {
				return nil
			}
			t.afterCommand(ctx)
			t.render()
			t.prompt()
		}
	}
}

// dispatch handles one command line. It reports true when the user quit.
func (t *Term) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	ctx = requestContext(ctx)

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		t.printHelp()
	case "login", "register":
		t.handleAuth(ctx, cmd, args)
	case "mode":
		t.svc.Auth.ToggleMode()
	case "nav":
		t.handleNav(args)
	case "log":
		t.handleLog(ctx, args)
	case "subscribe":
		t.handleSubscribe(ctx, args)
	case "logout":
		t.handleLogout()
	case "whoami":
		t.handleWhoami()
	default:
		fmt.Fprintf(t.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func requestContext(ctx context.Context) context.Context {
	return ctxutil.WithRequestID(ctx, uuid.New().String())
}

func (t *Term) handleAuth(ctx context.Context, cmd string, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(t.out, "usage: %s <email> <password>\n", cmd)
		return
	}

	// The explicit command wins over the form's toggle state.
	want := auth.ModeLogin
	if cmd == "register" {
		want = auth.ModeRegister
	}
	if t.svc.Auth.Mode() != want {
		t.svc.Auth.ToggleMode()
	}

	err := t.svc.Auth.Submit(ctx, auth.CredentialsInput{Email: args[0], Password: args[1]})
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			fmt.Fprintln(t.out, msg)
		}
		// API failures render through the form's error slot.
	}
}

func validationMessage(err error) (string, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		return verr.Errors[0].Message, true
	}
	return "", false
}

func (t *Term) handleNav(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(t.out, "usage: nav <landing|dashboard|tracking|analytics|settings>")
		return
	}
	v, err := view.ParseView(args[0])
	if err != nil {
		fmt.Fprintf(t.out, "unknown view %q\n", args[0])
		return
	}
	t.svc.Router.Navigate(v)
}

func (t *Term) handleLog(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintln(t.out, "usage: log <start-date> <end-date|-> <light|medium|heavy>")
		return
	}
	end := args[1]
	if end == "-" {
		end = ""
	}

	input := tracking.CycleInput{StartDate: args[0], EndDate: end, Flow: args[2]}
	if err := t.svc.Tracking.Submit(ctx, input); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			fmt.Fprintln(t.out, "sign in first")
		case errors.Is(err, domain.ErrValidation):
			if msg, ok := validationMessage(err); ok {
				fmt.Fprintln(t.out, msg)
			}
		case errors.Is(err, domain.ErrBusy):
			fmt.Fprintln(t.out, "still saving, hold on")
		}
		// API failures render through the form's status line.
	}
}

func (t *Term) handleSubscribe(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(t.out, "usage: subscribe <premium|enterprise>")
		return
	}

	url, err := t.svc.Settings.Subscribe(ctx, settings.Plan(args[0]))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			fmt.Fprintln(t.out, "sign in first")
		case errors.Is(err, domain.ErrValidation):
			fmt.Fprintf(t.out, "unknown plan %q\n", args[0])
		case errors.Is(err, domain.ErrBusy):
			fmt.Fprintln(t.out, "checkout already in progress")
		default:
			fmt.Fprintf(t.out, "checkout failed: %s\n", err)
		}
		return
	}
	if url == "" {
		fmt.Fprintln(t.out, "Subscription updated.")
		return
	}
	fmt.Fprintf(t.out, "Open to complete checkout: %s\n", url)
}

func (t *Term) handleLogout() {
	if err := t.svc.Sessions.Clear(); err != nil {
		var perr *session.PersistenceError
		if errors.As(err, &perr) {
			fmt.Fprintln(t.out, "signed out, but the stored session could not be removed")
			return
		}
	}
	fmt.Fprintln(t.out, "Signed out.")
}

func (t *Term) handleWhoami() {
	sess := t.svc.Sessions.Current()
	if !sess.Present() {
		fmt.Fprintln(t.out, "not signed in")
		return
	}
	fmt.Fprintf(t.out, "%s (%s)\n", sess.User.Email, sess.User.ID)
	if exp, ok := t.svc.Sessions.AccessExpiry(); ok {
		fmt.Fprintf(t.out, "access token expires %s\n", exp.Format("2006-01-02 15:04:05 MST"))
	}
}

// afterCommand runs view lifecycle work that depends on where the router
// ended up, then remembers the view for the next transition check.
func (t *Term) afterCommand(ctx context.Context) {
	cur := t.svc.Router.Current()
	if cur == view.ViewDashboard && t.lastView != view.ViewDashboard {
		t.svc.Dashboard.Activate(ctx)
	}
	t.lastView = cur
}

func (t *Term) prompt() {
	fmt.Fprintf(t.out, "[%s] > ", t.svc.Router.Current())
}

func (t *Term) printHelp() {
	fmt.Fprint(t.out, `commands:
  login <email> <password>      sign in
  register <email> <password>   create an account
  mode                          toggle the auth form between login and register
  nav <view>                    go to landing, dashboard, tracking, analytics or settings
  log <start> <end|-> <flow>    log a cycle, "-" leaves the cycle open
  subscribe <premium|enterprise>
  logout
  whoami
  quit
`)
}
