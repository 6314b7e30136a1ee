package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

const usage = `usage: accountctl <command> [flags]

commands:
  register -email E -password P [-nickname N]   create an account
  login    -email E -password P [-claims]        print a bearer token
  verify   -email E -token T                    confirm an email address
  me                                            show the caller's account
  list     [-skip N] [-limit N]                  list accounts (manager/admin)
  get      <id>                                 show an account (manager/admin)
  unlock   <id>                                 unlock an account (manager/admin)
  delete   <id>                                 delete an account (manager/admin)
  version                                       print the server version
  console                                       interactive operator console

authenticated commands read the token from ACCOUNTCTL_TOKEN or -token.
`

type command func(ctx context.Context, args []string) error

// App is the accountctl runtime.
type App struct {
	adapter adapter.ServerAdapter
	console Console
	out     io.Writer

	commands map[string]command

	logger *logger.Logger
}

// NewApp builds the CLI over serverAdapter. console may be nil, in which case
// the "console" command fails with [ErrNoConsole].
func NewApp(serverAdapter adapter.ServerAdapter, console Console, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		adapter: serverAdapter,
		console: console,
		out:     out,
		logger:  logger,
	}

	a.commands = map[string]command{
		"register": a.register,
		"login":    a.login,
		"verify":   a.verify,
		"me":       a.me,
		"list":     a.list,
		"get":      a.get,
		"unlock":   a.unlock,
		"delete":   a.delete,
		"version":  a.version,
		"console":  a.runConsole,
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("func", "*App.Run").Str("command", args[0]).Msg("running command")
	return cmd(ctx, args[1:])
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parseAuthed parses fs and applies -token, when given, to the adapter.
func (a *App) parseAuthed(fs *flag.FlagSet, args []string) error {
	token := fs.String("token", "", "bearer token (overrides ACCOUNTCTL_TOKEN)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token != "" {
		a.adapter.SetToken(*token)
	}
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	nickname := fs.String("nickname", "", "nickname (generated when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"email": *email, "password": *password}); err != nil {
		return err
	}

	req := models.RegisterRequest{Email: *email, Password: *password}
	if *nickname != "" {
		req.Nickname = nickname
	}

	account, err := a.adapter.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	fmt.Fprintln(a.out, "account created, check your inbox to verify the email address")
	a.printAccount(account)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	showClaims := fs.Bool("claims", false, "also print the role and expiry carried by the token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"email": *email, "password": *password}); err != nil {
		return err
	}

	token, err := a.adapter.Login(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	fmt.Fprintln(a.out, token.AccessToken)
	if !*showClaims {
		return nil
	}

	// the server verifies the signature; here the claims are only displayed
	claims, err := utils.ParseClaimsUnverified(token.AccessToken)
	if err != nil {
		return fmt.Errorf("login: decode token: %w", err)
	}
	fmt.Fprintf(a.out, "role:    %s\n", claims.Role)
	if claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "expires: %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func (a *App) verify(ctx context.Context, args []string) error {
	fs := a.newFlagSet("verify")
	email := fs.String("email", "", "email address")
	token := fs.String("token", "", "verification token from the email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"email": *email, "token": *token}); err != nil {
		return err
	}

	if err := a.adapter.VerifyEmail(ctx, *email, *token); err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	fmt.Fprintln(a.out, "email verified")
	return nil
}

func (a *App) me(ctx context.Context, args []string) error {
	if err := a.parseAuthed(a.newFlagSet("me"), args); err != nil {
		return err
	}

	account, err := a.adapter.Me(ctx)
	if err != nil {
		return fmt.Errorf("me: %w", err)
	}

	a.printAccount(account)
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	skip := fs.Int("skip", 0, "number of accounts to skip")
	limit := fs.Int("limit", 10, "page size")
	if err := a.parseAuthed(fs, args); err != nil {
		return err
	}

	page, err := a.adapter.ListAccounts(ctx, *skip, *limit)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNICKNAME\tROLE\tVERIFIED\tLOCKED")
	for _, item := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%t\n", item.ID, item.Email, item.Nickname, item.Role, item.EmailVerified, item.IsLocked)
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "page %d, %d of %d accounts\n", page.Page, len(page.Items), page.Total)
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	id, err := a.accountIDCommand("get", args)
	if err != nil {
		return err
	}

	account, err := a.adapter.GetAccount(ctx, id)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	a.printAccount(account)
	return nil
}

func (a *App) unlock(ctx context.Context, args []string) error {
	id, err := a.accountIDCommand("unlock", args)
	if err != nil {
		return err
	}

	if err = a.adapter.UnlockAccount(ctx, id); err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	fmt.Fprintf(a.out, "account %s unlocked\n", id)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := a.accountIDCommand("delete", args)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	fmt.Fprintf(a.out, "account %s deleted\n", id)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	fmt.Fprintln(a.out, v)
	return nil
}

func (a *App) runConsole(ctx context.Context, args []string) error {
	if err := a.parseAuthed(a.newFlagSet("console"), args); err != nil {
		return err
	}
	if a.console == nil {
		return ErrNoConsole
	}

	return a.console.Run(ctx)
}

// accountIDCommand parses the flags of a command whose single positional
// argument is an account id.
func (a *App) accountIDCommand(name string, args []string) (uuid.UUID, error) {
	fs := a.newFlagSet(name)
	if err := a.parseAuthed(fs, args); err != nil {
		return uuid.Nil, err
	}
	if fs.NArg() != 1 {
		return uuid.Nil, fmt.Errorf("%w: %s needs exactly one account id", ErrMissingArgument, name)
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidAccountID, err)
	}

	return id, nil
}

func (a *App) printAccount(account models.AccountResponse) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", account.ID)
	fmt.Fprintf(tw, "email:\t%s\n", account.Email)
	fmt.Fprintf(tw, "nickname:\t%s\n", account.Nickname)
	fmt.Fprintf(tw, "name:\t%s\n", strings.TrimSpace(deref(account.FirstName)+" "+deref(account.LastName)))
	fmt.Fprintf(tw, "role:\t%s\n", account.Role)
	fmt.Fprintf(tw, "email verified:\t%t\n", account.EmailVerified)
	fmt.Fprintf(tw, "locked:\t%t\n", account.IsLocked)
	fmt.Fprintf(tw, "created:\t%s\n", account.CreatedAt.Format("2006-01-02 15:04:05"))
	if account.LastLoginAt != nil {
		fmt.Fprintf(tw, "last login:\t%s\n", account.LastLoginAt.Format("2006-01-02 15:04:05"))
	}
	if err := tw.Flush(); err != nil {
		a.logger.Err(err).Str("func", "*App.printAccount").Msg("error writing output")
	}
}

func requireFlags(values map[string]string) error {
	var missing []string
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(missing, ", "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsAuthError reports whether err means the caller must log in again or
// lacks the role for the command.
func IsAuthError(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrForbidden)
}
