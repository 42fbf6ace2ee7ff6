package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"todoboard/pkg/api"
	"todoboard/pkg/config"
	"todoboard/pkg/ui"
	"todoboard/pkg/utils"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App carries the state shared by every command
type App struct {
	ConfigPath string
	NoColor    bool

	v      *viper.Viper
	Config config.Config
	Styles config.Styles

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// usageError marks errors caused by bad arguments or flags
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// wrapArgs turns a cobra positional-args check into a usage error
func wrapArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// NewRootCmd builds the todoboard command tree
func NewRootCmd(app *App) *cobra.Command {
	if app.v == nil {
		app.v = viper.New()
	}

	cmd := &cobra.Command{
		Use:           "todoboard",
		Short:         "Terminal dashboard and CLI for a remote todo service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          wrapArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  todoboard

  # Scriptable commands
  todoboard ls --pending --sort asc
  todoboard add Buy milk
  todoboard done <id>

  # Run a local service to talk to
  todoboard serve --database ~/.config/todoboard/todos.db`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, styles, err := config.Load(app.v, app.ConfigPath)
		if err != nil {
			return err
		}
		app.Config, app.Styles = cfg, styles
		applyColorProfile(app.NoColor)

		// serve is long running and has no TUI, so it logs to stderr
		if cmd.Name() == "serve" {
			utils.InitConsoleLogger(app.Err, cfg.Verbose)
			return nil
		}
		return utils.InitLogger(cfg.Verbose, cfg.LogFile)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		utils.CloseLogger()
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "Path to configuration file")
	flags.String("api-url", "", "Base URL of the todo service")
	flags.String("token", "", "Bearer token sent with every request")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&app.NoColor, "no-color", false, "Disable colored output")
	_ = app.v.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = app.v.BindPFlag("token", flags.Lookup("token"))
	_ = app.v.BindPFlag("verbose", flags.Lookup("verbose"))

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newPurgeCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// applyColorProfile honors --no-color and NO_COLOR
func applyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// client builds the service client from the loaded configuration
func (app *App) client() (*api.Client, error) {
	return api.NewClient(app.Config.APIURL,
		api.WithTimeout(app.Config.Timeout),
		api.WithToken(app.Config.Token),
	)
}

func runTUI(ctx context.Context, app *App) error {
	client, err := app.client()
	if err != nil {
		return err
	}

	m := ui.NewModel(client, app.Config, app.Styles)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// Execute runs the command line and returns the process exit code
func Execute(args []string) int {
	app := &App{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	return run(app, args)
}

func run(app *App, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetIn(app.In)
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(app.Err, "Error: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return ExitUsage
	}
	return ExitFailure
}
