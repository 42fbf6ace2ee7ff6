package cli

import (
	"github.com/spf13/cobra"

	"todoboard/pkg/commands"
	"todoboard/pkg/database"
	"todoboard/pkg/server"
)

func newListCmd(app *App) *cobra.Command {
	var opts commands.ListOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos one page at a time",
		Args:    wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.DoneOnly && opts.PendingOnly {
				return usage("--done and --pending are mutually exclusive")
			}
			if opts.Page < 1 {
				return usage("--page must be at least 1")
			}
			if opts.Sort != "" && opts.Sort != "asc" && opts.Sort != "desc" {
				return usage("--sort must be asc or desc")
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleList(cmd.Context(), client, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DoneOnly, "done", false, "Only completed todos")
	cmd.Flags().BoolVar(&opts.PendingOnly, "pending", false, "Only open todos")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Case-insensitive name filter")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort by name (asc, desc)")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page to show, 1-based")
	cmd.Flags().BoolVar(&opts.NoChart, "no-chart", false, "Skip the status chart")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo",
		Args:  wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleShow(cmd.Context(), client, cmd.OutOrStdout(), args[0])
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a todo",
		Args:  wrapArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleAddTodo(cmd.Context(), client, cmd.OutOrStdout(), args)
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo as completed",
		Args:  wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleComplete(cmd.Context(), client, cmd.OutOrStdout(), args[0])
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleDelete(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newPurgeCmd(app *App) *cobra.Command {
	var opts commands.PurgeOptions
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete many todos at once",
		Args:  wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.DoneOnly && opts.PendingOnly {
				return usage("--done and --pending are mutually exclusive")
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandlePurge(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DoneOnly, "done", false, "Only completed todos")
	cmd.Flags().BoolVar(&opts.PendingOnly, "pending", false, "Only open todos")
	cmd.Flags().BoolVarP(&opts.SkipConfirm, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var exportType string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export todos to a json or txt file",
		Args:  wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportType != "json" && exportType != "txt" {
				return usage("--type must be json or txt")
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleExport(cmd.Context(), client, cmd.OutOrStdout(), args[0], exportType)
		},
	}
	cmd.Flags().StringVar(&exportType, "type", "json", "Export file type (json, txt)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import todos from a json export or a txt list",
		Args:  wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			return commands.HandleImport(cmd.Context(), client, cmd.OutOrStdout(), args[0])
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local todo service",
		Args:  wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := database.Open(app.Config.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(store, server.WithToken(app.Config.Token))
			return srv.ListenAndServe(cmd.Context(), app.Config.Addr)
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on")
	cmd.Flags().String("database", "", "Database DSN: sqlite path, sqlite://path or postgres://...")
	_ = app.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = app.v.BindPFlag("database", cmd.Flags().Lookup("database"))
	return cmd
}
