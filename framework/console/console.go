// Package console implements the autowire command line:
//
//	autowire bindings [file] [--format env|toml|yaml]
//	autowire tree <type>
//	autowire graph [--json]
//	autowire serve
//	autowire version
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-autowire/framework/app"
	"github.com/km-arc/go-autowire/framework/bindings"
	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
)

type options struct {
	envFiles  []string
	bindings  string
	providers []container.ServiceProvider
}

// New builds the root command. The given providers are registered after the
// framework providers whenever a command needs a booted application.
func New(providers ...container.ServiceProvider) *cobra.Command {
	opts := &options{providers: providers}

	root := &cobra.Command{
		Use:   "autowire",
		Short: "Auto-wiring dependency container",
		Long: `autowire builds singleton object graphs from registered constructors.

Abstract types are mapped to concrete ones by a binding file
(AUTOWIRE_BINDINGS, default bindings.env; .toml and .yaml are accepted too).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env", nil, "env files to load (default: .env)")
	root.PersistentFlags().StringVar(&opts.bindings, "bindings", "", "binding file (overrides AUTOWIRE_BINDINGS)")

	root.AddCommand(
		bindingsCmd(opts),
		treeCmd(opts),
		graphCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute(providers ...container.ServiceProvider) error {
	return New(providers...).Execute()
}

func (o *options) config() *config.Config {
	cfg := config.Load(o.envFiles...)
	if o.bindings != "" {
		cfg.Container.Bindings = o.bindings
	}
	return cfg
}

// boot creates the application, registers the extra providers and boots it.
func (o *options) boot(ctx context.Context) (*app.Application, error) {
	a, err := app.NewWithConfig(o.config())
	if err != nil {
		return nil, err
	}
	for _, p := range o.providers {
		if err := a.Register(ctx, p); err != nil {
			return nil, err
		}
	}
	if err := a.Boot(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func bindingsCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "bindings [file]",
		Short: "Show the alias table",
		Long: `Loads a binding file and prints abstract → concrete pairs in canonical form.

With --format the table is written in that file format instead, which also
converts between formats.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.config().Container.Bindings
			if len(args) == 1 {
				path = args[0]
			}

			table, err := bindings.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != "" {
				f, err := parseFormat(format)
				if err != nil {
					return err
				}
				data, err := bindings.Encode(table, f)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			if len(table) == 0 {
				fmt.Fprintf(out, "no bindings in %s\n", path)
				return nil
			}
			for _, abstract := range table.Abstracts() {
				fmt.Fprintf(out, "%s → %s\n", abstract, table[abstract])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: env, toml or yaml")
	return cmd
}

func parseFormat(s string) (bindings.Format, error) {
	for _, f := range []bindings.Format{bindings.FormatEnv, bindings.FormatTOML, bindings.FormatYAML} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (want env, toml or yaml)", s)
}

func treeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <type>",
		Short: "Print the dependency tree of a type",
		Long: `Prints the pre-order dependency tree of a type after alias resolution,
one identifier per line. Nothing is constructed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.boot(cmd.Context())
			if err != nil {
				return err
			}
			tree, err := a.Tree(args[0])
			if err != nil {
				return err
			}
			for _, id := range tree {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func graphCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "List every registered type and its dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.boot(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a.Graph())
			}
			a.FprintGraph(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func serveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the container inspector over HTTP",
		Long:  `Boots the application and serves /container on INSPECT_ADDR until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.boot(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()
			return a.Run(ctx)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autowire %s\n", app.Version)
		},
	}
}
