package main

import (
	"fmt"
	"os"

	"github.com/marcus/scratchpad/internal/config"
	"github.com/marcus/scratchpad/internal/launcher"
	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

func addRun(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Start a .sh, .command, .bat or .cmd script without waiting for it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			if !launcher.Runnable(path) {
				return fmt.Errorf("unsupported file %s (want %s)", path, launcher.Pattern)
			}

			e, err := openEnv(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := launcher.New(e.logger).Run(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %s\n", path)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addConfig(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			path := opts.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	})

	force := false
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file (--config, or the default path).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if err := config.SaveTo(path, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file.")
	cmd.AddCommand(initCmd)

	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get scratchpad version.",
		Example: `
scratchpad version
scratchpad version -s
`,
		Run: func(cmd *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, effectiveVersion(Version), Commit, Date, output)
			fmt.Fprint(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
