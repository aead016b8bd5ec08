package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/marcus/scratchpad/internal/app"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/spf13/cobra"
)

func addStats(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print note counts and storage usage.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.stats().Recompute()
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("CATEGORY"), bold.Sprint("NOTES"))
			for _, c := range notes.FixedCategories {
				tbl.AddRow(c.String(), s.Counts[c])
			}
			tbl.AddRow("Total", s.Total())
			tbl.AddRow("Sticky", s.StickyCount)
			tbl.AddRow("Tasks completed", s.TasksCompleted)
			tbl.AddRow("Storage used", humanize.Bytes(uint64(max(s.UsedBytes, 0))))
			if s.CapacityBytes > 0 {
				tbl.AddRow("Usage", fmt.Sprintf("%d%% of %s", s.UsagePercent, humanize.Bytes(uint64(s.CapacityBytes))))
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "List the notes in a category.",
		Example: `
scratchpad list contacts
scratchpad list sticky
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := notes.ParseCategory(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			items, err := e.notes.List(category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "No %s notes.\n", category)
				return nil
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TITLE"))
			for _, n := range items {
				tbl.AddRow(n.ID, n.Title)
			}
			fmt.Fprintln(out, tbl)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "add <category> [text...]",
		Short: "Add a note. Without text, the note is read from stdin.",
		Example: `
scratchpad add contacts "Ada Lovelace" ada@example.com
pbpaste | scratchpad add copilot
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := notes.ParseCategory(args[0])
			if err != nil {
				return err
			}

			content := strings.Join(args[1:], " ")
			if content == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = strings.TrimRight(string(data), "\n")
			}

			e, err := openEnv(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := e.notes.AddNote(category, content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addSticky(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "sticky [id]",
		Short: "Open only sticky note windows. Without an id a new note is created.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			appOpts := app.Options{StickyOnly: true}
			if len(args) == 1 {
				appOpts.OpenStickies = []string{args[0]}
			}
			return runTUI(opts, appOpts)
		},
	}
	topLevel.AddCommand(cmd)
}
