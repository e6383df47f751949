package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bryanchriswhite/i3windows/internal/output"
	"github.com/bryanchriswhite/i3windows/internal/render"
	"github.com/bryanchriswhite/i3windows/internal/window"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [group]",
	Short: "Show the windows the bar would display",
	Long: `Run a single render pass against the running i3 instance and print
the result, without subscribing to events.

The markup format prints exactly the line the bar would receive.`,
	Example: `  # Windows in bar order as a table (default)
  i3windows list

  # The raw lemonbar line for group 1
  i3windows list 1 --format markup

  # JSON for scripting
  i3windows list --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json or markup)")
}

func runList(cmd *cobra.Command, args []string) error {
	group, err := parseGroup(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := window.NewI3Backend().Snapshot(context.Background())
	if err != nil {
		return fmt.Errorf("failed to query i3: %w", err)
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "markup":
		renderer, err := render.NewFromConfig(cfg, currentPlaceholders())
		if err != nil {
			return err
		}
		line, err := renderer.Render(snap, group)
		if err != nil {
			return err
		}
		return output.NewLineWriter(out, "stdout").WriteLine(line)
	case "json", "table":
		windows, err := render.Select(snap, group)
		if err != nil {
			return err
		}
		if listFormat == "json" {
			return printWindowsJSON(out, windows)
		}
		return printWindowsTable(out, windows)
	default:
		return fmt.Errorf("unsupported format: %s (use 'table', 'json' or 'markup')", listFormat)
	}
}

func printWindowsJSON(w io.Writer, windows []window.Window) error {
	if windows == nil {
		windows = []window.Window{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(windows)
}

func printWindowsTable(out io.Writer, windows []window.Window) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "WORKSPACE\tID\tCLASS\tSTATE\tTITLE")
	fmt.Fprintln(w, "---------\t--\t-----\t-----\t-----")

	for _, win := range windows {
		state := "-"
		switch {
		case win.Focused:
			state = "focused"
		case win.Urgent:
			state = "urgent"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", win.Workspace, win.ID, win.Class, state, win.Title)
	}

	return w.Flush()
}
