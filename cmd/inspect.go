package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/JPM1118/sheetcut/internal/report"
	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/JPM1118/sheetcut/internal/slicer"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [image]",
	Short: "Print grid scores and content counts (non-interactive)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		rep := report.New(out)

		s, err := loadSheet(rep, &sheet.FileCodec{}, candidates(args, cfg.Smart.Inputs))
		if err != nil {
			rep.Failure(err)
			return nil
		}

		scores, best := cfg.Selector().Table(s.Width(), s.Height())

		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GRID\tCELL\tSCORE\tSTATUS")
		fmt.Fprintln(w, "────\t────\t─────\t──────")
		for i, sc := range scores {
			status := "too small"
			switch {
			case sc.Fallback:
				status = "fallback"
			case sc.Eligible:
				status = "ok"
			}
			if i == best {
				status += " *"
			}
			fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\n", sc.Grid, sc.CellWidth, sc.CellHeight, sc.Score, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		g := scores[best].Grid
		n := len(slicer.ContentCells(s, g, cfg.Thresholds()))
		fmt.Fprintf(out, "\nChosen grid: %s\n", g)
		fmt.Fprintf(out, "Content-bearing cells: %d of %d\n", n, g.Len())
		if want := smartLimit(); want > 0 && n > want {
			rep.Muted("Only the first %d would be saved.", want)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
