package cmd

import (
	"fmt"

	"github.com/JPM1118/sheetcut/internal/report"
	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/JPM1118/sheetcut/internal/slicer"
	"github.com/JPM1118/sheetcut/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick [image]",
	Short: "Choose the grid interactively, then extract",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPick,
}

func init() {
	pickCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of sprites to save (overrides config)")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	rep := report.New(cmd.OutOrStdout())

	codec := &sheet.FileCodec{}
	s, err := loadSheet(rep, codec, candidates(args, cfg.Smart.Inputs))
	if err != nil {
		rep.Failure(err)
		return nil
	}

	scores, best := cfg.Selector().Table(s.Width(), s.Height())
	th := cfg.Thresholds()
	counts := make(map[slicer.Grid]int)
	preview := func(g slicer.Grid) int {
		if n, ok := counts[g]; ok {
			return n
		}
		n := len(slicer.ContentCells(s, g, th))
		counts[g] = n
		return n
	}

	title := fmt.Sprintf("%s  %s  %s", s.Path, s.Size(), s.Layout)
	model := tui.NewPicker(title, scores, best, tui.WithPreview(preview))
	program := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}

	m, ok := finalModel.(tui.Picker)
	if !ok {
		return nil
	}
	g, chosen := m.Choice()
	if !chosen {
		rep.Muted("No grid chosen; nothing extracted.")
		return nil
	}

	dir := outputDir(cfg.Smart.OutputDir)
	want := smartLimit()
	res, err := newExtractor(codec, rep, dir, want).ExtractSmart(cmd.Context(), s, g)
	return finish(rep, res, err, want, dir)
}
