package cmd

import (
	"github.com/JPM1118/sheetcut/internal/report"
	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/spf13/cobra"
)

var smartCmd = &cobra.Command{
	Use:   "smart [image]",
	Short: "Detect the grid and save only cells with content",
	Long: `Score each candidate grid by min(cell width, cell height), use the best
one whose cells exceed min_cell on both axes, and save every cell that is
not background. Transparent sheets are tested by alpha, opaque sheets by
distance from the background colour.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSmart,
}

func init() {
	smartCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of sprites to save (overrides config)")
	rootCmd.AddCommand(smartCmd)
}

func runSmart(cmd *cobra.Command, args []string) error {
	rep := report.New(cmd.OutOrStdout())
	rep.Banner("Smart Sprite Extractor")

	codec := &sheet.FileCodec{}
	s, err := loadSheet(rep, codec, candidates(args, cfg.Smart.Inputs))
	if err != nil {
		rep.Failure(err)
		return nil
	}

	g := cfg.Selector().Select(s.Width(), s.Height())
	dir := outputDir(cfg.Smart.OutputDir)
	want := smartLimit()
	res, err := newExtractor(codec, rep, dir, want).ExtractSmart(cmd.Context(), s, g)
	return finish(rep, res, err, want, dir)
}
