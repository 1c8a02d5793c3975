package cmd

import (
	"github.com/JPM1118/sheetcut/internal/report"
	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid [image]",
	Short: "Crop a fixed layout whose last row holds centred sprites",
	Long: `Crop every cell of the configured layout (8x4 by default) without
checking for content. The last row holds only the configured number of
sprites (2 by default), centred horizontally.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	rep := report.New(cmd.OutOrStdout())
	rep.Banner("Grid Sprite Extractor")

	codec := &sheet.FileCodec{}
	s, err := loadSheet(rep, codec, candidates(args, cfg.Grid.Inputs))
	if err != nil {
		rep.Failure(err)
		return nil
	}

	dir := outputDir(cfg.Grid.OutputDir)
	layout := cfg.FixedLayout()
	res, err := newExtractor(codec, rep, dir, 0).ExtractFixed(cmd.Context(), s, layout)
	return finish(rep, res, err, layout.Len(), dir)
}
