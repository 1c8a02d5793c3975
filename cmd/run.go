package cmd

import (
	"github.com/JPM1118/sheetcut/internal/report"
	"github.com/JPM1118/sheetcut/internal/sheet"
	"github.com/JPM1118/sheetcut/internal/slicer"
)

// candidates returns the explicit image argument, or the configured list.
func candidates(args []string, configured []string) []string {
	if len(args) == 1 {
		return args[:1]
	}
	return configured
}

func outputDir(configured string) string {
	if outDir != "" {
		return outDir
	}
	return configured
}

func smartLimit() int {
	if limit > 0 {
		return limit
	}
	return cfg.Smart.Limit
}

// loadSheet probes for the first existing input and decodes it.
func loadSheet(rep *report.Reporter, codec sheet.Codec, names []string) (*sheet.Sheet, error) {
	path, err := sheet.FindInput(names)
	if err != nil {
		return nil, err
	}
	rep.Found(path)

	s, err := codec.Load(path)
	if err != nil {
		return nil, err
	}
	rep.SheetLoaded(s)
	return s, nil
}

func newExtractor(codec sheet.Codec, rep *report.Reporter, dir string, n int) *slicer.Extractor {
	ex := slicer.NewExtractor(codec, dir)
	ex.Prefix = cfg.Output.Prefix
	ex.Thresholds = cfg.Thresholds()
	ex.Limit = n
	ex.Listener = rep
	return ex
}

// finish reports the outcome of an extraction. Failures are printed, not
// returned: the process exits 0 and the summary carries the verdict.
func finish(rep *report.Reporter, res slicer.Result, err error, expected int, dir string) error {
	if err != nil {
		rep.Failure(err)
	}
	rep.Summary(res, expected, dir)
	return nil
}
