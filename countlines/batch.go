package countlines

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// FileCount is the count for one file in a batch run.
type FileCount struct {
	File  string
	Count int64
}

// CountDir counts every regular file in dir, at most workers files at a time.
// Each file is independent, so order of execution does not matter; results
// come back sorted by file name.
func CountDir(dir string, kind Kind, workers int) ([]FileCount, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("countlines: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("countlines: no files in %s", dir)
	}
	sort.Strings(names)

	if workers < 1 {
		workers = 1
	}
	results := make([]FileCount, len(names))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			n, err := CountFile(filepath.Join(dir, name), kind)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = FileCount{File: name, Count: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteMerged writes the merged file/count table as tab-separated text with a
// header, sorted by file name.
func WriteMerged(w io.Writer, counts []FileCount) error {
	records := [][]string{{"file", "count"}}
	for _, c := range counts {
		records = append(records, []string{c.File, strconv.FormatInt(c.Count, 10)})
	}
	df := dataframe.LoadRecords(records, dataframe.DetectTypes(false))
	df = df.Arrange(dataframe.Sort("file"))
	if df.Err != nil {
		return fmt.Errorf("countlines: merging counts: %w", df.Err)
	}
	for _, rec := range df.Records() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", rec[0], rec[1]); err != nil {
			return err
		}
	}
	return nil
}

// Summary returns the mean and standard deviation of the counts.
func Summary(counts []FileCount) (mean, stddev float64) {
	xs := make([]float64, len(counts))
	for i, c := range counts {
		xs[i] = float64(c.Count)
	}
	return stat.Mean(xs, nil), stat.StdDev(xs, nil)
}

// Plot renders a bar chart of counts per file to an HTML file.
func Plot(path, title string, counts []FileCount) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "file"}),
	)
	var files []string
	var data []opts.BarData
	for _, c := range counts {
		files = append(files, c.File)
		data = append(data, opts.BarData{Value: c.Count})
	}
	bar.SetXAxis(files).AddSeries("count", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("countlines: %w", err)
	}
	defer f.Close()
	return bar.Render(f)
}
