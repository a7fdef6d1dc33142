package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/countlines"
	"github.com/OxfordCMS/ocmstoolkit/utils"
)

var countlinesBatchCmd = &cobra.Command{
	Use:   "countlines-batch",
	Short: "Count lines or sequences in every file of a directory",
	Long: `Counts every file in the input directory and merges the results into
countlines.dir/merged_countlines.tsv. With --plot, also renders a bar chart
of the counts to countlines.dir/countlines.html.`,
	Run: func(cmd *cobra.Command, args []string) {
		kindStr, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("Error getting type flag: %v", err)
		}
		plot, err := cmd.Flags().GetBool("plot")
		if err != nil {
			log.Fatalf("Error getting plot flag: %v", err)
		}
		workers, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			log.Fatalf("Error getting jobs flag: %v", err)
		}

		kind, err := countlines.ParseKind(kindStr)
		if err != nil {
			log.Fatalf("countlines-batch failed: %v", err)
		}
		cfg, err := utils.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("countlines-batch failed: %v", err)
		}

		counts, err := countlines.CountDir(cfg.InputDir, kind, workers)
		if err != nil {
			log.Fatalf("countlines-batch failed: %v", err)
		}

		if err := os.MkdirAll("countlines.dir", 0755); err != nil {
			log.Fatalf("countlines-batch failed: %v", err)
		}
		merged, err := os.Create(filepath.Join("countlines.dir", "merged_countlines.tsv"))
		if err != nil {
			log.Fatalf("countlines-batch failed: %v", err)
		}
		defer merged.Close()
		if err := countlines.WriteMerged(merged, counts); err != nil {
			log.Fatalf("countlines-batch failed: %v", err)
		}

		mean, stddev := countlines.Summary(counts)
		slog.Info("COUNTLINES", "FILES", len(counts), "MEAN", mean, "SD", stddev, "STATUS", "COMPLETED")

		if plot {
			html := filepath.Join("countlines.dir", "countlines.html")
			if err := countlines.Plot(html, "Counts per file", counts); err != nil {
				log.Fatalf("countlines-batch failed: %v", err)
			}
			fmt.Printf("Wrote count chart to %s\n", html)
		}
	},
}

func init() {
	rootCmd.AddCommand(countlinesBatchCmd)

	countlinesBatchCmd.Flags().StringP("type", "t", string(countlines.Lines),
		"type of counting: lines, fastq or fasta")
	countlinesBatchCmd.Flags().Bool("plot", false, "render a bar chart of the counts")
	countlinesBatchCmd.Flags().IntP("jobs", "j", 4, "number of files to count concurrently")
}
