package cmd

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/pipelines"
	"github.com/OxfordCMS/ocmstoolkit/utils"
)

var subsampleCmd = &cobra.Command{
	Use:   "subsample",
	Short: "Subsample read files to a fixed depth with seqtk",
	Long: `Subsamples every fastq file in the configured input directory to the
depth set in pipeline.yml, writing *_subsampled files into subsampled.dir.
Paired-end files keep matching read pairs because all files of a run share
one seqtk seed.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Checking dependencies ...\n\n")
		if err := utils.CheckDeps("seqtk", "gzip"); err != nil {
			log.Fatalf("Dependency check failed: %v", err)
		}
		fmt.Printf("Dependencies OK\n\n")

		plotFile, err := cmd.Flags().GetString("plot")
		if err != nil {
			log.Fatalf("Error getting plot flag: %v", err)
		}
		maxTasks, err := cmd.Flags().GetInt("maxtasks")
		if err != nil {
			log.Fatalf("Error getting maxtasks flag: %v", err)
		}

		cfg, err := utils.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("subsample failed: %v", err)
		}

		logFile, err := initRunLog("subsample.log")
		if err != nil {
			log.Fatalf("subsample failed: %v", err)
		}
		defer logFile.Close()

		wf, seed, err := pipelines.Subsample(cfg, maxTasks)
		if err != nil {
			log.Fatalf("subsample failed: %v", err)
		}
		slog.Info("SUBSAMPLE", "INPUT", cfg.InputDir, "DEPTH", cfg.Depth, "SEED", seed, "STATUS", "STARTED")
		runWorkflow(wf, plotFile)
		slog.Info("SUBSAMPLE", "INPUT", cfg.InputDir, "DEPTH", cfg.Depth, "SEED", seed, "STATUS", "COMPLETED")
	},
}

func init() {
	rootCmd.AddCommand(subsampleCmd)

	subsampleCmd.Flags().String("plot", "", "write the workflow graph to this dot file and exit")
	subsampleCmd.Flags().Int("maxtasks", 4, "max number of tasks to run concurrently")
}
