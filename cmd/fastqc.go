package cmd

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/pipelines"
	"github.com/OxfordCMS/ocmstoolkit/utils"
)

var fastqcCmd = &cobra.Command{
	Use:   "fastqc",
	Short: "Run FastQC and MultiQC over a batch of read files",
	Long: `Runs FastQC on every fastq file in the configured input directory and
merges the reports with MultiQC into multiqc/multiqc_report.html. Completed
files are tracked, so an interrupted run picks up where it stopped.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Checking dependencies ...\n\n")
		if err := utils.CheckDeps("fastqc", "multiqc"); err != nil {
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
			log.Fatalf("fastqc failed: %v", err)
		}

		logFile, err := initRunLog("fastqc.log")
		if err != nil {
			log.Fatalf("fastqc failed: %v", err)
		}
		defer logFile.Close()

		wf, err := pipelines.FastQC(cfg.InputDir, maxTasks)
		if err != nil {
			log.Fatalf("fastqc failed: %v", err)
		}
		slog.Info("FASTQC", "INPUT", cfg.InputDir, "STATUS", "STARTED")
		runWorkflow(wf, plotFile)
		slog.Info("FASTQC", "INPUT", cfg.InputDir, "STATUS", "COMPLETED")
	},
}

func init() {
	rootCmd.AddCommand(fastqcCmd)

	fastqcCmd.Flags().String("plot", "", "write the workflow graph to this dot file and exit")
	fastqcCmd.Flags().Int("maxtasks", 4, "max number of tasks to run concurrently")
}
