package cmd

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/pipelines"
	"github.com/OxfordCMS/ocmstoolkit/utils"
)

var sraCmd = &cobra.Command{
	Use:   "sra",
	Short: "Download sequence accessions from an ENA script",
	Long: `Parses the download script the ENA browser generates for a bioproject and
fetches each accession into its own subdirectory. Every download is md5summed
and verified under check_sums/; downloads that fail their check are listed in
failed_check_sums.txt. Downloads need internet access, so run this on a login
node rather than a compute node.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Checking dependencies ...\n\n")
		if err := utils.CheckDeps("wget", "md5sum"); err != nil {
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
		script, err := cmd.Flags().GetString("ena-script")
		if err != nil {
			log.Fatalf("Error getting ena-script flag: %v", err)
		}

		cfg, err := utils.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("sra failed: %v", err)
		}
		if script == "" {
			script = cfg.ENAScript
		}
		if script == "" {
			log.Fatalf("sra failed: no ENA script given, set --ena-script or ena_script in pipeline.yml")
		}

		logFile, err := initRunLog("sra_download.log")
		if err != nil {
			log.Fatalf("sra failed: %v", err)
		}
		defer logFile.Close()

		wf, err := pipelines.SRA(script, maxTasks)
		if err != nil {
			log.Fatalf("sra failed: %v", err)
		}
		slog.Info("SRA", "SCRIPT", script, "STATUS", "STARTED")
		runWorkflow(wf, plotFile)
		if plotFile == "" {
			if err := utils.RunBashCmdVerbose("cat check_sums/*.check.out > check_sums/report.txt"); err != nil {
				log.Fatalf("sra failed: %v", err)
			}
			failed, err := pipelines.WriteFailedChecksums("check_sums/report.txt", "failed_check_sums.txt")
			if err != nil {
				log.Fatalf("sra failed: %v", err)
			}
			if len(failed) > 0 {
				slog.Info("SRA", "SCRIPT", script, "FAILED_CHECKS", len(failed), "STATUS", "FAILED")
				log.Fatalf("sra: %d downloads failed their md5 check, see failed_check_sums.txt", len(failed))
			}
		}
		slog.Info("SRA", "SCRIPT", script, "STATUS", "COMPLETED")
	},
}

func init() {
	rootCmd.AddCommand(sraCmd)

	sraCmd.Flags().String("ena-script", "", "path to the ENA-generated download script")
	sraCmd.Flags().String("plot", "", "write the workflow graph to this dot file and exit")
	sraCmd.Flags().Int("maxtasks", 4, "max number of tasks to run concurrently")
}
