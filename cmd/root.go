package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocms",
	Short: "OCMS bioinformatics convenience toolkit",
	Long: `Convenience scripts and pipeline wrappers for the OCMS group on the BMRC cluster:

1.	relink: symlink raw sequencing files under clean sample IDs
2.	new-project: scaffold the standard project directory layout
3.	countlines: count lines or sequences in files
4.	fastqc: FastQC + MultiQC over a batch of read files
5.	subsample: subsample read files with seqtk
6.	sra: download accessions from an ENA script
7.	zstd: recompress .gz files with zstd
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "pipeline.yml", "path to pipeline config file")
}
