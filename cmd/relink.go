package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/relink"
)

var relinkCmd = &cobra.Command{
	Use:     "relink",
	Aliases: []string{"rename_and_link"},
	Short:   "Symlink sequencing files under clean sample IDs",
	Long: `Creates renamed symlinks for every file in the input directory that ends
with the given suffix. New names come from a two-column tab-separated mapping
file of sequencer barcode to sample ID. Each applied mapping is recorded in a
read map log inside the output directory.

Example:

  ocms relink -i raw -s .fastq.1.gz -o renamed -m id_mapping.tsv -l read1.map

  # id_mapping.tsv
  long_barcode1	clean_id1
  long_barcode2	clean_id2`,
	Run: func(cmd *cobra.Command, args []string) {
		indir, err := cmd.Flags().GetString("indir")
		if err != nil {
			log.Fatalf("Error getting indir flag: %v", err)
		}
		suffix, err := cmd.Flags().GetString("suffix")
		if err != nil {
			log.Fatalf("Error getting suffix flag: %v", err)
		}
		targetSuffix, err := cmd.Flags().GetString("target-suffix")
		if err != nil {
			log.Fatalf("Error getting target-suffix flag: %v", err)
		}
		outdir, err := cmd.Flags().GetString("outdir")
		if err != nil {
			log.Fatalf("Error getting outdir flag: %v", err)
		}
		mapping, err := cmd.Flags().GetString("mapping")
		if err != nil {
			log.Fatalf("Error getting mapping flag: %v", err)
		}
		logFile, err := cmd.Flags().GetString("log")
		if err != nil {
			log.Fatalf("Error getting log flag: %v", err)
		}
		onCollision, err := cmd.Flags().GetString("on-collision")
		if err != nil {
			log.Fatalf("Error getting on-collision flag: %v", err)
		}

		res, err := relink.Run(relink.Options{
			InDir:        indir,
			Suffix:       suffix,
			TargetSuffix: targetSuffix,
			OutDir:       outdir,
			MappingFile:  mapping,
			LogFile:      logFile,
			OnCollision:  relink.CollisionPolicy(onCollision),
		})
		if res != nil {
			for _, name := range res.Unmatched {
				fmt.Fprintf(os.Stderr, "WARNING: no sample ID for %s in --mapping file, skipped\n", name)
			}
		}
		if err != nil {
			log.Fatalf("relink failed: %v", err)
		}
		fmt.Printf("Linked %d files into %s\n", len(res.Records), outdir)
	},
}

func init() {
	rootCmd.AddCommand(relinkCmd)

	relinkCmd.Flags().StringP("indir", "i", "", "input directory")
	relinkCmd.Flags().StringP("suffix", "s", "", "extension that encompasses all files to be symlinked (i.e. .fastq.1.gz)")
	relinkCmd.Flags().StringP("target-suffix", "t", "", "extension used on the renamed symlinks (defaults to --suffix)")
	relinkCmd.Flags().StringP("outdir", "o", "", "output directory")
	relinkCmd.Flags().StringP("mapping", "m", "", "tab-separated file mapping barcodes to sample IDs")
	relinkCmd.Flags().StringP("log", "l", relink.DefaultLogFile, "name of log file")
	relinkCmd.Flags().String("on-collision", string(relink.CollisionError), "what to do when a link target exists: error, skip or overwrite")

	_ = relinkCmd.MarkFlagRequired("indir")
	_ = relinkCmd.MarkFlagRequired("suffix")
	_ = relinkCmd.MarkFlagRequired("outdir")
	_ = relinkCmd.MarkFlagRequired("mapping")
}
