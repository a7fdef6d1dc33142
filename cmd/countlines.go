package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/countlines"
)

var countlinesCmd = &cobra.Command{
	Use:   "countlines [file]",
	Short: "Count lines or sequences in a file",
	Long: `Counts the number of lines, fasta records or fastq records in a file,
reading stdin when no file is given. Gzipped input is decompressed on the fly.

Examples:

  ocms countlines sample1.fastq.1.gz -t fastq
  ocms countlines example.tsv
  zcat example.tsv.gz | ocms countlines -t lines -f example`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kindStr, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("Error getting type flag: %v", err)
		}
		fname, err := cmd.Flags().GetString("fname")
		if err != nil {
			log.Fatalf("Error getting fname flag: %v", err)
		}
		outfile, err := cmd.Flags().GetString("outfile")
		if err != nil {
			log.Fatalf("Error getting outfile flag: %v", err)
		}

		kind, err := countlines.ParseKind(kindStr)
		if err != nil {
			log.Fatalf("countlines failed: %v", err)
		}

		var n int64
		if len(args) == 1 {
			if fname == "" {
				fname = args[0]
			}
			n, err = countlines.CountFile(args[0], kind)
		} else {
			n, err = countlines.Count(os.Stdin, kind)
		}
		if err != nil {
			log.Fatalf("countlines failed: %v", err)
		}

		fmt.Printf("%d\n", n)
		if outfile != "" {
			record := fmt.Sprintf("%s\t%d\n", fname, n)
			if fname == "" {
				record = fmt.Sprintf("%d\n", n)
			}
			if err := os.WriteFile(outfile, []byte(record), 0644); err != nil {
				log.Fatalf("countlines failed: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(countlinesCmd)

	countlinesCmd.Flags().StringP("type", "t", string(countlines.Lines),
		"type of counting: 'lines' to count lines, 'fastq' to count fastq sequences, 'fasta' to count fasta sequences")
	countlinesCmd.Flags().StringP("fname", "f", "", "name of the file being counted, for logging only")
	countlinesCmd.Flags().StringP("outfile", "O", "", "optional output file recording fname and count tab-separated")
}
