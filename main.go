package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "metagenomics",
})

var rootCmd = &cobra.Command{
	Use:           "metagenomics",
	Short:         "Preprocessing helpers for metagenomics read and contig files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove FASTA entries with an empty sequence",
	Long: `Remove FASTA entries with an empty sequence.

Sequences are written on a single line. A blank line discards the record
it appears in and is reported on stderr. Output defaults to <input>.clean.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input")
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			outputFile = CleanedFastaPath(inputFile)
		}

		startTime := time.Now()
		logger.Debug("cleaning fasta", "input", inputFile, "output", outputFile)
		stats, err := CleanFastaFile(inputFile, outputFile, os.Stderr)
		if err != nil {
			return err
		}
		stats.Print(time.Since(startTime))
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Prefix gzipped FASTQ read headers with the sample name",
	Long: `Prefix gzipped FASTQ read headers with the sample name.

The sample name is the input file name up to its first dot. Output
defaults to <input>.renamed and is gzip compressed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input")
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			outputFile = RenamedFastqPath(inputFile)
		}

		startTime := time.Now()
		logger.Debug("renaming fastq headers", "input", inputFile, "output", outputFile, "sample", SampleName(inputFile))
		total, err := RenameFastqFile(inputFile, outputFile)
		if err != nil {
			return err
		}
		fmt.Printf("\nRenamed reads: %s\n", Comma(total))
		fmt.Printf("\nApplication execution time: %s\n", time.Since(startTime))
		return nil
	},
}

var lengthDistCmd = &cobra.Command{
	Use:   "lengthdist <input_dir> <output_dir>",
	Short: "Plot read length distributions from TSV summary tables",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		headerLine, _ := cmd.Flags().GetInt("header-line")

		written, err := PlotLengthDistributions(args[0], args[1], headerLine)
		if err != nil {
			return err
		}
		for _, f := range written {
			logger.Debug("wrote plot", "file", f)
		}
		color.HiGreen("\nPlots written: %s\n", Comma(int64(len(written))))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cleanCmd.Flags().StringP("input", "i", "", "Input FASTA file (required)")
	cleanCmd.Flags().StringP("output", "o", "", "Output file (default <input>.clean)")
	cleanCmd.MarkFlagRequired("input")

	renameCmd.Flags().StringP("input", "i", "", "Input gzipped FASTQ file (required)")
	renameCmd.Flags().StringP("output", "o", "", "Output file (default <input>.renamed)")
	renameCmd.MarkFlagRequired("input")

	lengthDistCmd.Flags().Int("header-line", DefaultHeaderLine, "Zero-based line number of the column header in each table")

	rootCmd.AddCommand(cleanCmd, renameCmd, lengthDistCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Error processing input", "err", err)
	}
}
