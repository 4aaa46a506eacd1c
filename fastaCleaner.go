package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/color"
)

const cleanedSuffix = ".clean"

// CleanStats counts what happened to the records of one CleanFasta pass.
type CleanStats struct {
	Records int64 // header lines seen
	Written int64
	Empty   int64 // discarded by a blank line
	Dropped int64 // header without any sequence line, discarded silently
}

// Print writes the run summary in the same layout as the other commands.
func (s CleanStats) Print(duration time.Duration) {
	fmt.Printf("\nTotal records: %s\n", Comma(s.Records))
	fmt.Printf("Written records: %s\n", Comma(s.Written))
	color.HiMagenta("\nEmpty sequence count: %s\n", Comma(s.Empty))
	color.HiMagenta("Header only count: %s\n", Comma(s.Dropped))
	fmt.Printf("\nApplication execution time: %s\n", duration)
}

// CleanedFastaPath returns the default output path for a cleaned FASTA file.
func CleanedFastaPath(inputFile string) string {
	return inputFile + cleanedSuffix
}

// fastaCleaner holds the record being accumulated between lines.
type fastaCleaner struct {
	w       *bufio.Writer
	onEmpty func(header string)

	header    string
	fragments []string
	stats     CleanStats
}

// flush writes the pending record if it has both a header and a sequence.
// The pending state is not reset here.
func (c *fastaCleaner) flush() error {
	if len(c.fragments) == 0 {
		return nil
	}
	if c.header == "" {
		// Sequence lines following a blank line have no header to go with.
		return nil
	}
	if _, err := c.w.WriteString(c.header + "\n"); err != nil {
		return err
	}
	if _, err := c.w.WriteString(strings.Join(c.fragments, "") + "\n"); err != nil {
		return err
	}
	c.stats.Written++
	return nil
}

func (c *fastaCleaner) line(line string) error {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	switch {
	case strings.HasPrefix(line, ">"):
		if len(c.fragments) > 0 {
			if err := c.flush(); err != nil {
				return err
			}
		} else if c.header != "" {
			c.stats.Dropped++
		}
		c.fragments = c.fragments[:0]
		c.header = line
		c.stats.Records++
	case line == "":
		c.stats.Empty++
		if c.onEmpty != nil {
			c.onEmpty(strings.ReplaceAll(c.header, ">", ""))
		}
		c.header = ""
		c.fragments = c.fragments[:0]
	default:
		c.fragments = append(c.fragments, line)
	}
	return nil
}

// CleanFasta copies the FASTA records of r to w, dropping every record whose
// sequence is empty and joining multi-line sequences onto a single line.
//
// A blank line discards the record it appears in, whatever sequence was
// collected before it, and onEmpty is called with that record's header
// without the '>' delimiter. A header directly followed by another header or
// by the end of input is dropped without calling onEmpty. onEmpty may be nil.
func CleanFasta(r io.Reader, w io.Writer, onEmpty func(header string)) (CleanStats, error) {
	c := &fastaCleaner{
		w:       bufio.NewWriter(w),
		onEmpty: onEmpty,
	}

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if lerr := c.line(line); lerr != nil {
				return c.stats, fmt.Errorf("error writing record %q: %w", c.header, lerr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.stats, fmt.Errorf("error reading file: %w", err)
		}
	}

	if c.header != "" && len(c.fragments) > 0 {
		if err := c.flush(); err != nil {
			return c.stats, fmt.Errorf("error writing record %q: %w", c.header, err)
		}
	} else if c.header != "" {
		c.stats.Dropped++
	}

	if err := c.w.Flush(); err != nil {
		return c.stats, fmt.Errorf("error writing file: %w", err)
	}
	return c.stats, nil
}

// CleanFastaFile runs CleanFasta from inputFile to outputFile, reporting each
// discarded empty record on diag as "Sequence <header> is empty".
func CleanFastaFile(inputFile, outputFile string, diag io.Writer) (stats CleanStats, err error) {
	inFile, err := os.Open(inputFile)
	if err != nil {
		return stats, err
	}
	defer inFile.Close()

	outFile, err := createOutputFile(outputFile)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", outputFile, cerr)
		}
	}()

	stats, err = CleanFasta(inFile, outFile, func(header string) {
		fmt.Fprintf(diag, "Sequence %s is empty\n", header)
	})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", inputFile, err)
	}
	return stats, nil
}
