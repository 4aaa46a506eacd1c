package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

const renamedSuffix = ".renamed"

// RenamedFastqPath returns the default output path for a renamed FASTQ file.
func RenamedFastqPath(inputFile string) string {
	return inputFile + renamedSuffix
}

// renameHeader turns "@read1 extra" into "@sample_read1 extra". Every '@' in
// the original header is dropped. Any line ending is kept.
func renameHeader(header, sample string) string {
	return "@" + sample + "_" + strings.ReplaceAll(header, "@", "")
}

// RenameFastqHeaders copies the FASTQ records of r to w, prefixing each read
// header with sample. Sequence, separator and quality lines are copied
// unchanged. It returns the number of headers rewritten.
func RenameFastqHeaders(r io.Reader, w io.Writer, sample string) (int64, error) {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	var totalReads int64
	counter := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			counter++
			if counter == 1 {
				if !strings.HasPrefix(line, "@") {
					return totalReads, fmt.Errorf("invalid fastq file: expected '@' at the beginning of header line, got: %s", strings.TrimRight(line, "\r\n"))
				}
				line = renameHeader(line, sample)
				totalReads++
			}
			if _, werr := writer.WriteString(line); werr != nil {
				return totalReads, fmt.Errorf("error writing file: %w", werr)
			}
			if counter == 4 {
				counter = 0
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return totalReads, fmt.Errorf("error reading file: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return totalReads, fmt.Errorf("error writing file: %w", err)
	}
	return totalReads, nil
}

// RenameFastqFile rewrites the headers of the gzipped FASTQ inputFile into the
// gzipped outputFile, using the input's sample name as prefix.
func RenameFastqFile(inputFile, outputFile string) (total int64, err error) {
	inFile, err := os.Open(inputFile)
	if err != nil {
		return 0, err
	}
	defer inFile.Close()

	gr, err := pgzip.NewReader(inFile)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", inputFile, err)
	}
	defer gr.Close()

	outFile, err := createOutputFile(outputFile)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", outputFile, cerr)
		}
	}()

	gw := pgzip.NewWriter(outFile)
	total, err = RenameFastqHeaders(gr, gw, SampleName(inputFile))
	if err != nil {
		gw.Close()
		return total, fmt.Errorf("%s: %w", inputFile, err)
	}
	if err := gw.Close(); err != nil {
		return total, fmt.Errorf("closing %s: %w", outputFile, err)
	}
	return total, nil
}
