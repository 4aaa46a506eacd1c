package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// DefaultHeaderLine is the zero-based line holding the column names in a
// read length table; the lines above it are a free-form preamble.
const DefaultHeaderLine = 9

const lengthDistSuffix = "length_dist.png"

var (
	errInputNotDir  = errors.New("Please select an input folder as first argument")
	errOutputNotDir = errors.New("Please select an output folder as second argument")
)

// LengthCount is one row of a read length table.
type LengthCount struct {
	Length string
	Reads  float64
}

// ReadLengthTable parses a tab separated read length table. The first
// headerLine lines are skipped, the next one names the columns, and only the
// first two columns (length, read count) of each following row are used.
func ReadLengthTable(r io.Reader, headerLine int) ([]LengthCount, error) {
	br := bufio.NewReader(r)
	for i := 0; i < headerLine; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("table ends before header line %d", headerLine)
			}
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table ends before header line %d", headerLine)
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header line %d: expected at least 2 columns, got %d", headerLine, len(header))
	}

	var counts []LengthCount
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d: expected at least 2 columns, got %d", row, len(rec))
		}
		reads, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid read count %q", row, rec[1])
		}
		counts = append(counts, LengthCount{
			Length: strings.TrimSpace(rec[0]),
			Reads:  reads,
		})
	}
	if len(counts) == 0 {
		return nil, errors.New("table has no rows")
	}
	return counts, nil
}

// PlotLengthDistribution draws counts as a bar chart, one bar per length, and
// saves it to outputFile. The image format follows the file extension.
func PlotLengthDistribution(counts []LengthCount, title, outputFile string) error {
	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = c.Reads
		labels[i] = c.Length
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "#Length"
	p.Y.Label.Text = "reads"

	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.Font.Size = vg.Points(6)

	width := vg.Length(len(counts)) * vg.Points(10)
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}
	return p.Save(width, 4*vg.Inch, outputFile)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func plotLengthTable(tableFile, outputFile string, headerLine int) error {
	f, err := os.Open(tableFile)
	if err != nil {
		return err
	}
	defer f.Close()

	counts, err := ReadLengthTable(f, headerLine)
	if err != nil {
		return fmt.Errorf("%s: %w", tableFile, err)
	}
	if err := PlotLengthDistribution(counts, SampleName(tableFile), outputFile); err != nil {
		return fmt.Errorf("%s: %w", outputFile, err)
	}
	return nil
}

// PlotLengthDistributions plots every *.tsv table of inputDir into outputDir
// as <sample>length_dist.png and returns the files written.
func PlotLengthDistributions(inputDir, outputDir string, headerLine int) ([]string, error) {
	if !isDir(inputDir) {
		return nil, errInputNotDir
	}
	if !isDir(outputDir) {
		return nil, errOutputNotDir
	}

	tables, err := filepath.Glob(filepath.Join(inputDir, "*.tsv"))
	if err != nil {
		return nil, err
	}

	var written []string
	for _, table := range tables {
		outputFile := filepath.Join(outputDir, SampleName(table)+lengthDistSuffix)
		logger.Info("plotting length distribution", "table", table)
		if err := plotLengthTable(table, outputFile, headerLine); err != nil {
			return written, err
		}
		written = append(written, outputFile)
	}
	return written, nil
}
