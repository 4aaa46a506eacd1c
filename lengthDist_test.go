package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lengthTable = `#Reads:	1200
#Bases:	180000
#Max:	151
#Min:	100
#Avg:	150.0
#Median:	151
#Mode:	151
#Std_Dev:	2.1
#Read Length Histogram:
#Length	reads	pct_reads	cum_reads
100	10	0.833%	1200
125	190	15.833%	1190
151	1000	83.333%	1000
`

func TestReadLengthTable(t *testing.T) {
	counts, err := ReadLengthTable(strings.NewReader(lengthTable), DefaultHeaderLine)
	require.NoError(t, err)
	assert.Equal(t, []LengthCount{
		{Length: "100", Reads: 10},
		{Length: "125", Reads: 190},
		{Length: "151", Reads: 1000},
	}, counts)
}

func TestReadLengthTableErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		headerLine int
		errText    string
	}{
		{
			name:       "ShortPreamble",
			input:      "#Reads:\t1\n",
			headerLine: DefaultHeaderLine,
			errText:    "table ends before header line 9",
		},
		{
			name:       "NoRows",
			input:      "#Length\treads\n",
			headerLine: 0,
			errText:    "table has no rows",
		},
		{
			name:       "BadCount",
			input:      "#Length\treads\n100\tten\n",
			headerLine: 0,
			errText:    `row 1: invalid read count "ten"`,
		},
		{
			name:       "MissingColumn",
			input:      "#Length\treads\n100\t5\n125\n",
			headerLine: 0,
			errText:    "row 2: expected at least 2 columns, got 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadLengthTable(strings.NewReader(tc.input), tc.headerLine)
			require.Error(t, err)
			assert.Equal(t, tc.errText, err.Error())
		})
	}
}

func TestPlotLengthDistributions(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "S1.readlength.tsv"), []byte(lengthTable), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "S2.tsv"), []byte(lengthTable), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("ignored"), 0o644))

	written, err := PlotLengthDistributions(inputDir, outputDir, DefaultHeaderLine)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outputDir, "S1length_dist.png"),
		filepath.Join(outputDir, "S2length_dist.png"),
	}, written)

	for _, f := range written {
		content, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG")), "%s is not a PNG", f)
	}
}

func TestPlotLengthDistributionsNotDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "table.tsv")
	require.NoError(t, os.WriteFile(file, []byte(lengthTable), 0o644))

	_, err := PlotLengthDistributions(file, dir, DefaultHeaderLine)
	assert.Equal(t, errInputNotDir, err)

	_, err = PlotLengthDistributions(dir, file, DefaultHeaderLine)
	assert.Equal(t, errOutputNotDir, err)
}
