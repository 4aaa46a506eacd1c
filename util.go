package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Comma formats value with a comma between each group of three digits.
func Comma(value int64) string {
	str := strconv.FormatInt(value, 10)
	sign := ""
	if value < 0 {
		sign, str = "-", str[1:]
	}
	result := ""
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(str[i]) + result
		count++
	}
	return sign + result
}

// SampleName returns the file name of path up to its first dot.
func SampleName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

func createOutputFile(outputFile string) (*os.File, error) {
	return os.Create(outputFile)
}
