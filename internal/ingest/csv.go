// Package ingest reads band rosters, availability schedules, and room
// layouts from plain-text sources (CSV and a minimal HTML table dump) into
// the shapes internal/algorithm expects.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	appErrors "github.com/bandkon/kon/pkg/errors"
)

// Options controls parser leniency. The zero value is the lenient default:
// a malformed row is skipped rather than aborting the whole parse.
type Options struct {
	// StrictMode aborts parsing on the first malformed row instead of
	// skipping it.
	StrictMode bool
}

// ErrMalformedRow identifies a single unparsable input line. Parsers in this
// package skip such lines; with StrictMode set they stop at the first one and
// return an error wrapping the line for which errors.Is(err, ErrMalformedRow)
// holds, matching the collapsed-format parser's convention.
var ErrMalformedRow = appErrors.New(appErrors.CodeMalformedInput, "malformed ingestion row")

func malformedRow(lineNum int, line string, cause error) error {
	return appErrors.Wrap(appErrors.CodeMalformedInput,
		fmt.Sprintf("line %d: %q", lineNum, line), cause)
}

// ParseBandCSV reads `name,member1,member2,...` rows into a band->members
// table. Blank lines and lines starting with "#" are skipped silently.
// Duplicate member names within one band are kept as-is: the spec treats
// them as permitted but meaningless.
func ParseBandCSV(r io.Reader, opts Options) (map[string][]string, error) {
	bands := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		name := fields[0]
		if name == "" {
			err := malformedRow(lineNum, line, fmt.Errorf("missing band name"))
			if opts.StrictMode {
				return nil, err
			}
			continue
		}

		bands[name] = append(bands[name], fields[1:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading band CSV: %w", err)
	}

	return bands, nil
}

// ParseScheduleCSV reads `name,true,false,true,...` rows into a
// band->availability table. Boolean cells also accept "0"/"1" and
// "yes"/"no" (case-insensitive).
func ParseScheduleCSV(r io.Reader, opts Options) (map[string][]bool, error) {
	schedule := make(map[string][]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		name := fields[0]
		if name == "" {
			err := malformedRow(lineNum, line, fmt.Errorf("missing band name"))
			if opts.StrictMode {
				return nil, err
			}
			continue
		}

		vec := make([]bool, 0, len(fields)-1)
		rowOK := true
		for _, cell := range fields[1:] {
			v, err := parseBool(cell)
			if err != nil {
				rowErr := malformedRow(lineNum, line, err)
				if opts.StrictMode {
					return nil, rowErr
				}
				rowOK = false
				break
			}
			vec = append(vec, v)
		}
		if !rowOK {
			continue
		}

		schedule[name] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading schedule CSV: %w", err)
	}

	return schedule, nil
}

func parseBool(cell string) (bool, error) {
	switch strings.ToLower(cell) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		if v, err := strconv.ParseBool(cell); err == nil {
			return v, nil
		}
		return false, fmt.Errorf("not a boolean: %q", cell)
	}
}
