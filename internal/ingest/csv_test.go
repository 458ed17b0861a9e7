package ingest

import (
	"strings"
	"testing"

	appErrors "github.com/bandkon/kon/pkg/errors"
)

func TestParseBandCSV(t *testing.T) {
	input := "# comment\n\nx,a,a\ny,a\nz,b\n"
	bands, err := ParseBandCSV(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ParseBandCSV: %v", err)
	}
	if len(bands["x"]) != 2 || bands["x"][0] != "a" || bands["x"][1] != "a" {
		t.Errorf("expected x to keep duplicate member a twice, got %v", bands["x"])
	}
	if len(bands["y"]) != 1 || len(bands["z"]) != 1 {
		t.Errorf("unexpected band shapes: %v", bands)
	}
}

func TestParseBandCSV_SkipsMalformedRowByDefault(t *testing.T) {
	input := ",a,b\nx,a\n"
	bands, err := ParseBandCSV(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ParseBandCSV: %v", err)
	}
	if len(bands) != 1 {
		t.Errorf("expected only the well-formed row, got %v", bands)
	}
}

func TestParseBandCSV_StrictModeAborts(t *testing.T) {
	input := ",a,b\nx,a\n"
	_, err := ParseBandCSV(strings.NewReader(input), Options{StrictMode: true})
	if err == nil {
		t.Fatal("expected an error in strict mode")
	}
	if appErrors.GetErrorCode(err) != appErrors.CodeMalformedInput {
		t.Errorf("error code = %s, want %s", appErrors.GetErrorCode(err), appErrors.CodeMalformedInput)
	}
}

func TestParseScheduleCSV(t *testing.T) {
	input := "a,true,false\nb,1,0\nc,yes,no\n"
	schedule, err := ParseScheduleCSV(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ParseScheduleCSV: %v", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		if len(schedule[name]) != 2 || !schedule[name][0] || schedule[name][1] {
			t.Errorf("band %s: unexpected schedule %v", name, schedule[name])
		}
	}
}

func TestParseScheduleCSV_MalformedCellSkippedByDefault(t *testing.T) {
	input := "a,true,maybe\nb,false,true\n"
	schedule, err := ParseScheduleCSV(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ParseScheduleCSV: %v", err)
	}
	if _, ok := schedule["a"]; ok {
		t.Error("row with an unparsable cell should have been skipped")
	}
	if len(schedule["b"]) != 2 {
		t.Errorf("well-formed row should still parse, got %v", schedule["b"])
	}
}
