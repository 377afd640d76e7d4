package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/wordfreq"
)

func ptr(f float64) *float64 { return &f }

func TestReadJSON(t *testing.T) {
	want := []cloud.Record{
		{Text: "golang", Weight: 12},
		{Text: "cloud", Weight: 4, Angle: ptr(90)},
	}
	tests := []struct {
		name  string
		input string
	}{
		{"object", `{"tags":[{"text":"golang","weight":12},{"text":"cloud","weight":4,"angle":90}]}`},
		{"array", `[{"text":"golang","weight":12},{"text":"cloud","weight":4,"angle":90}]`},
		{"tuples", `[["golang", 12], ["cloud", 4, 90]]`},
		{"mixed", ` [["golang", 12], {"text":"cloud","weight":4,"angle":90}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ReadJSON() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"tags": [`},
		{"short tuple", `[["only"]]`},
		{"bad weight", `[["a", "x"]]`},
		{"control chars", `[["a\u0001b", 1]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	input := "text,weight,angle\ngolang, 12\ncloud,4,90\n\n"
	got, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []cloud.Record{
		{Text: "golang", Weight: 12},
		{Text: "cloud", Weight: 4, Angle: ptr(90)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadCSV() = %+v, want %+v", got, want)
	}

	if _, err := ReadCSV(strings.NewReader("a,1\nb,NaN\n")); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("NaN weight: err = %v, want INVALID_INPUT", err)
	}
	if _, err := ReadCSV(strings.NewReader("a,1\nb,heavy\n")); err == nil {
		t.Error("non-numeric weight after the first line should fail")
	}
	if _, err := ReadCSV(strings.NewReader("lonely\n")); err == nil {
		t.Error("single-column row should fail")
	}
}

func TestReadTSV(t *testing.T) {
	got, err := ReadTSV(strings.NewReader("big word\t3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Text != "big word" || got[0].Weight != 3 {
		t.Errorf("ReadTSV() = %+v", got)
	}
}

func TestReadText(t *testing.T) {
	got, err := ReadText(strings.NewReader("go go cloud"), wordfreq.Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []cloud.Record{{Text: "go", Weight: 2}, {Text: "cloud", Weight: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadText() = %+v, want %+v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	recs := []cloud.Record{{Text: "a", Weight: 1.5}, {Text: "b", Weight: 2, Angle: ptr(-45)}}
	var buf bytes.Buffer
	if err := WriteJSON(recs, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Errorf("round trip = %+v, want %+v", got, recs)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"tags.json": `[["x", 1]]`,
		"tags.csv":  "x,1\n",
		"tags.tsv":  "x\t1\n",
		"notes.txt": "x",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := Import(path, Options{})
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if len(got) != 1 || got[0].Text != "x" || got[0].Weight != 1 {
			t.Errorf("Import(%s) = %+v", name, got)
		}
	}

	if _, err := Import(filepath.Join(dir, "missing.csv"), Options{}); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}

	out := filepath.Join(dir, "out.json")
	if err := ExportJSON([]cloud.Record{{Text: "y", Weight: 2}}, out); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(out)
	if err != nil || len(got) != 1 || got[0].Text != "y" {
		t.Errorf("ImportJSON() = %+v, %v", got, err)
	}
}
