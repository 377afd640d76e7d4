package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/wordfreq"
)

// Options configures text parsing for [ReadText] and [Import].
type Options struct {
	Text wordfreq.Options
}

// ReadJSON decodes tags from r. It accepts an object with a "tags" array or
// a bare array; elements are objects or [text, weight, angle?] tuples.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]cloud.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)

	var tags document.Tags
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &tags.Tags)
	} else {
		err = json.Unmarshal(trimmed, &tags)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode tags")
	}

	for i, t := range tags.Tags {
		if err := errs.ValidateText(t.Text); err != nil {
			return nil, fmt.Errorf("tag %d: %w", i, err)
		}
	}
	return tags.Records(), nil
}

// ReadCSV decodes comma-separated rows of text, weight and an optional angle.
func ReadCSV(r io.Reader) ([]cloud.Record, error) {
	return readDelimited(r, ',')
}

// ReadTSV is ReadCSV for tab-separated input.
func ReadTSV(r io.Reader) ([]cloud.Record, error) {
	return readDelimited(r, '\t')
}

func readDelimited(r io.Reader, comma rune) ([]cloud.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode csv")
	}

	var recs []cloud.Record
	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) < 2 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "line %d: want text and weight, got %d fields", i+1, len(row))
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "line %d: weight", i+1)
		}
		if err := errs.ValidateWeight(row[0], w); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "line %d", i+1)
		}
		if err := errs.ValidateText(row[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		rec := cloud.Record{Text: row[0], Weight: w}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			a, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "line %d: angle", i+1)
			}
			rec.Angle = &a
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadText counts the words of free text.
func ReadText(r io.Reader, opts wordfreq.Options) ([]cloud.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return FromWords(wordfreq.Parse(string(data), opts)), nil
}

// FromWords converts counted words to records weighted by count.
func FromWords(words []wordfreq.Word) []cloud.Record {
	recs := make([]cloud.Record, len(words))
	for i, w := range words {
		recs[i] = cloud.Record{Text: w.Text, Weight: float64(w.Count)}
	}
	return recs
}

// Import reads a tag file, choosing the format from its extension.
func Import(path string, opts Options) ([]cloud.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	case ".tsv":
		return ReadTSV(f)
	default:
		return ReadText(f, opts.Text)
	}
}

// ImportJSON reads a JSON tag file.
func ImportJSON(path string) ([]cloud.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
