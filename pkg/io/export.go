package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/pipeline"
)

// WriteResult encodes a pipeline result as indented JSON.
func WriteResult(res *pipeline.Result, w io.Writer) error {
	return encode(res, w)
}

// ExportResult writes a pipeline result to a JSON file at path.
func ExportResult(res *pipeline.Result, path string) error {
	return create(path, func(w io.Writer) error { return WriteResult(res, w) })
}

// WriteClassification encodes classified zones as indented JSON. The output
// is a valid plan and can be fed back to [ReadPlan].
func WriteClassification(cls *pipeline.Classification, w io.Writer) error {
	return encode(struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		*pipeline.Classification
	}{cls.Floor.Width, cls.Floor.Height, cls}, w)
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

func create(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
