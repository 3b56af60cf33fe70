package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/pipeline"
	"github.com/matzehuels/ilotplan/pkg/score"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

type plan struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Entities []zone.Entity `json:"entities"`
	Zones    []zone.Zone   `json:"zones"`
}

// ReadPlan decodes a JSON floor plan from r.
//
// ReadPlan returns an INVALID_FORMAT error if the JSON is malformed or an
// entity kind or zone type is unknown, and an INVALID_INPUT error if the
// floor dimensions are not positive. Entities with too few vertices are
// accepted here; the classifier reports them as anomalies.
func ReadPlan(r io.Reader) (pipeline.Input, error) {
	var p plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return pipeline.Input{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan")
	}
	if err := errors.ValidateFloor(p.Width, p.Height); err != nil {
		return pipeline.Input{}, err
	}
	return pipeline.Input{
		Width:    p.Width,
		Height:   p.Height,
		Entities: p.Entities,
		Zones:    p.Zones,
	}, nil
}

// ImportPlan reads the floor plan at path. Image files are decoded with
// [ImportImage] and returned as raster input; the floor size then defaults
// to the image size times the raster scale.
func ImportPlan(path string) (pipeline.Input, error) {
	if IsImage(path) {
		buf, err := ImportImage(path)
		if err != nil {
			return pipeline.Input{}, err
		}
		return pipeline.Input{Raster: &buf}, nil
	}
	f, err := open(path)
	if err != nil {
		return pipeline.Input{}, err
	}
	defer f.Close()
	in, err := ReadPlan(f)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// ReadSamples decodes a JSON array of scored feature vectors, the training
// set for a trained scorer.
func ReadSamples(r io.Reader) ([]score.Sample, error) {
	var samples []score.Sample
	if err := json.NewDecoder(r).Decode(&samples); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode samples")
	}
	return samples, nil
}

// ImportSamples reads training samples from path.
func ImportSamples(path string) ([]score.Sample, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSamples(f)
}

// IsImage reports whether path has a supported raster image extension.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}
