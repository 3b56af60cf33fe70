// Package io reads floor plans and writes optimization results.
//
// # Overview
//
// The optimizer core works on normalized data: a floor rectangle plus either
// a list of CAD entities, a list of already classified zones, or a raw pixel
// buffer. This package turns files into that form and serializes results
// back to JSON. It does not parse DXF itself; an upstream converter is
// expected to emit the plan JSON described below.
//
// # Plan Format
//
//	{
//	  "width": 20,
//	  "height": 10,
//	  "entities": [
//	    {"kind": "line", "layer": "WALLS", "color": 7,
//	     "vertices": [{"x": 0, "y": 0}, {"x": 20, "y": 0}]},
//	    {"kind": "polyline", "layer": "STAIRS", "color": 5,
//	     "vertices": [{"x": 8, "y": 0}, {"x": 12, "y": 0}, {"x": 12, "y": 10}, {"x": 8, "y": 10}]}
//	  ]
//	}
//
// Instead of "entities" a plan may carry "zones" (the output of the classify
// command), which are used as given.
//
// # Images
//
// [ReadImage] decodes PNG, JPEG, GIF, BMP and TIFF images into a
// [zone.PixelBuffer] with three channels. Alpha is dropped after compositing
// onto white, so transparent regions never read as walls.
//
// # Export
//
// [WriteResult] and [ExportResult] encode a [pipeline.Result] as indented
// JSON. [WriteClassification] does the same for the classify stage.
//
// [zone.PixelBuffer]: github.com/matzehuels/ilotplan/pkg/zone.PixelBuffer
// [pipeline.Result]: github.com/matzehuels/ilotplan/pkg/pipeline.Result
package io
