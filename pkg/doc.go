// Package pkg provides the core libraries for ilotplan floor-plan layout.
//
// # Overview
//
// ilotplan places rectangular units ("îlots") inside a floor plan that
// contains walls, restricted areas and entrances, then connects facing rows
// of units with corridors. The pkg directory is organized into three areas:
//
//  1. Spatial core: geometry, zones, free space, demand, placement, corridors, scoring
//  2. Orchestration: the pipeline that chains the core stages
//  3. Infrastructure: caching, configuration, file I/O, errors and hooks
//
// # Architecture
//
// The data flow through ilotplan:
//
//	CAD entities / image pixels
//	         ↓
//	    [zone] package (classify into walls, restricted, entrances)
//	         ↓
//	    [space] package (subtract obstacles → free rectangles)
//	         ↓
//	    [demand] package (size distribution → unit requirements)
//	         ↓
//	    [placement] package (genetic search over candidate layouts)
//	         ↓
//	    [corridor] package (corridors between facing rows)
//	         ↓
//	    [score] package (feature vector → quality score)
//
// # Quick Start
//
//	opts := pipeline.Options{
//	    SizeDistribution: []demand.SizeBand{{MinSize: 1, MaxSize: 3, Percentage: 100}},
//	    CorridorWidth:    1.5,
//	}
//	in := pipeline.Input{Width: 20, Height: 10, Entities: entities}
//	res, err := pipeline.Optimize(ctx, in, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d units, %.1f%% utilization\n",
//	    len(res.Optimization.Ilots), res.Optimization.UtilizationPercentage)
//
// # Main Packages
//
// ## Spatial Core
//
// [geometry] - Points, axis-aligned rectangles, polygon area, rectangle
// subtraction and the tolerance set shared by every stage.
//
// [zone] - Zone classification from CAD entities (layer keywords, colour
// table, wall chain joining) or from raster images (block sampling and
// single-link clustering).
//
// [space] - Free-space partition of the floor into disjoint rectangles.
//
// [demand] - Size bands, their validation and conversion into unit counts.
//
// [layout] - Îlots, corridors and candidate layouts.
//
// [placement] - The Placer interface with genetic (default), greedy and
// random implementations, and the fitness function.
//
// [corridor] - Row grouping and corridor synthesis.
//
// [score] - Feature extraction, the heuristic scorer and an optional
// trained linear scorer.
//
// ## Orchestration
//
// [pipeline] - Classify → space → plan → place → corridors → score with
// validation, warnings and result caching.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, redis and null backends.
//
// [config] - TOML file plus ILOTPLAN_ environment configuration.
//
// [io] - Plan JSON and image import, result export.
//
// [errors] - Coded errors (CONFIGURATION, INVALID_INPUT, ...).
//
// [observability] - Hooks for stage timings, optimizer progress and cache use.
//
// [buildinfo] - Version information injected at build time.
package pkg
