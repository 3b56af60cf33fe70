// Package zone classifies normalized floor-plan geometry into typed zones.
//
// Two input paths are supported. The vector path takes a flat list of
// [Entity] values (already tessellated by an upstream CAD parser) and groups
// them by layer and colour. Each group is typed by layer-name keywords first
// and by a fixed colour table second; wall groups are stitched into
// continuous polylines, area groups become one polygon [Zone] per entity.
//
// The raster path takes a [PixelBuffer] and samples it on a block stride,
// matching each sample against reference colours and clustering same-kind
// samples with single-link distance clustering. Each surviving cluster
// becomes one rectangular zone.
//
// Malformed entities are skipped and reported as [Anomaly] values; they are
// never fatal. When no wall survives classification a boundary wall is
// synthesized from the floor rectangle.
package zone
