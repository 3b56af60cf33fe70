// Package score rates a finished layout on a 0-100 scale.
//
// [Extract] reduces units, corridors and free space to a ten-value
// [Features] vector. A [Scorer] turns the vector into a score. Two scorers
// are provided and are interchangeable:
//
//   - [Heuristic] is a fixed weighted sum and is always available
//   - [Trained] applies a fitted linear model and falls back to the
//     heuristic when no usable model is loaded
//
// Scoring is deterministic: the same inputs always yield the same score.
package score
