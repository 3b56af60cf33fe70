package errors

import (
	"math"
	"path/filepath"
	"strings"
)

// PercentageTolerance is the slack allowed when checking that a size
// distribution sums to 100%.
const PercentageTolerance = 0.5

// ValidatePercentages checks that percentages are non-negative and sum to
// 100 within PercentageTolerance. Violations are configuration errors and
// are never renormalized.
func ValidatePercentages(percentages []float64) error {
	if len(percentages) == 0 {
		return New(ErrCodeConfiguration, "size distribution cannot be empty")
	}

	var sum float64
	for i, p := range percentages {
		if p < 0 || math.IsNaN(p) {
			return New(ErrCodeConfiguration, "size band %d has invalid percentage %v", i, p)
		}
		sum += p
	}

	if math.Abs(sum-100) > PercentageTolerance {
		return New(ErrCodeConfiguration, "size distribution percentages sum to %.2f%%, want 100%%", sum)
	}
	return nil
}

// ValidateCorridorWidth checks that the corridor width is strictly positive.
func ValidateCorridorWidth(width float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeConfiguration, "corridor width must be positive, got %v", width)
	}
	return nil
}

// ValidateFloor checks that floor dimensions describe a usable rectangle.
func ValidateFloor(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidInput, "floor dimensions must be positive, got %vx%v", width, height)
	}
	return nil
}

// ValidatePath validates a user-supplied input path.
// It rejects empty paths, control characters and null bytes.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "path contains a null byte")
	}

	if filepath.Clean(path) == "." {
		return New(ErrCodeInvalidInput, "path %q does not name a file", path)
	}

	return nil
}
