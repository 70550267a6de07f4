package parse

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ChapterSelection parses the user input for ranges and parts, e.g. "1-5,7.5",
// and returns the matching available chapters in ascending order
func ChapterSelection(input string, availableChapters []float64) ([]float64, error) {
	parts := strings.Split(input, ",")
	uniqueChapters := make(map[float64]bool)

	for _, part := range parts {
		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid range format: %s", part)
			}
			start, end, err := getRange(rangeParts)
			if err != nil {
				return nil, err
			}

			for _, chapter := range availableChapters {
				if chapter >= start && chapter <= end {
					uniqueChapters[chapter] = true
				}
			}
		} else {
			chapter, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, err
			}
			if slices.Contains(availableChapters, chapter) {
				uniqueChapters[chapter] = true
			}
		}
	}

	selectedChapters := make([]float64, 0, len(uniqueChapters))
	for chapterNumber := range uniqueChapters {
		selectedChapters = append(selectedChapters, chapterNumber)
	}
	slices.Sort(selectedChapters)

	return selectedChapters, nil
}

// getRange parses the user input for chapter ranges
func getRange(rangeParts []string) (float64, float64, error) {
	start, err := strconv.ParseFloat(strings.TrimSpace(rangeParts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start of range: %s", rangeParts[0])
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(rangeParts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end of range: %s", rangeParts[1])
	}

	if start > end {
		return 0, 0, fmt.Errorf("start of range should not be greater than end: %s-%s", rangeParts[0], rangeParts[1])
	}

	return start, end, nil
}

// GetMinAndMax returns the lowest and highest values of a slice of ordered values
func GetMinAndMax[K cmp.Ordered](values []K) (K, K, error) {
	if len(values) == 0 {
		var zero K
		return zero, zero, fmt.Errorf("no values")
	}

	return slices.Min(values), slices.Max(values), nil
}
