package dataset

import (
	"fmt"
	"strings"
)

type Scale string

const (
	ScaleTiny    Scale = "tiny"
	ScaleSmall   Scale = "small"
	ScaleMedium  Scale = "medium"
	ScaleLarge   Scale = "large"
	ScaleFixture Scale = "fixture"
)

var scaleDocs = map[Scale]int{
	ScaleTiny:   10,
	ScaleSmall:  100,
	ScaleMedium: 1000,
	ScaleLarge:  10000,
}

// DocCount is the number of generated documents at this scale, 0 for fixtures.
func (s Scale) DocCount() int {
	return scaleDocs[s]
}

func ParseScale(raw string) (Scale, error) {
	s := Scale(strings.ToLower(strings.TrimSpace(raw)))
	if s == ScaleFixture {
		return s, nil
	}
	if _, ok := scaleDocs[s]; !ok {
		return "", fmt.Errorf("unknown scale %q (want tiny, small, medium or large)", raw)
	}
	return s, nil
}
