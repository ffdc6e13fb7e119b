package main

import (
	"bytes"
	"strings"
	"testing"

	"running-course-api/internal/geo"
	"running-course-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedCenter models.Coordinate
		expectedRadius float64
		expectError    bool
	}{
		{
			name:           "default radius",
			args:           []string{"37.5665", "126.978"},
			expectedCenter: models.Coordinate{Lat: 37.5665, Lon: 126.978},
			expectedRadius: defaultRadiusKm,
		},
		{
			name:           "explicit radius",
			args:           []string{"37.5665", "126.978", "4"},
			expectedCenter: models.Coordinate{Lat: 37.5665, Lon: 126.978},
			expectedRadius: 4,
		},
		{name: "missing longitude", args: []string{"37.5665"}, expectError: true},
		{name: "too many arguments", args: []string{"1", "2", "3", "4"}, expectError: true},
		{name: "latitude not a number", args: []string{"north", "126.978"}, expectError: true},
		{name: "latitude out of range", args: []string{"91", "126.978"}, expectError: true},
		{name: "zero radius", args: []string{"37.5665", "126.978", "0"}, expectError: true},
		{name: "NaN radius", args: []string{"37.5665", "126.978", "NaN"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, radius, err := parseArgs(tt.args)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCenter, center)
			assert.Equal(t, tt.expectedRadius, radius)
		})
	}
}

func TestPrintCourseSet(t *testing.T) {
	set, err := geo.NewCourseSet(models.Coordinate{Lat: 37.5665, Lon: 126.978}, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	printCourseSet(&buf, set)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header, then per course one end line and three midpoint lines
	assert.Len(t, lines, 1+12*4)
	assert.Equal(t, "center (37.566500, 126.978000), radius 5.00 km", lines[0])
	assert.Contains(t, lines[1], "course  1")
	assert.Contains(t, lines[1], "5000 m")
}
