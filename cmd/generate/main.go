// Command generate builds the twelve radial courses around a point without
// calling any external service and writes them to output.json.
//
//	generate [-out dir] [-compress] lat lon [radiusKm]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"running-course-api/internal/debugdump"
	"running-course-api/internal/geo"
	"running-course-api/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultRadiusKm = 2.5
	outputName      = "output"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	out := flag.String("out", ".", "Directory to write the course set to")
	compress := flag.Bool("compress", false, "Brotli-compress the output file")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: generate [-out dir] [-compress] lat lon [radiusKm]")
		flag.PrintDefaults()
	}
	flag.Parse()

	center, radiusKm, err := parseArgs(flag.Args())
	if err != nil {
		flag.Usage()
		log.Fatal().Err(err).Msg("invalid arguments")
	}

	set, err := geo.NewCourseSet(center, radiusKm*2)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot generate courses")
	}
	printCourseSet(os.Stdout, set)

	writer := debugdump.New(*out, *compress)
	if err := writer.Write(outputName, set); err != nil {
		log.Fatal().Err(err).Msg("cannot write course set")
	}
	log.Info().Str("path", writer.Path(outputName)).Msg("course set written")
}

func parseArgs(args []string) (models.Coordinate, float64, error) {
	if len(args) < 2 || len(args) > 3 {
		return models.Coordinate{}, 0, fmt.Errorf("expected 2 or 3 arguments, got %d", len(args))
	}

	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return models.Coordinate{}, 0, fmt.Errorf("invalid latitude %q", args[0])
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return models.Coordinate{}, 0, fmt.Errorf("invalid longitude %q", args[1])
	}
	center := models.Coordinate{Lat: lat, Lon: lon}
	if !center.Valid() {
		return models.Coordinate{}, 0, fmt.Errorf("coordinate out of range: %s", center.Key())
	}

	radiusKm := defaultRadiusKm
	if len(args) == 3 {
		radiusKm, err = strconv.ParseFloat(args[2], 64)
		if err != nil || !(radiusKm > 0) {
			return models.Coordinate{}, 0, fmt.Errorf("invalid radius %q", args[2])
		}
	}
	return center, radiusKm, nil
}

func printCourseSet(w io.Writer, set *models.CourseSet) {
	fmt.Fprintf(w, "center (%.6f, %.6f), radius %.2f km\n", set.Base.Lat, set.Base.Lon, set.RadiusKm)
	for _, c := range set.Courses {
		fmt.Fprintf(w, "course %2d  %3.0f°  end (%.6f, %.6f)  %.0f m\n",
			c.ID, c.Angle, c.End.Lat, c.End.Lon, geo.Distance(c.Start, c.End))
		for i, mp := range c.Midpoints {
			fmt.Fprintf(w, "    midpoint %d  (%.6f, %.6f)\n", i+1, mp.Lat, mp.Lon)
		}
	}
}
