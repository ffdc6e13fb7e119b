package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"running-course-api/internal/config"
	"running-course-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Expected CSV columns, after a header row:
// region1,region2,region3,address_name,road_address_name,road_name,building_name,lat,lon
const csvColumns = 9

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Msg("starting import")

	records, err := parseCSVFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("records", len(records)).Msg("parsed records")

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if cfg.DBSource == "" {
		log.Fatal().Msg("DB_SOURCE is required")
	}

	ctx := context.Background()
	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := run(ctx, repo, records); err != nil {
		log.Error().Err(err).Msg("import failed")
		conn.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, repo *repository.Repository, records []repository.AddressRecord) error {
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	before, err := repo.CountAddresses(ctx)
	if err != nil {
		return err
	}

	written, err := repo.ImportAddresses(ctx, records)
	if err != nil {
		return err
	}

	after, err := repo.CountAddresses(ctx)
	if err != nil {
		return err
	}
	if after-before != int64(len(records)) {
		return fmt.Errorf("record count mismatch: expected %d new rows, got %d", len(records), after-before)
	}

	log.Info().Int64("imported", written).Int64("total", after).Msg("import finished")
	return nil
}

func parseCSVFile(path string) ([]repository.AddressRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]repository.AddressRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []repository.AddressRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(row) < csvColumns {
			return nil, fmt.Errorf("line %d: invalid record length %d, expected at least %d columns", line, len(row), csvColumns)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(row[7]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("line %d: invalid latitude %q", line, row[7])
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[8]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("line %d: invalid longitude %q", line, row[8])
		}

		records = append(records, repository.AddressRecord{
			Region1:         row[0],
			Region2:         row[1],
			Region3:         row[2],
			AddressName:     row[3],
			RoadAddressName: row[4],
			RoadName:        row[5],
			BuildingName:    row[6],
			Lat:             lat,
			Lon:             lon,
		})
	}

	return records, nil
}
