package repository

import (
	"context"
	"errors"
	"fmt"

	"running-course-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NearestRadiusM bounds how far a reverse geocode may reach for an address.
const NearestRadiusM = 10000

// Schema creates the addresses table and its indexes. It is idempotent.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		region_1 TEXT NOT NULL DEFAULT '',
		region_2 TEXT NOT NULL DEFAULT '',
		region_3 TEXT NOT NULL DEFAULT '',
		address_name TEXT NOT NULL,
		road_address_name TEXT NOT NULL DEFAULT '',
		road_name TEXT NOT NULL DEFAULT '',
		building_name TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		search_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('simple', address_name || ' ' || road_address_name || ' ' || building_name)
		) STORED,
		geom GEOGRAPHY(POINT, 4326) GENERATED ALWAYS AS (
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography
		) STORED
	);

	CREATE INDEX IF NOT EXISTS addresses_geom_idx ON addresses USING GIST (geom);
	CREATE INDEX IF NOT EXISTS addresses_search_tsvector_idx ON addresses USING GIN (search_tsvector);
`

// AddressRecord is one row of the addresses table as loaded by the importer.
type AddressRecord struct {
	Region1         string
	Region2         string
	Region3         string
	AddressName     string
	RoadAddressName string
	RoadName        string
	BuildingName    string
	Lat             float64
	Lon             float64
}

// Repository implements the address backends on PostgreSQL with PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the addresses table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// ImportAddresses bulk-loads records with COPY and returns the number of rows written.
func (r *Repository) ImportAddresses(ctx context.Context, records []AddressRecord) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"addresses"},
		[]string{"region_1", "region_2", "region_3", "address_name", "road_address_name", "road_name", "building_name", "latitude", "longitude"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{rec.Region1, rec.Region2, rec.Region3, rec.AddressName, rec.RoadAddressName, rec.RoadName, rec.BuildingName, rec.Lat, rec.Lon}, nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("repository: failed to copy addresses: %w", err)
	}
	return n, nil
}

// CountAddresses returns the number of stored addresses.
func (r *Repository) CountAddresses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM addresses").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count addresses: %w", err)
	}
	return count, nil
}

// SearchAddress performs a full-text search on the addresses table
func (r *Repository) SearchAddress(ctx context.Context, query string) ([]models.Place, error) {
	sql := `
		SELECT
			id,
			address_name,
			region_1,
			region_2,
			region_3,
			latitude,
			longitude
		FROM addresses
		WHERE search_tsvector @@ plainto_tsquery('simple', $1)
		ORDER BY ts_rank(search_tsvector, plainto_tsquery('simple', $1)) DESC, id
		LIMIT 10
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var p models.Place
		err := rows.Scan(
			&p.ID,
			&p.AddressName,
			&p.Region1,
			&p.Region2,
			&p.Region3,
			&p.Latitude,
			&p.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return places, nil
}

// ReverseGeocode returns the stored address nearest to the given coordinates,
// or nil when none lies within NearestRadiusM.
func (r *Repository) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.AddressInfo, error) {
	sql := `
		SELECT
			address_name,
			region_1,
			region_2,
			region_3,
			road_address_name,
			road_name,
			building_name
		FROM addresses
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	var (
		info                                 models.AddressInfo
		roadAddressName, roadName, buildName string
	)
	err := r.db.QueryRow(ctx, sql, lat, lon, NearestRadiusM).Scan(
		&info.AddressName,
		&info.Region1Depth,
		&info.Region2Depth,
		&info.Region3Depth,
		&roadAddressName,
		&roadName,
		&buildName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	if roadAddressName != "" {
		info.RoadAddress = &models.RoadAddress{
			AddressName:  roadAddressName,
			Region1Depth: info.Region1Depth,
			Region2Depth: info.Region2Depth,
			Region3Depth: info.Region3Depth,
			RoadName:     roadName,
			BuildingName: buildName,
		}
	}

	return &info, nil
}
