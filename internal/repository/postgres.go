package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jp-municipalities/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the municipalities table and its indexes.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS municipalities (
		code VARCHAR(16) PRIMARY KEY,
		name_kanji VARCHAR(255) NOT NULL,
		name_kana VARCHAR(255) NOT NULL,
		name_romaji VARCHAR(255) NOT NULL,
		prefecture_kanji VARCHAR(255) NOT NULL,
		prefecture_kana VARCHAR(255) NOT NULL,
		prefecture_romaji VARCHAR(255) NOT NULL,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS municipalities_geom_idx ON municipalities USING GIST (geom);
	CREATE INDEX IF NOT EXISTS municipalities_name_kanji_idx ON municipalities (name_kanji);
`

const selectColumns = `
			code,
			name_kanji,
			name_kana,
			name_romaji,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude,
			prefecture_kanji,
			prefecture_kana,
			prefecture_romaji
`

// Repository stores the generated municipalities in PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a Repository on top of db.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// ReplaceMunicipalities swaps the table contents for municipalities in one
// transaction and returns the number of rows copied.
func (r *Repository) ReplaceMunicipalities(ctx context.Context, municipalities []models.Municipality) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE municipalities"); err != nil {
		return 0, fmt.Errorf("repository: failed to truncate: %w", err)
	}

	// Use CopyFrom for bulk insert
	count, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"municipalities"},
		[]string{"code", "name_kanji", "name_kana", "name_romaji", "prefecture_kanji", "prefecture_kana", "prefecture_romaji", "geom"},
		pgx.CopyFromSlice(len(municipalities), func(i int) ([]any, error) {
			m := municipalities[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", m.Lon, m.Lat) // PostGIS format: lon lat
			return []any{m.Code, m.NameKanji, m.NameKana, m.NameRomaji, m.PrefectureKanji, m.PrefectureKana, m.PrefectureRomaji, geom}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy municipalities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: failed to commit: %w", err)
	}
	return count, nil
}

// CountMunicipalities returns the number of stored rows.
func (r *Repository) CountMunicipalities(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM municipalities").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count municipalities: %w", err)
	}
	return count, nil
}

// FindByCode returns the municipality with the given code, or nil when there
// is none.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Municipality, error) {
	sql := `SELECT` + selectColumns + `FROM municipalities WHERE code = $1`

	m, err := scanMunicipality(r.db.QueryRow(ctx, sql, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find municipality: %w", err)
	}
	return m, nil
}

// SearchByName matches the query against the kanji, kana and romaji names.
func (r *Repository) SearchByName(ctx context.Context, query string) ([]models.Municipality, error) {
	sql := `SELECT` + selectColumns + `
		FROM municipalities
		WHERE name_kanji LIKE '%' || $1 || '%' ESCAPE '\'
			OR name_kana LIKE '%' || $1 || '%' ESCAPE '\'
			OR name_romaji ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY code
		LIMIT 20
	`

	rows, err := r.db.Query(ctx, sql, escapeLike(query))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	municipalities := []models.Municipality{}
	for rows.Next() {
		m, err := scanMunicipality(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan municipality: %w", err)
		}
		municipalities = append(municipalities, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return municipalities, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// FindNearest returns the municipality closest to the given coordinates
// within 50km, or nil when there is none.
func (r *Repository) FindNearest(ctx context.Context, lat, lon float64) (*models.Municipality, error) {
	sql := `SELECT` + selectColumns + `
		FROM municipalities
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, 50000) -- Within 50km
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	m, err := scanMunicipality(r.db.QueryRow(ctx, sql, lat, lon))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}
	return m, nil
}

func scanMunicipality(row pgx.Row) (*models.Municipality, error) {
	var m models.Municipality
	err := row.Scan(
		&m.Code,
		&m.NameKanji,
		&m.NameKana,
		&m.NameRomaji,
		&m.Lat,
		&m.Lon,
		&m.PrefectureKanji,
		&m.PrefectureKana,
		&m.PrefectureRomaji,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
