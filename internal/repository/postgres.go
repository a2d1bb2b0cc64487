package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const listingColumns = `
	doc_id, title, locality, zone, exact_price, area_sqft, price_per_sqft,
	bhk_list, livability_score, investment_score, description, url,
	created_at, updated_at`

// Predicate is the metadata filter applied inside the similarity query.
type Predicate struct {
	BudgetMax       *float64
	Zone            *string
	PPSFCeiling     *float64 // set when the query asks for affordable listings
	PriceNoiseFloor float64  // applied together with BudgetMax to skip junk rows
}

// Candidate is a listing returned from the vector index with its cosine
// similarity to the query embedding.
type Candidate struct {
	model.Listing
	Similarity float64 `db:"similarity"`
}

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SearchSimilar runs a cosine nearest-neighbor query against the listing
// embeddings with the metadata predicate applied in SQL, returning up to
// limit candidates ordered by similarity.
func (r *PostgresRepository) SearchSimilar(ctx context.Context, embedding []float32, pred Predicate, limit int) ([]Candidate, error) {
	whereClauses := []string{"embedding IS NOT NULL"}
	args := []interface{}{}
	argIndex := 1

	if pred.BudgetMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("exact_price <= $%d", argIndex))
		args = append(args, *pred.BudgetMax)
		argIndex++
		whereClauses = append(whereClauses, fmt.Sprintf("exact_price > $%d", argIndex))
		args = append(args, pred.PriceNoiseFloor)
		argIndex++
	}
	if pred.Zone != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("zone = $%d", argIndex))
		args = append(args, *pred.Zone)
		argIndex++
	}
	if pred.PPSFCeiling != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price_per_sqft < $%d", argIndex))
		args = append(args, *pred.PPSFCeiling)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s,
			1 - (embedding <=> $%d) AS similarity
		FROM listings
		WHERE %s
		ORDER BY embedding <=> $%d
		LIMIT $%d
	`, listingColumns, argIndex, strings.Join(whereClauses, " AND "), argIndex, argIndex+1)

	args = append(args, pgvector.NewVector(embedding), limit)

	var candidates []Candidate
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query similar listings: %w", err)
	}

	return candidates, nil
}

// AllListings fetches every listing without embeddings, for batch
// rescoring.
func (r *PostgresRepository) AllListings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	query := fmt.Sprintf("SELECT %s FROM listings", listingColumns)
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

// UpdateScores writes recomputed livability/investment scores back in a
// single transaction. Returns the number of rows updated and any per-row
// errors.
func (r *PostgresRepository) UpdateScores(ctx context.Context, scores map[string][2]float64) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE listings SET livability_score = $1, investment_score = $2, updated_at = NOW() WHERE doc_id = $3`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for docID, pair := range scores {
		if _, err := stmt.ExecContext(ctx, pair[0], pair[1], docID); err != nil {
			errors = append(errors, fmt.Sprintf("doc_id %s: %v", docID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogSearch records a search for later analysis
func (r *PostgresRepository) LogSearch(ctx context.Context, searchID, userID, query string, filters *model.QueryFilters, resultCount int, docIDs []string, tookMs int) error {
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}

	logQuery := `
		INSERT INTO search_logs (search_id, user_id, query, filters, result_count, returned_doc_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, logQuery, searchID, userID, query, filtersJSON, resultCount, pq.Array(docIDs), tookMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogFeedback records a like/dislike for a returned listing
func (r *PostgresRepository) LogFeedback(ctx context.Context, userID, docID string, liked bool) error {
	query := `INSERT INTO feedback (user_id, doc_id, liked) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, userID, docID, liked)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
