package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"assessment-chat-service/internal/domain"
)

// CatalogLoader loads topic JSONB rows from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := l.pool.Query(ctx, `SELECT name, data FROM topics ORDER BY position`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load topics: %w", err)
	}
	defer rows.Close()

	var catalog domain.Catalog
	for rows.Next() {
		var name string
		var raw []byte
		if err := rows.Scan(&name, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan topic: %w", err)
		}
		var questions []domain.Question
		if err := json.Unmarshal(raw, &questions); err != nil {
			return domain.Catalog{}, fmt.Errorf("unmarshal topic %s: %w", name, err)
		}
		catalog.Topics = append(catalog.Topics, domain.Topic{Name: name, Questions: questions})
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("load topics: %w", err)
	}
	return catalog, nil
}
