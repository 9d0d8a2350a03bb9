package assistant

import (
	"context"
	"database/sql"
	"time"
)

// PostgresArchive persists completed exchanges for analytics.
//
// Expected schema:
//
//	CREATE TABLE exchanges (
//	    id             BIGSERIAL PRIMARY KEY,
//	    session_id     TEXT NOT NULL,
//	    user_text      TEXT NOT NULL,
//	    assistant_text TEXT NOT NULL,
//	    intent         TEXT,
//	    confidence     DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    source         TEXT NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

func (a *PostgresArchive) SaveExchange(ctx context.Context, sessionID string, ex Exchange, source ReplySource) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO exchanges (session_id, user_text, assistant_text, intent, confidence, source)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`,
		sessionID,
		ex.UserText,
		ex.AssistantText,
		ex.Intent,
		ex.Confidence,
		string(source),
	)
	return err
}

// RecentExchanges returns up to limit exchanges for a session in
// chronological order, oldest first.
func (a *PostgresArchive) RecentExchanges(ctx context.Context, sessionID string, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = HistoryLimit
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT user_text, assistant_text, COALESCE(intent, ''), confidence, extract(epoch from created_at)::bigint
		FROM exchanges
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var ex Exchange
		var epoch int64
		if err := rows.Scan(&ex.UserText, &ex.AssistantText, &ex.Intent, &ex.Confidence, &epoch); err != nil {
			return nil, err
		}
		ex.Timestamp = time.Unix(epoch, 0).UTC()
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// rows come newest first; flip to chronological
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

var _ ExchangeArchive = (*PostgresArchive)(nil)
