package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type activityRepo struct {
	db  querier
	seq *sequenceCounter
}

func (r *activityRepo) Append(ctx context.Context, a Activity) (Activity, error) {
	if a.UserID == "" || a.Kind == "" {
		return Activity{}, errors.New("append activity: user id and kind are required")
	}
	seq, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return Activity{}, err
	}
	a.Sequence = seq
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	a.Timestamp = a.Timestamp.UTC()

	var score sql.NullInt64
	if a.Score != nil {
		score = sql.NullInt64{Int64: int64(*a.Score), Valid: true}
	}

	query, args := builder().Insert(ActivitiesTable.Name).
		Columns("sequence", "timestamp", "user_id", "kind", "title", "detail", "score").
		Values(a.Sequence, a.Timestamp, a.UserID, a.Kind, a.Title, a.Detail, score).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return Activity{}, fmt.Errorf("append %s activity: %w", a.Kind, err)
	}
	return a, nil
}

func (r *activityRepo) Recent(ctx context.Context, userID string, limit int) ([]Activity, error) {
	sel := builder().Select("sequence", "timestamp", "user_id", "kind", "title", "detail", "score").
		From(builder().Table(ActivitiesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var (
			a     Activity
			score sql.NullInt64
		)
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.UserID, &a.Kind, &a.Title, &a.Detail, &score); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if score.Valid {
			v := int(score.Int64)
			a.Score = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
