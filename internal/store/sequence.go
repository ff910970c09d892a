package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// activitySequence names the counter that orders the activity feed.
const activitySequence = "activity"

// sequenceCounter hands out increasing numbers from one row of the sequences
// table. Activity entries appended within the same instant share a
// timestamp, so the feed orders by sequence instead. The row survives Reset.
type sequenceCounter struct {
	name string
}

func newSequenceCounter(ctx context.Context, db querier, name string) (*sequenceCounter, error) {
	query, args := builder().Insert(SequencesTable.Name).
		Columns("name", "next_val").
		Values(name, 1).
		OnConflict(entsql.ConflictColumns("name"), entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed %s sequence: %w", name, err)
	}
	return &sequenceCounter{name: name}, nil
}

// Next advances the counter on q and returns the value it held. It is a
// single statement, so it can run inside the caller's transaction.
func (sc *sequenceCounter) Next(ctx context.Context, q querier) (int64, error) {
	query, args := builder().Update(SequencesTable.Name).
		Add("next_val", 1).
		Where(entsql.EQ("name", sc.name)).
		Returning("next_val").
		Query()
	var next int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("advance %s sequence: %w", sc.name, err)
	}
	return next - 1, nil
}
