package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type skillRepo struct {
	db querier
}

func (r *skillRepo) List(ctx context.Context, userID string) ([]UserSkill, error) {
	query, args := builder().Select("user_id", "name", "level", "score", "source", "updated_at").
		From(builder().Table(UserSkillsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	var skills []UserSkill
	for rows.Next() {
		var s UserSkill
		if err := rows.Scan(&s.UserID, &s.Name, &s.Level, &s.Score, &s.Source, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *skillRepo) Upsert(ctx context.Context, s UserSkill) error {
	if s.UserID == "" || s.Name == "" {
		return errors.New("upsert skill: user id and name are required")
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	query, args := builder().Insert(UserSkillsTable.Name).
		Columns("user_id", "name", "level", "score", "source", "updated_at").
		Values(s.UserID, s.Name, s.Level, s.Score, s.Source, s.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert skill %q: %w", s.Name, err)
	}
	return nil
}

func (r *skillRepo) Delete(ctx context.Context, userID, name string) error {
	query, args := builder().Delete(UserSkillsTable.Name).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("name", name))).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete skill %q: %w", name, err)
	}
	return nil
}

func (r *skillRepo) Count(ctx context.Context, userID string) (int, error) {
	return countWhere(ctx, r.db, UserSkillsTable.Name, entsql.EQ("user_id", userID))
}

// countWhere returns the number of rows in table matching p.
func countWhere(ctx context.Context, db querier, table string, p *entsql.Predicate) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(builder().Table(table)).
		Where(p).
		Query()

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
