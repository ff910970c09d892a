package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotEnrolled is returned when a course is updated on a path the user
// has not joined.
var ErrNotEnrolled = errors.New("not enrolled in learning path")

var enrollmentColumns = []string{
	"user_id", "path_id", "title", "completed_courses", "enrolled_at", "updated_at",
}

type learningPathRepo struct {
	db querier
}

func (r *learningPathRepo) Enroll(ctx context.Context, userID, pathID, title string) error {
	now := time.Now().UTC()
	query, args := builder().Insert(LearningPathsTable.Name).
		Columns(enrollmentColumns...).
		Values(userID, pathID, title, []byte("[]"), now, now).
		OnConflict(
			entsql.ConflictColumns("user_id", "path_id"),
			entsql.DoNothing(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("enroll in %s: %w", pathID, err)
	}
	return nil
}

func (r *learningPathRepo) List(ctx context.Context, userID string) ([]Enrollment, error) {
	return r.query(ctx, builder().Select(enrollmentColumns...).
		From(builder().Table(LearningPathsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("id"))
}

func (r *learningPathRepo) Get(ctx context.Context, userID, pathID string) (*Enrollment, error) {
	es, err := r.query(ctx, builder().Select(enrollmentColumns...).
		From(builder().Table(LearningPathsTable.Name)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("path_id", pathID))))
	if err != nil {
		return nil, err
	}
	if len(es) == 0 {
		return nil, nil
	}
	return &es[0], nil
}

func (r *learningPathRepo) SetCourseCompleted(ctx context.Context, userID, pathID, courseID string, done bool) error {
	e, err := r.Get(ctx, userID, pathID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s", ErrNotEnrolled, pathID)
	}

	completed := slices.DeleteFunc(e.CompletedCourses, func(id string) bool { return id == courseID })
	if done {
		completed = append(completed, courseID)
	}
	if completed == nil {
		completed = []string{}
	}
	data, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("marshal completed courses: %w", err)
	}

	query, args := builder().Update(LearningPathsTable.Name).
		Set("completed_courses", data).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("path_id", pathID))).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", pathID, err)
	}
	return nil
}

func (r *learningPathRepo) Count(ctx context.Context, userID string) (int, error) {
	return countWhere(ctx, r.db, LearningPathsTable.Name, entsql.EQ("user_id", userID))
}

func (r *learningPathRepo) query(ctx context.Context, sel *entsql.Selector) ([]Enrollment, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query learning paths: %w", err)
	}
	defer rows.Close()

	var es []Enrollment
	for rows.Next() {
		var (
			e         Enrollment
			completed []byte
		)
		if err := rows.Scan(&e.UserID, &e.PathID, &e.Title, &completed, &e.EnrolledAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan learning path: %w", err)
		}
		if len(completed) > 0 {
			if err := json.Unmarshal(completed, &e.CompletedCourses); err != nil {
				return nil, fmt.Errorf("unmarshal completed courses of %s: %w", e.PathID, err)
			}
		}
		es = append(es, e)
	}
	return es, rows.Err()
}
