package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/note"
	repo "taskBoard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const noteColumns = `id, user_id, day_of_week, text, done, week_start, created_at, updated_at`

type NoteRepo struct {
	pool *pgxpool.Pool
}

func scanNote(row scanner) (*note.WeeklyNote, error) {
	var (
		id string
		n  note.WeeklyNote
	)
	err := row.Scan(&id, &n.UserID, &n.DayOfWeek, &n.Text, &n.Done, &n.WeekStart, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	n.ID, err = primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("некорректный id %q: %w", id, err)
	}
	return &n, nil
}

func (r *NoteRepo) Create(ctx context.Context, noteToCreate *note.WeeklyNote) error {
	start := time.Now()
	defer warnIfSlow("notes.create", start)

	if noteToCreate.ID.IsZero() {
		noteToCreate.ID = primitive.NewObjectID()
	}
	if noteToCreate.CreatedAt.IsZero() {
		noteToCreate.CreatedAt = time.Now()
		noteToCreate.UpdatedAt = noteToCreate.CreatedAt
	}

	query := `INSERT INTO weekly_notes (` + noteColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		noteToCreate.ID.Hex(),
		noteToCreate.UserID,
		noteToCreate.DayOfWeek,
		noteToCreate.Text,
		noteToCreate.Done,
		noteToCreate.WeekStart,
		noteToCreate.CreatedAt,
		noteToCreate.UpdatedAt,
	)
	if err != nil {
		logger.Error("Repository: Не удалось добавить заметку", err)
		return fmt.Errorf("добавление заметки: %w", err)
	}
	return nil
}

func (r *NoteRepo) ListByWeek(ctx context.Context, owner, weekStart string) ([]*note.WeeklyNote, error) {
	start := time.Now()
	defer warnIfSlow("notes.list", start)

	query := `SELECT ` + noteColumns + ` FROM weekly_notes
				WHERE user_id = $1 AND week_start = $2
				ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, owner, weekStart)
	if err != nil {
		logger.Error("Repository: Не удалось получить заметки", err)
		return nil, fmt.Errorf("получение заметок: %w", err)
	}
	defer rows.Close()

	notes := []*note.WeeklyNote{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование заметки: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return notes, nil
}

func (r *NoteRepo) Update(ctx context.Context, id primitive.ObjectID, patch note.Patch, owner string) (*note.WeeklyNote, error) {
	start := time.Now()
	defer warnIfSlow("notes.update", start)

	args := []any{id.Hex(), owner, time.Now()}
	sets := []string{"updated_at = $3"}
	if patch.Done != nil {
		args = append(args, *patch.Done)
		sets = append(sets, fmt.Sprintf("done = $%d", len(args)))
	}
	if patch.Text != nil {
		args = append(args, *patch.Text)
		sets = append(sets, fmt.Sprintf("text = $%d", len(args)))
	}

	query := `UPDATE weekly_notes SET ` + strings.Join(sets, ", ") + `
				WHERE id = $1 AND user_id = $2
				RETURNING ` + noteColumns

	n, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить заметку", err, zap.String("note_id", id.Hex()))
		return nil, fmt.Errorf("обновление заметки: %w", err)
	}
	return n, nil
}

func (r *NoteRepo) Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM weekly_notes WHERE id = $1 AND user_id = $2`, id.Hex(), owner)
	if err != nil {
		logger.Error("Repository: Не удалось удалить заметку", err, zap.String("note_id", id.Hex()))
		return false, fmt.Errorf("удаление заметки: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NoteRepo) ClearDay(ctx context.Context, owner, dayOfWeek, weekStart string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM weekly_notes WHERE user_id = $1 AND day_of_week = $2 AND week_start = $3`,
		owner, dayOfWeek, weekStart)
	if err != nil {
		logger.Error("Repository: Не удалось очистить день", err)
		return 0, fmt.Errorf("очистка заметок дня: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NoteRepo) ClearWeek(ctx context.Context, owner, weekStart string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM weekly_notes WHERE user_id = $1 AND week_start = $2`,
		owner, weekStart)
	if err != nil {
		logger.Error("Repository: Не удалось очистить неделю", err)
		return 0, fmt.Errorf("очистка заметок недели: %w", err)
	}
	return tag.RowsAffected(), nil
}
