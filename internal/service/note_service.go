package service

import (
	"context"
	"errors"
	"fmt"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/note"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NoteService - заметки недельного планировщика. Владелец всегда
// вызывающий пользователь.
type NoteService struct {
	repo      NoteRepository
	validator *validation.Validator
}

func NewNoteService(repo NoteRepository, v *validation.Validator) *NoteService {
	return &NoteService{repo: repo, validator: v}
}

func (s *NoteService) check(in any) error {
	fieldErrs, err := s.validator.Check(in)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return newFieldsError(fieldErrs)
	}
	return nil
}

func (s *NoteService) CreateNote(ctx context.Context, owner string, in CreateNoteInput) (*note.WeeklyNote, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	n := &note.WeeklyNote{
		UserID:    owner,
		DayOfWeek: in.DayOfWeek,
		Text:      in.Text,
		WeekStart: in.WeekStart,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("создание заметки: %w", err)
	}

	logger.Info("Service: Заметка создана", zap.String("note_id", n.ID.Hex()), zap.String("owner", owner))
	return n, nil
}

func (s *NoteService) ListWeek(ctx context.Context, owner, weekStart string) ([]*note.WeeklyNote, error) {
	if err := s.check(weekInput{WeekStart: weekStart}); err != nil {
		return nil, err
	}

	notes, err := s.repo.ListByWeek(ctx, owner, weekStart)
	if err != nil {
		return nil, fmt.Errorf("получение заметок: %w", err)
	}
	return notes, nil
}

// UpdateNote: пустой текст не затирает сохранённый; без полей
// обновляется только updatedAt.
func (s *NoteService) UpdateNote(ctx context.Context, owner string, id primitive.ObjectID, in UpdateNoteInput) (*note.WeeklyNote, error) {
	patch := note.Patch{Done: in.Done}
	if in.Text != nil && *in.Text != "" {
		patch.Text = in.Text
	}

	n, err := s.repo.Update(ctx, id, patch, owner)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("Note", id.Hex())
		}
		return nil, fmt.Errorf("обновление заметки: %w", err)
	}
	return n, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, owner string, id primitive.ObjectID) error {
	deleted, err := s.repo.Delete(ctx, id, owner)
	if err != nil {
		return fmt.Errorf("удаление заметки: %w", err)
	}
	if !deleted {
		return NewNotFound("Note", id.Hex())
	}
	return nil
}

func (s *NoteService) ClearDay(ctx context.Context, owner, dayOfWeek, weekStart string) (int64, error) {
	if err := s.check(clearDayInput{DayOfWeek: dayOfWeek, WeekStart: weekStart}); err != nil {
		return 0, err
	}

	deleted, err := s.repo.ClearDay(ctx, owner, dayOfWeek, weekStart)
	if err != nil {
		return 0, fmt.Errorf("очистка дня: %w", err)
	}

	logger.Info("Service: День очищен",
		zap.String("owner", owner),
		zap.String("day", dayOfWeek),
		zap.String("week_start", weekStart),
		zap.Int64("deleted", deleted))
	return deleted, nil
}
