// Package catalog loads the quiz catalog from a YAML seed file.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type seedFile struct {
	Quizzes []model.Quiz `yaml:"quizzes"`
}

// Load reads and validates a seed file
func Load(path string) ([]model.Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	quizzes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return quizzes, nil
}

// Decode parses seed YAML. Question ids must be unique across the whole catalog.
func Decode(r io.Reader) ([]model.Quiz, error) {
	var seed seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	quizIDs := make(map[string]struct{}, len(seed.Quizzes))
	questionIDs := make(map[string]string)
	for i := range seed.Quizzes {
		quiz := &seed.Quizzes[i]
		if quiz.ID == "" || quiz.Title == "" {
			return nil, fmt.Errorf("quiz #%d needs an id and a title", i+1)
		}
		if _, dup := quizIDs[quiz.ID]; dup {
			return nil, fmt.Errorf("quiz %s is defined twice", quiz.ID)
		}
		quizIDs[quiz.ID] = struct{}{}

		if len(quiz.Questions) == 0 {
			return nil, fmt.Errorf("quiz %s has no questions", quiz.ID)
		}
		for j := range quiz.Questions {
			q := &quiz.Questions[j]
			if q.ID == "" || q.Content == "" {
				return nil, fmt.Errorf("quiz %s question #%d needs an id and content", quiz.ID, j+1)
			}
			if owner, dup := questionIDs[q.ID]; dup {
				return nil, fmt.Errorf("question %s is used by quiz %s and quiz %s", q.ID, owner, quiz.ID)
			}
			questionIDs[q.ID] = quiz.ID
			q.QuizID = quiz.ID
			q.Position = j + 1
		}
	}
	return seed.Quizzes, nil
}

// Seed writes every quiz through writer, replacing existing questions
func Seed(ctx context.Context, writer repository.CatalogWriter, quizzes []model.Quiz, logger *zap.Logger) error {
	for i := range quizzes {
		if err := writer.SaveQuiz(ctx, &quizzes[i]); err != nil {
			return fmt.Errorf("failed to seed quiz %s: %w", quizzes[i].ID, err)
		}
	}
	logger.Info("Quiz catalog seeded", zap.Int("quizzes", len(quizzes)))
	return nil
}
