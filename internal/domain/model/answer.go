package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one participant's response to one question of a quiz.
type Answer struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID      string     `gorm:"column:quiz_id;size:64;not null;index:idx_quiz_answers_quiz_user,priority:1;index:idx_quiz_answers_quiz_couple,priority:1" json:"quiz_id"`
	QuestionID  string     `gorm:"column:question_id;size:64;not null" json:"question_id"`
	UserID      string     `gorm:"column:user_id;size:64;not null;index:idx_quiz_answers_quiz_user,priority:2" json:"user_id"`
	CoupleID    string     `gorm:"column:couple_id;size:64;not null;index:idx_quiz_answers_quiz_couple,priority:2" json:"couple_id"`
	AnswerValue int        `gorm:"column:answer_value;not null" json:"answer_value"`
	AnsweredAt  *time.Time `gorm:"column:answered_at" json:"answered_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Answer) TableName() string {
	return "quiz_answers"
}

// QuizCouple identifies a (quiz, couple) pair that has answers to score.
type QuizCouple struct {
	QuizID   string `json:"quiz_id"`
	CoupleID string `json:"couple_id"`
}
