package model

import "time"

// Quiz is a named, ordered set of questions answered on a 1-3 scale.
type Quiz struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id" yaml:"id"`
	Title       string     `gorm:"size:255;not null" json:"title" yaml:"title"`
	Category    string     `gorm:"size:100" json:"category,omitempty" yaml:"category"`
	Description string     `gorm:"type:text" json:"description,omitempty" yaml:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at" yaml:"-"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty" yaml:"questions"`
}

// TableName specifies the table name for GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// Question belongs to exactly one quiz; Position gives its display order.
type Question struct {
	ID       string `gorm:"primaryKey;size:64" json:"id" yaml:"id"`
	QuizID   string `gorm:"column:quiz_id;size:64;not null;index" json:"quiz_id" yaml:"-"`
	Content  string `gorm:"type:text;not null" json:"content" yaml:"content"`
	Position int    `gorm:"not null;default:0" json:"position" yaml:"-"`
}

// TableName specifies the table name for GORM
func (Question) TableName() string {
	return "quiz_questions"
}
