package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReferenceSource records how the reference participant was chosen.
const (
	ReferenceSourceAnsweredAt = "answered_at"
	ReferenceSourceTieBreak   = "tie_break"
)

// ComparisonRecord is one question's comparison inside a result.
// UserAnswer belongs to participant 1 (the couple's user1), PartnerAnswer to participant 2.
type ComparisonRecord struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    int    `json:"user_answer"`
	PartnerAnswer int    `json:"partner_answer"`
	Difference    int    `json:"difference"`
}

// QuizResult is the derived outcome of one quiz for one couple, upserted on (quiz_id, couple_id).
type QuizResult struct {
	ID              uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID          string                                `gorm:"column:quiz_id;size:64;not null;uniqueIndex:uq_quiz_results_quiz_couple,priority:1" json:"quiz_id"`
	CoupleID        string                                `gorm:"column:couple_id;size:64;not null;uniqueIndex:uq_quiz_results_quiz_couple,priority:2;index" json:"couple_id"`
	User1ID         string                                `gorm:"column:user1_id;size:64;not null" json:"user1_id"`
	User2ID         string                                `gorm:"column:user2_id;size:64;not null" json:"user2_id"`
	Score           int                                   `gorm:"not null" json:"score"`
	User1Percent    int                                   `gorm:"column:user1_percent;not null" json:"user1_percent"`
	User2Percent    int                                   `gorm:"column:user2_percent;not null" json:"user2_percent"`
	ReferenceUserID string                                `gorm:"column:reference_user_id;size:64" json:"reference_user_id"`
	ReferenceSource string                                `gorm:"column:reference_source;size:20" json:"reference_source"`
	QuestionCount   int                                   `gorm:"column:question_count;not null;default:0" json:"question_count"`
	Strengths       datatypes.JSONSlice[ComparisonRecord] `gorm:"type:json" json:"strengths"`
	Weaknesses      datatypes.JSONSlice[ComparisonRecord] `gorm:"type:json" json:"weaknesses"`
	CreatedAt       time.Time                             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                             `gorm:"autoUpdateTime;index" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}

// PercentFor returns the personal percentage of userID, and false if the
// user is not one of the result's participants.
func (r *QuizResult) PercentFor(userID string) (int, bool) {
	switch userID {
	case r.User1ID:
		return r.User1Percent, true
	case r.User2ID:
		return r.User2Percent, true
	default:
		return 0, false
	}
}
