package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

const (
	StrongAreaMinScore = 80
	GrowthAreaMaxScore = 60
	maxAreas           = 3
)

// PersonalCompatibility is a participant's average personal percentage over the
// quizzes where they were not the reference. QuizCount 0 means "nothing to
// compare yet", which is not the same as an average of 0 over real quizzes.
type PersonalCompatibility struct {
	UserID    string `json:"user_id"`
	Average   int    `json:"average"`
	QuizCount int    `json:"quiz_count"`
}

// Area is one quiz surfaced as a strongest or growth area.
type Area struct {
	QuizID string `json:"quiz_id"`
	Title  string `json:"title"`
	Score  int    `json:"score"`
}

// CoupleInsights rolls a couple's quiz results up into a single view.
type CoupleInsights struct {
	CoupleID             string                  `json:"couple_id"`
	OverallCompatibility int                     `json:"overall_compatibility"`
	QuizCount            int                     `json:"quiz_count"`
	StrongestAreas       []Area                  `json:"strongest_areas"`
	GrowthAreas          []Area                  `json:"growth_areas"`
	Partners             []PersonalCompatibility `json:"partners"`
}

// Personal computes userID's personal compatibility over results.
func Personal(userID string, results []model.QuizResult) PersonalCompatibility {
	pc := PersonalCompatibility{UserID: userID}

	sum := 0
	for i := range results {
		r := &results[i]
		percent, ok := r.PercentFor(userID)
		if !ok || r.ReferenceUserID == userID {
			continue
		}
		sum += percent
		pc.QuizCount++
	}

	pc.Average = roundedMean(sum, pc.QuizCount)
	return pc
}

// BuildCoupleInsights aggregates the couple's results. titles maps quiz ids to
// display titles; a missing title falls back to the quiz id.
func BuildCoupleInsights(couple *model.Couple, results []model.QuizResult, titles map[string]string) CoupleInsights {
	ordered := make([]model.QuizResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].UpdatedAt.After(ordered[j].UpdatedAt)
	})

	insights := CoupleInsights{
		CoupleID:       couple.ID,
		QuizCount:      len(ordered),
		StrongestAreas: []Area{},
		GrowthAreas:    []Area{},
	}

	sum := 0
	for _, r := range ordered {
		sum += r.Score

		title := titles[r.QuizID]
		if title == "" {
			title = r.QuizID
		}
		area := Area{QuizID: r.QuizID, Title: title, Score: r.Score}

		switch {
		case r.Score >= StrongAreaMinScore && len(insights.StrongestAreas) < maxAreas:
			insights.StrongestAreas = append(insights.StrongestAreas, area)
		case r.Score < GrowthAreaMaxScore && len(insights.GrowthAreas) < maxAreas:
			insights.GrowthAreas = append(insights.GrowthAreas, area)
		}
	}
	insights.OverallCompatibility = roundedMean(sum, len(ordered))

	insights.Partners = []PersonalCompatibility{
		Personal(couple.User1ID, ordered),
		Personal(couple.User2ID, ordered),
	}
	return insights
}

// roundedMean rounds sum/count half away from zero; 0 when count is 0.
func roundedMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	mean := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count)))
	return int(mean.Round(0).IntPart())
}
