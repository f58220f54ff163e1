package service

import (
	"context"
	"fmt"
	"math"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/drillbank/drillbank-backend/internal/repository"
)

// DashboardService assembles the user landing view: the question bank by
// subject plus the user's attempt history aggregates.
type DashboardService struct {
	subjectRepo *repository.SubjectRepository
	attemptRepo *repository.AttemptRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(subjectRepo *repository.SubjectRepository, attemptRepo *repository.AttemptRepository) *DashboardService {
	return &DashboardService{subjectRepo: subjectRepo, attemptRepo: attemptRepo}
}

// Dashboard is the landing-view payload.
type Dashboard struct {
	Subjects       []model.SubjectWithCount `json:"subjects"`
	TotalQuestions int                      `json:"total_questions"`
	Attempted      int                      `json:"attempted"`
	Correct        int                      `json:"correct"`
	Incorrect      int                      `json:"incorrect"`
	Accuracy       int                      `json:"accuracy"`
	Improvement    string                   `json:"improvement"`
}

// GetDashboard builds the landing view for one user. Accuracy here is
// over all answers across attempts, not the per-attempt average.
func (s *DashboardService) GetDashboard(ctx context.Context, userID int) (*Dashboard, error) {
	subjects, err := s.subjectRepo.GetAllWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	if subjects == nil {
		subjects = []model.SubjectWithCount{}
	}

	totalQuestions := 0
	for _, sub := range subjects {
		totalQuestions += sub.QuestionCount
	}

	stats, err := s.attemptRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("attempt stats: %w", err)
	}

	answered := stats.Correct + stats.Incorrect
	accuracy := int(math.RoundToEven(100 * float64(stats.Correct) / float64(max(answered, 1))))

	improvement := "Keep practicing to build momentum."
	if stats.Attempted >= 3 {
		improvement = "Stable improvement noted."
	}

	return &Dashboard{
		Subjects:       subjects,
		TotalQuestions: totalQuestions,
		Attempted:      stats.Attempted,
		Correct:        stats.Correct,
		Incorrect:      stats.Incorrect,
		Accuracy:       accuracy,
		Improvement:    improvement,
	}, nil
}
