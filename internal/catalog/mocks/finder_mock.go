package mocks

import (
	"context"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// MockCandidateFinder はCandidateFinderのモック実装です
type MockCandidateFinder struct {
	Candidates []models.Candidate
	Error      error
}

// Find は登録された判定対象をそのまま返します
func (m *MockCandidateFinder) Find(ctx context.Context, root string) ([]models.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Candidates, nil
}
