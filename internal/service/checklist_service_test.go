package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

// A nil cache client degrades to misses, so these tests exercise the load
// path directly.
func newChecklistFixture() (*MockChecklistRepository, ChecklistService) {
	checklist := new(MockChecklistRepository)
	svc := NewChecklistService(checklist, nil)
	return checklist, svc
}

func TestChecklistService_ItemByID(t *testing.T) {
	checklist, svc := newChecklistFixture()

	checklist.On("FindItem", mock.Anything, uint(12)).
		Return(&model.ChecklistItem{ID: 12, CategoryID: 3, Text: "Audited financial statements"}, nil)

	item, err := svc.ItemByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, uint(12), item.ID)
	assert.Equal(t, "Audited financial statements", item.Text)
}

func TestChecklistService_ItemByIDNotFound(t *testing.T) {
	checklist, svc := newChecklistFixture()

	checklist.On("FindItem", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ItemByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChecklistService_Categories(t *testing.T) {
	checklist, svc := newChecklistFixture()

	checklist.On("Categories", mock.Anything).
		Return([]model.ChecklistCategory{{ID: 1, Name: "Financial"}, {ID: 2, Name: "Tax"}}, nil)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Financial", categories[0].Name)
}
