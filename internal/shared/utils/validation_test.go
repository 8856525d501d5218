package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/shared/errors"
)

type sampleTicketRequest struct {
	ItemName     string `json:"item_name" validate:"required,max=200"`
	Quantity     int    `json:"quantity" validate:"gte=1"`
	ReceivedDate string `json:"received_date" validate:"required,datetime=2006-01-02"`
	ReviewerIDs  []uint `json:"reviewer_ids" validate:"min=1,unique"`
}

func TestValidateStruct(t *testing.T) {
	valid := sampleTicketRequest{
		ItemName:     "Laptop",
		Quantity:     2,
		ReceivedDate: "2025-01-31",
		ReviewerIDs:  []uint{4},
	}
	require.NoError(t, ValidateStruct(valid))

	invalid := sampleTicketRequest{Quantity: 0, ReceivedDate: "31/01/2025", ReviewerIDs: []uint{1, 1}}
	err := ValidateStruct(invalid)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	details := errors.GetAppError(err).Details
	assert.Contains(t, details, "item_name is required")
	assert.Contains(t, details, "quantity must be greater than or equal to 1")
	assert.Contains(t, details, "received_date must be a date in format 2006-01-02")
	assert.Contains(t, details, "reviewer_ids must not contain duplicates")
}
