package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,250.50", FormatAmount(1250.5))
	assert.Equal(t, "0.99", FormatAmount(0.99))
	assert.Equal(t, "1,000,000.00", FormatAmount(1e6))
}
