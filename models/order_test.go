package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range ValidOrderStatuses {
		assert.True(t, IsValidStatus(status), "status %q should be accepted", status)
	}

	// Declared in the enum but unreachable through the API
	assert.False(t, IsValidStatus(StatusArchived))

	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus("Quote"))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "customers", Customer{}.TableName())
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_images", OrderImage{}.TableName())
}
