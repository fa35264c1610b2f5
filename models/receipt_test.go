package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLegalReceiptTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		legal bool
	}{
		{"pending to ordered", ReceiptPending, ReceiptOrdered, true},
		{"ordered to completed", ReceiptOrdered, ReceiptCompleted, true},
		{"ordered to canceled", ReceiptOrdered, ReceiptCanceled, true},
		{"pending to completed", ReceiptPending, ReceiptCompleted, false},
		{"pending to canceled", ReceiptPending, ReceiptCanceled, false},
		{"completed is terminal", ReceiptCompleted, ReceiptCanceled, false},
		{"canceled is terminal", ReceiptCanceled, ReceiptOrdered, false},
		{"unknown source", "Draft", ReceiptOrdered, false},
		{"unknown target", ReceiptPending, "Shipped", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.legal, IsLegalReceiptTransition(tt.from, tt.to))
		})
	}
}
