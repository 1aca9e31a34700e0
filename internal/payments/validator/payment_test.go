package validator

import (
	"testing"

	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateIntent(t *testing.T) {
	v := NewPaymentValidator(logger.Discard())

	tests := []struct {
		name    string
		price   float64
		wantErr bool
	}{
		{name: "positive", price: 25.5},
		{name: "zero", price: 0, wantErr: true},
		{name: "negative", price: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateIntent(&model.PaymentIntentRequest{Price: tt.price})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateConfirmation(t *testing.T) {
	v := NewPaymentValidator(logger.Discard())

	assert.NoError(t, v.ValidateConfirmation(&model.PaymentConfirmation{TransactionID: "tx123"}))
	assert.Error(t, v.ValidateConfirmation(&model.PaymentConfirmation{}))
}
