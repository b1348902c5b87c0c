package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebigilfatih/omt/internal/domain/entity"
)

// counterValue sums the counter samples of family name matching label=value.
func counterValue(t *testing.T, r *Registry, name, label, value string) float64 {
	t.Helper()

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			matched := label == ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					matched = true
				}
			}
			if matched {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.ApplicationSubmitted(entity.StageOne)
	r.ApplicationSubmitted(entity.StageOne)
	r.ApplicationDecided(entity.ApplicationStatusApproved)
	r.ApplicationReopened()
	r.PaymentRecorded(entity.PaymentMethodCash, decimal.RequireFromString("150.50"))
	r.PaymentRecorded(entity.PaymentMethodCash, decimal.RequireFromString("49.50"))
	r.LoginAttempt(false)

	assert.Equal(t, 2.0, counterValue(t, r, "omt_applications_submitted_total", "stage", string(entity.StageOne)))
	assert.Equal(t, 1.0, counterValue(t, r, "omt_applications_decided_total", "status", "APPROVED"))
	assert.Equal(t, 1.0, counterValue(t, r, "omt_applications_reopened_total", "", ""))
	assert.Equal(t, 2.0, counterValue(t, r, "omt_payments_recorded_total", "method", string(entity.PaymentMethodCash)))
	assert.InDelta(t, 200.0, counterValue(t, r, "omt_payments_amount_total", "method", string(entity.PaymentMethodCash)), 0.001)
	assert.Equal(t, 1.0, counterValue(t, r, "omt_admin_login_attempts_total", "success", "false"))
}

func TestRegistry_ZeroAmountNotAdded(t *testing.T) {
	r := NewRegistry()
	r.PaymentRecorded(entity.PaymentMethodPOS, decimal.Zero)

	assert.Equal(t, 1.0, counterValue(t, r, "omt_payments_recorded_total", "method", string(entity.PaymentMethodPOS)))
	assert.Equal(t, 0.0, counterValue(t, r, "omt_payments_amount_total", "method", string(entity.PaymentMethodPOS)))
}
