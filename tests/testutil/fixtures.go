package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/classfin-service/internal/app/registration/batch"
	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

// SampleBatch is a small registration batch with known totals as of ReportDate:
//
//	gross 11000.00, discounts 2200.00, net 8800.00, VAT 616.00, total 9416.00
//	cash 1926.00, outstanding 7490.00, one overdue line of 6420.00 (14 days)
const SampleBatch = `
classes:
  - id: go-101
    title: Go Fundamentals
    date: "2025-06-20"
    price: "1000"
  - id: k8s
    title: Kubernetes
    date: "2025-07-05"
    price: "2000"
promotions:
  - id: early
    name: Early bird
    kind: percentage
    value: "10"
  - id: team
    name: Team pack
    kind: buy_x_get_y
    value: "3"
  - id: old
    name: Spring sale
    kind: fixed
    value: "100"
    active: false
lines:
  - id: l1
    class: go-101
    company: Acme
    channel: Facebook
    type: corp
    seats: 2
    promotions: [early]
    payment_status: paid
    payment_date: "2025-06-02"
  - id: l2
    class: go-101
    attendee: Somchai
  - id: l3
    class: k8s
    company: Beta Ltd
    channel: Google
    type: corp
    seats: 4
    promotions: [team]
    due_date: "2025-06-01"
    document_status: qt
`

// LoadSample loads SampleBatch into an in-memory source.
func LoadSample(t *testing.T) *batch.Source {
	t.Helper()
	src, err := batch.Load(strings.NewReader(SampleBatch), nil)
	require.NoError(t, err, "failed to load sample batch")
	return src
}

// WriteSample writes SampleBatch to a temp file and returns its path.
func WriteSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(SampleBatch), 0o600))
	return path
}

// ErrSourceDown is returned by FailingSource.
var ErrSourceDown = errors.New("source unavailable")

// FailingSource is a LineSource whose reads always fail.
type FailingSource struct{}

func (FailingSource) Lines(context.Context) ([]*domain.RegistrationLine, error) {
	return nil, ErrSourceDown
}

func (FailingSource) Promotions(context.Context) ([]*domain.Promotion, error) {
	return nil, ErrSourceDown
}
