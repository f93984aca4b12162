package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/classfin-service/internal/app/registration/batch"
	"github.com/light-bringer/classfin-service/internal/config"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
	"github.com/light-bringer/classfin-service/internal/services"
	"github.com/light-bringer/classfin-service/tests/testutil"
)

// Services bundles the wired queries with the clock driving them.
type Services struct {
	*services.ServiceOptions
	Clock *clock.MockClock
}

// setupTest builds the batch and wires every finance query over it.
func setupTest(t *testing.T, doc batch.Document) *Services {
	t.Helper()

	src, err := batch.Build(doc, nil)
	require.NoError(t, err, "failed to build batch")

	clk := testutil.NewMockClock()
	cfg := &config.Config{VATPercent: 7, LogLevel: "info", Timezone: "UTC"}

	opts, err := services.NewServiceOptionsWithSource(cfg, clk, src)
	require.NoError(t, err, "failed to wire services")

	return &Services{ServiceOptions: opts, Clock: clk}
}
