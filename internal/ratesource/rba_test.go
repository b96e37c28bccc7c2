package ratesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cashRatePage = `<!DOCTYPE html>
<html><body>
<table id="datatable" class="table-linear table-numeric">
  <thead><tr><th>Effective Date</th><th>Change % points</th><th>Cash rate target %</th><th>Related Documents</th></tr></thead>
  <tbody>
    <tr><th scope="row">6 Nov
      2024</th><td>0.00</td><td>4.35</td><td><a href="#">Statement</a></td></tr>
    <tr><th scope="row">8 Nov 2023</th><td>+0.25</td><td>4.35</td><td></td></tr>
  </tbody>
</table>
</body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRBAResolver_ParsesLatestRow(t *testing.T) {
	srv := serve(t, http.StatusOK, cashRatePage)
	r := NewRBAResolver(srv.URL, srv.Client(), nil)
	fixed := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	q, err := r.CurrentCashRate(context.Background())
	require.NoError(t, err)

	assert.True(t, q.CashRatePercent.Equal(decimal.NewFromFloat(4.35)))
	assert.Equal(t, civil.Date{Year: 2024, Month: time.November, Day: 6}, q.EffectiveDate)
	assert.Equal(t, RBASourceName, q.Source)
	assert.Equal(t, fixed, q.RetrievedAt)
}

func TestRBAResolver_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "oops", "status 500"},
		{"no table", http.StatusOK, "<html><body><p>maintenance</p></body></html>", "cash rate table not found"},
		{"short row", http.StatusOK, `<table id="datatable"><tbody><tr><td>6 Nov 2024</td></tr></tbody></table>`, "expected at least 3 cells"},
		{"bad date", http.StatusOK, `<table id="datatable"><tbody><tr><td>soon</td><td>0</td><td>4.35</td></tr></tbody></table>`, "failed to parse effective date"},
		{"bad rate", http.StatusOK, `<table id="datatable"><tbody><tr><td>6 Nov 2024</td><td>0</td><td>n/a</td></tr></tbody></table>`, "failed to parse cash rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			_, err := NewRBAResolver(srv.URL, srv.Client(), nil).CurrentCashRate(context.Background())
			assert.ErrorIs(t, err, ErrRateUnavailable)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRBAResolver_Unreachable(t *testing.T) {
	srv := serve(t, http.StatusOK, cashRatePage)
	url := srv.URL
	srv.Close()

	_, err := NewRBAResolver(url, nil, nil).CurrentCashRate(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestRBAResolver_HonoursContext(t *testing.T) {
	srv := serve(t, http.StatusOK, cashRatePage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRBAResolver(srv.URL, srv.Client(), nil).CurrentCashRate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
