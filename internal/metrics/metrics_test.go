package metrics

import (
	"math"
	"testing"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetValue(t *testing.T) {
	tests := []struct {
		name    string
		asset   models.Asset
		want    float64
		wantErr error
	}{
		{
			name:  "valor básico",
			asset: models.Asset{Amount: 2, CurrentPrice: 150},
			want:  300,
		},
		{
			name:  "cantidad cero",
			asset: models.Asset{Amount: 0, CurrentPrice: 150},
			want:  0,
		},
		{
			name:    "cantidad negativa",
			asset:   models.Asset{Amount: -1, CurrentPrice: 150},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "precio NaN",
			asset:   models.Asset{Amount: 1, CurrentPrice: math.NaN()},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "precio infinito",
			asset:   models.Asset{Amount: 1, CurrentPrice: math.Inf(1)},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssetValue(tt.asset)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestProfitLoss(t *testing.T) {
	tests := []struct {
		name  string
		asset models.Asset
		want  float64
	}{
		{
			name:  "ganancia",
			asset: models.Asset{Amount: 2, PurchasePrice: 100, CurrentPrice: 150},
			want:  100,
		},
		{
			name:  "pérdida",
			asset: models.Asset{Amount: 5, PurchasePrice: 200, CurrentPrice: 150},
			want:  -250,
		},
		{
			name:  "punto de equilibrio",
			asset: models.Asset{Amount: 3, PurchasePrice: 100, CurrentPrice: 100},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProfitLoss(tt.asset)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestProfitLossInvalidInput(t *testing.T) {
	_, err := ProfitLoss(models.Asset{Amount: 1, PurchasePrice: -5, CurrentPrice: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReturnPercentage(t *testing.T) {
	tests := []struct {
		name  string
		asset models.Asset
		want  float64
	}{
		{
			name:  "ganancia del 50%",
			asset: models.Asset{PurchasePrice: 100, CurrentPrice: 150},
			want:  50,
		},
		{
			name:  "pérdida del 25%",
			asset: models.Asset{PurchasePrice: 200, CurrentPrice: 150},
			want:  -25,
		},
		{
			name:  "sin cambio",
			asset: models.Asset{PurchasePrice: 80, CurrentPrice: 80},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReturnPercentage(tt.asset)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestReturnPercentageDivisionByZero(t *testing.T) {
	_, err := ReturnPercentage(models.Asset{PurchasePrice: 0, CurrentPrice: 150})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPortfolioTotals(t *testing.T) {
	assets := []models.Asset{
		{Ticker: "BTC", Amount: 2, PurchasePrice: 100, CurrentPrice: 150},
		{Ticker: "ETH", Amount: 5, PurchasePrice: 200, CurrentPrice: 150},
	}

	totals, err := PortfolioTotals(assets)
	require.NoError(t, err)

	// 2*150 + 5*150 = 1050; ganancia 100 - 250 = -150
	assert.InDelta(t, 1050, totals.TotalValue, 1e-9)
	assert.InDelta(t, -150, totals.TotalProfitLoss, 1e-9)
	assert.InDelta(t, -150.0/1050.0*100, totals.ProfitLossPercentage, 1e-9)
}

func TestPortfolioTotalsEmpty(t *testing.T) {
	totals, err := PortfolioTotals(nil)
	require.NoError(t, err)

	assert.Zero(t, totals.TotalValue)
	assert.Zero(t, totals.TotalProfitLoss)
	assert.Zero(t, totals.ProfitLossPercentage)
}

func TestPortfolioTotalsPropagatesInvalidInput(t *testing.T) {
	assets := []models.Asset{
		{Ticker: "BTC", Amount: 1, PurchasePrice: 100, CurrentPrice: 150},
		{Ticker: "ETH", Amount: math.NaN(), PurchasePrice: 200, CurrentPrice: 150},
	}
	_, err := PortfolioTotals(assets)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllocation(t *testing.T) {
	assets := []models.Asset{
		{ID: "btc", Ticker: "BTC", Amount: 1, PurchasePrice: 100, CurrentPrice: 300},
		{ID: "eth", Ticker: "ETH", Amount: 2, PurchasePrice: 50, CurrentPrice: 50},
	}

	allocations, err := Allocation(assets)
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.Equal(t, "btc", allocations[0].AssetID)
	assert.InDelta(t, 300, allocations[0].Value, 1e-9)
	assert.InDelta(t, 75, allocations[0].Percentage, 1e-9)
	assert.InDelta(t, 25, allocations[1].Percentage, 1e-9)

	var sum float64
	for _, a := range allocations {
		sum += a.Percentage
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestAllocationZeroTotal(t *testing.T) {
	assets := []models.Asset{
		{ID: "btc", Ticker: "BTC", Amount: 0, PurchasePrice: 100, CurrentPrice: 300},
	}

	allocations, err := Allocation(assets)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Zero(t, allocations[0].Percentage)
}
