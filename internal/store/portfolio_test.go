package store

import (
	"testing"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btcAsset() models.Asset {
	return models.Asset{
		ID:            "btc",
		Ticker:        "BTC",
		CryptoName:    "Bitcoin",
		Amount:        1,
		PurchasePrice: 40000,
		CurrentPrice:  45000,
	}
}

func TestAddAssetThenRemoveLeavesEmpty(t *testing.T) {
	p := NewPortfolio()

	require.NoError(t, p.AddAsset(btcAsset()))
	require.Len(t, p.Assets(), 1)

	require.NoError(t, p.RemoveAsset("btc"))
	assert.Empty(t, p.Assets())
}

func TestAddAssetMergesDuplicateTicker(t *testing.T) {
	p := NewPortfolio()

	require.NoError(t, p.AddAsset(models.Asset{
		ID: "btc", Ticker: "BTC", Amount: 1, PurchasePrice: 40000, CurrentPrice: 45000,
	}))
	require.NoError(t, p.AddAsset(models.Asset{
		ID: "btc-2", Ticker: "BTC", Amount: 3, PurchasePrice: 20000, CurrentPrice: 45000,
	}))

	assets := p.Assets()
	require.Len(t, assets, 1, "el mismo ticker nunca produce filas duplicadas")

	// Promedio ponderado: (1*40000 + 3*20000) / 4 = 25000
	assert.InDelta(t, 4, assets[0].Amount, 1e-9)
	assert.InDelta(t, 25000, assets[0].PurchasePrice, 1e-9)
}

func TestAddAssetRejectsNonPositiveValues(t *testing.T) {
	p := NewPortfolio()

	a := btcAsset()
	a.Amount = 0
	assert.ErrorIs(t, p.AddAsset(a), ErrInvariantViolation)

	a = btcAsset()
	a.PurchasePrice = -5
	assert.ErrorIs(t, p.AddAsset(a), ErrInvariantViolation)

	assert.Empty(t, p.Assets())
}

func TestUpdateAsset(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))

	amount := 2.5
	require.NoError(t, p.UpdateAsset("btc", models.AssetPatch{Amount: &amount}))

	got, ok := p.Asset("btc")
	require.True(t, ok)
	assert.InDelta(t, 2.5, got.Amount, 1e-9)
	assert.InDelta(t, 40000, got.PurchasePrice, 1e-9, "los campos ausentes del patch no cambian")
}

func TestUpdateAssetRejectsNonPositivePatch(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))

	zero := 0.0
	err := p.UpdateAsset("btc", models.AssetPatch{Amount: &zero})
	assert.ErrorIs(t, err, ErrInvariantViolation)

	// El activo sigue intacto: la eliminación nunca es efecto colateral.
	got, ok := p.Asset("btc")
	require.True(t, ok)
	assert.InDelta(t, 1, got.Amount, 1e-9)
}

func TestMutationsOnMissingIDReturnNotFound(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))

	amount := 2.0
	assert.ErrorIs(t, p.UpdateAsset("eth", models.AssetPatch{Amount: &amount}), ErrNotFound)
	assert.ErrorIs(t, p.RemoveAsset("eth"), ErrNotFound)

	// Las entradas no relacionadas quedan intactas.
	require.Len(t, p.Assets(), 1)
}

func TestRemoveAssetClearsSelection(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))
	p.SetSelectedAsset("btc")

	require.NoError(t, p.RemoveAsset("btc"))
	assert.Empty(t, p.SelectedAsset())
}

func TestAddTransactionDoesNotTouchAssets(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))

	p.AddTransaction(models.CryptoTransaction{
		ID:     "tx-1",
		Ticker: "BTC",
		Type:   models.TransactionTypeBuy,
		Amount: 5,
	})

	assets := p.Assets()
	require.Len(t, assets, 1)
	assert.InDelta(t, 1, assets[0].Amount, 1e-9, "registrar una transacción no modifica los activos")
	assert.Len(t, p.Transactions(), 1)
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))

	assets := p.Assets()
	assets[0].Amount = 999

	got, ok := p.Asset("btc")
	require.True(t, ok)
	assert.InDelta(t, 1, got.Amount, 1e-9)
}

func TestClear(t *testing.T) {
	p := NewPortfolio()
	require.NoError(t, p.AddAsset(btcAsset()))
	p.AddTransaction(models.CryptoTransaction{ID: "tx-1"})
	p.SetSelectedAsset("btc")
	p.SetLoading(true)

	p.Clear()

	assert.Empty(t, p.Assets())
	assert.Empty(t, p.Transactions())
	assert.Empty(t, p.SelectedAsset())
	assert.False(t, p.IsLoading())
}
