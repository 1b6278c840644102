//go:build integration

package orderbook

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	helper *postgresql.TestHelper
	repo   OrderBookRepository
	ctx    context.Context
}

// SetupSuite runs once before all tests
func (suite *RepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../migrations")
	require.NoError(suite.T(), err)

	suite.helper = postgresql.NewTestHelperWithMigrations(suite.T(), migrationsPath)
	suite.repo = NewRepository(suite.helper.GetClient(), logger.NewNopLogger())
}

// SetupTest runs before each test
func (suite *RepositoryTestSuite) SetupTest() {
	suite.helper.CleanupTables()
}

func newOrder(side v1.Side, price, amount string) v1.Order {
	return v1.Order{
		ID:            uuid.New(),
		Price:         decimal.RequireFromString(price),
		Amount:        decimal.RequireFromString(amount),
		Side:          side,
		EffectiveTime: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (suite *RepositoryTestSuite) asset(symbol string) v1.AssetDefinition {
	return v1.AssetDefinition{Class: v1.AssetClassCoinPair, Symbol: symbol}
}

func (suite *RepositoryTestSuite) TestGetBook_NotFound() {
	_, err := suite.repo.GetBook(suite.ctx, suite.asset("NOPE"))
	assert.ErrorIs(suite.T(), err, v1.ErrBookNotFound)
}

func (suite *RepositoryTestSuite) TestAddOrder_CreatesBookOnFirstWrite() {
	asset := suite.asset("BTCUSD")
	first := newOrder(v1.SideSell, "30000", "2")
	second := newOrder(v1.SideBuy, "29000", "1.5")

	require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, first))
	require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, second))

	book, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), book.Orders, 2)
	assert.Equal(suite.T(), first.ID, book.Orders[0].ID)
	assert.Equal(suite.T(), second.ID, book.Orders[1].ID)
	assert.True(suite.T(), second.Amount.Equal(book.Orders[1].Amount))
}

func (suite *RepositoryTestSuite) TestAddOrder_DuplicateID() {
	asset := suite.asset("ETHUSD")
	o := newOrder(v1.SideSell, "3000", "1")

	require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, o))
	err := suite.repo.AddOrder(suite.ctx, asset, o)
	assert.ErrorIs(suite.T(), err, v1.ErrDuplicateOrderID)

	book, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), book.Orders, 1)
}

func (suite *RepositoryTestSuite) TestAddOrder_ConcurrentFirstWriteCreatesOneBook() {
	asset := suite.asset("SOLUSD")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = suite.repo.AddOrder(suite.ctx, asset, newOrder(v1.SideSell, "100", "1"))
		}(i)
	}
	wg.Wait()

	// both may upsert a fresh book (last writer wins); an append landing on the winner's book either succeeds or reports the store failure
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(suite.T(), err, v1.ErrStoreUnavailable)
		}
	}

	var count int
	err := suite.helper.GetClient().
		QueryRow(suite.ctx, `SELECT COUNT(*) FROM order_books WHERE asset_class = $1 AND symbol = $2`, "coin_pair", "SOLUSD").
		Scan(&count)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	book, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), book.Orders)
}

func (suite *RepositoryTestSuite) TestModifyOrderInPlace() {
	asset := suite.asset("BTCUSD")
	a := newOrder(v1.SideSell, "30000", "1")
	b := newOrder(v1.SideSell, "31000", "2")
	c := newOrder(v1.SideBuy, "29000", "3")
	for _, o := range []v1.Order{a, b, c} {
		require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, o))
	}

	before, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)

	modified := b
	modified.Price = decimal.RequireFromString("30500")
	modified.Amount = decimal.RequireFromString("0.5")
	modified.Side = v1.SideBuy
	modified.EffectiveTime = b.EffectiveTime.Add(time.Minute)
	require.NoError(suite.T(), suite.repo.ModifyOrderInPlace(suite.ctx, asset, modified))

	after, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), after.Orders, 3)
	assert.Equal(suite.T(), before.Orders[0], after.Orders[0])
	assert.Equal(suite.T(), before.Orders[2], after.Orders[2])
	assert.Equal(suite.T(), b.ID, after.Orders[1].ID)
	assert.True(suite.T(), modified.Price.Equal(after.Orders[1].Price))
	assert.Equal(suite.T(), v1.SideBuy, after.Orders[1].Side)
}

func (suite *RepositoryTestSuite) TestModifyOrderInPlace_Errors() {
	err := suite.repo.ModifyOrderInPlace(suite.ctx, suite.asset("NOPE"), newOrder(v1.SideBuy, "1", "1"))
	assert.ErrorIs(suite.T(), err, v1.ErrBookNotFound)

	asset := suite.asset("BTCUSD")
	require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, newOrder(v1.SideBuy, "1", "1")))
	err = suite.repo.ModifyOrderInPlace(suite.ctx, asset, newOrder(v1.SideBuy, "1", "1"))
	assert.ErrorIs(suite.T(), err, v1.ErrOrderNotFound)
}

func (suite *RepositoryTestSuite) TestRemoveOrder_RoundTrip() {
	asset := suite.asset("BTCUSD")
	keep := newOrder(v1.SideSell, "30000", "1")
	require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, keep))

	before, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)

	tmp := newOrder(v1.SideBuy, "29000", "1")
	require.NoError(suite.T(), suite.repo.AddOrder(suite.ctx, asset, tmp))
	require.NoError(suite.T(), suite.repo.RemoveOrder(suite.ctx, asset, tmp.ID))

	after, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), before.Orders, after.Orders)

	require.NoError(suite.T(), suite.repo.RemoveOrder(suite.ctx, asset, keep.ID))
	empty, err := suite.repo.GetBook(suite.ctx, asset)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), empty.Orders)

	err = suite.repo.RemoveOrder(suite.ctx, asset, keep.ID)
	assert.ErrorIs(suite.T(), err, v1.ErrOrderNotFound)

	err = suite.repo.RemoveOrder(suite.ctx, suite.asset("NOPE"), keep.ID)
	assert.ErrorIs(suite.T(), err, v1.ErrBookNotFound)
}

func TestRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
