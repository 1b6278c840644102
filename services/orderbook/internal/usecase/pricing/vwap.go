// Package pricing computes the price a hypothetical fill would achieve against resting liquidity.
package pricing

import (
	"sort"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// VWAP returns the volume weighted average price for filling amount on side against orders.
//
// Only orders on the opposite side are consumed. A buy walks offers from the cheapest up,
// a sell walks bids from the most expensive down. Equal prices are consumed oldest first,
// then by id. The last order touched may be consumed partially. The book is never mutated.
func VWAP(orders []v1.Order, side v1.Side, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, v1.ErrUnsatisfiableLiquidity
	}

	levels := Levels(orders, side)

	remaining := amount
	cost := decimal.Zero
	for _, o := range levels {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(remaining, o.Amount)
		cost = cost.Add(take.Mul(o.Price))
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return decimal.Zero, v1.ErrUnsatisfiableLiquidity
	}

	return cost.Div(amount), nil
}

// Levels returns a copy of the orders a request on side trades against, in consumption order.
func Levels(orders []v1.Order, side v1.Side) []v1.Order {
	want := side.Opposite()

	out := make([]v1.Order, 0, len(orders))
	for _, o := range orders {
		if o.Side == want {
			out = append(out, o)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := a.Price.Cmp(b.Price); c != 0 {
			if side == v1.SideBuy {
				return c < 0
			}
			return c > 0
		}
		if !a.EffectiveTime.Equal(b.EffectiveTime) {
			return a.EffectiveTime.Before(b.EffectiveTime)
		}
		return a.ID.String() < b.ID.String()
	})

	return out
}

// Liquidity returns the total amount resting on the side a request on side trades against.
func Liquidity(orders []v1.Order, side v1.Side) decimal.Decimal {
	want := side.Opposite()
	total := decimal.Zero
	for _, o := range orders {
		if o.Side == want {
			total = total.Add(o.Amount)
		}
	}
	return total
}
