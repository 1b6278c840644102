package orderbook

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

const (
	selectBookQuery = `SELECT orders FROM order_books WHERE asset_class = $1 AND symbol = $2`

	containsOrderQuery = `SELECT orders @> jsonb_build_array(jsonb_build_object('id', $3::text)) FROM order_books WHERE asset_class = $1 AND symbol = $2`

	appendOrderQuery = `UPDATE order_books SET orders = orders || jsonb_build_array($3::jsonb), updated_at = NOW() ` +
		`WHERE asset_class = $1 AND symbol = $2 AND NOT orders @> jsonb_build_array(jsonb_build_object('id', $4::text))`

	upsertBookQuery = `INSERT INTO order_books (asset_class, symbol, orders, created_at, updated_at) ` +
		`VALUES ($1, $2, jsonb_build_array($3::jsonb), NOW(), NOW()) ` +
		`ON CONFLICT (asset_class, symbol) DO UPDATE SET orders = EXCLUDED.orders, updated_at = NOW()`

	replaceOrderQuery = `UPDATE order_books SET orders = (` +
		`SELECT jsonb_agg(CASE WHEN elem->>'id' = $3::text THEN $4::jsonb ELSE elem END ORDER BY idx) ` +
		`FROM jsonb_array_elements(orders) WITH ORDINALITY AS t(elem, idx)), updated_at = NOW() ` +
		`WHERE asset_class = $1 AND symbol = $2 AND orders @> jsonb_build_array(jsonb_build_object('id', $3::text))`

	removeOrderQuery = `UPDATE order_books SET orders = COALESCE((` +
		`SELECT jsonb_agg(elem ORDER BY idx) ` +
		`FROM jsonb_array_elements(orders) WITH ORDINALITY AS t(elem, idx) WHERE elem->>'id' <> $3::text), '[]'::jsonb), updated_at = NOW() ` +
		`WHERE asset_class = $1 AND symbol = $2 AND orders @> jsonb_build_array(jsonb_build_object('id', $3::text))`
)

// Repository is the repository for order books.
type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetBook gets the book for an asset.
func (r *repository) GetBook(ctx context.Context, asset v1.AssetDefinition) (*v1.OrderBook, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, selectBookQuery, string(asset.Class), asset.Symbol).Scan(&raw)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, v1.ErrBookNotFound
		}
		return nil, errors.TracerFromError(err)
	}

	orders, err := unmarshalOrders(raw)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return &v1.OrderBook{
		Asset:  asset,
		Orders: orders,
	}, nil
}

// AddOrder appends an order to the asset's book, creating the book on first write.
func (r *repository) AddOrder(ctx context.Context, asset v1.AssetDefinition, order v1.Order) error {
	doc, err := marshalOrder(order)
	if err != nil {
		return errors.TracerFromError(err)
	}

	id := order.ID.String()
	cmd, err := r.db.Exec(ctx, appendOrderQuery, string(asset.Class), asset.Symbol, doc, id)
	if err != nil {
		return errors.TracerFromError(err)
	}

	if cmd.RowsAffected() > 0 {
		r.logger.DebugContext(ctx, "Appended order", logger.Field{
			Key:   "asset",
			Value: asset.String(),
		})
		return nil
	}

	exists, hasOrder, err := r.containsOrder(ctx, asset, id)
	if err != nil {
		return err
	}

	if exists {
		if hasOrder {
			return v1.ErrDuplicateOrderID
		}
		return v1.NewStoreUnavailableError("Order didn't add despite the document already existing")
	}

	cmd, err = r.db.Exec(ctx, upsertBookQuery, string(asset.Class), asset.Symbol, doc)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.InfoContext(ctx, "Created order book", logger.Field{
		Key:   "asset",
		Value: asset.String(),
	}, logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// ModifyOrderInPlace replaces the order with the same id, keeping its position in the book.
func (r *repository) ModifyOrderInPlace(ctx context.Context, asset v1.AssetDefinition, order v1.Order) error {
	doc, err := marshalOrder(order)
	if err != nil {
		return errors.TracerFromError(err)
	}

	id := order.ID.String()
	cmd, err := r.db.Exec(ctx, replaceOrderQuery, string(asset.Class), asset.Symbol, id, doc)
	if err != nil {
		return errors.TracerFromError(err)
	}

	if cmd.RowsAffected() > 0 {
		return nil
	}

	return r.disambiguate(ctx, asset, id)
}

// RemoveOrder removes the order with the given id from the book.
func (r *repository) RemoveOrder(ctx context.Context, asset v1.AssetDefinition, orderID uuid.UUID) error {
	id := orderID.String()
	cmd, err := r.db.Exec(ctx, removeOrderQuery, string(asset.Class), asset.Symbol, id)
	if err != nil {
		return errors.TracerFromError(err)
	}

	if cmd.RowsAffected() > 0 {
		return nil
	}

	return r.disambiguate(ctx, asset, id)
}

// disambiguate explains why a conditional update on an existing order touched no rows.
func (r *repository) disambiguate(ctx context.Context, asset v1.AssetDefinition, id string) error {
	exists, hasOrder, err := r.containsOrder(ctx, asset, id)
	if err != nil {
		return err
	}

	switch {
	case !exists:
		return v1.ErrBookNotFound
	case !hasOrder:
		return v1.ErrOrderNotFound
	default:
		r.logger.WarnContext(ctx, "Conditional update matched no rows for a present order", logger.Field{
			Key:   "asset",
			Value: asset.String(),
		}, logger.Field{
			Key:   "order_id",
			Value: id,
		})
		return v1.NewStoreUnavailableError("Order was not updated despite existing in OrderBook")
	}
}

func (r *repository) containsOrder(ctx context.Context, asset v1.AssetDefinition, id string) (bool, bool, error) {
	var hasOrder bool
	err := r.db.QueryRow(ctx, containsOrderQuery, string(asset.Class), asset.Symbol, id).Scan(&hasOrder)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, errors.TracerFromError(err)
	}

	return true, hasOrder, nil
}
