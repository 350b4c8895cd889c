package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage depends on, kept as an
// interface so tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type flowerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type messageRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Flowers() repository.FlowerRepository {
	return &flowerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Messages() repository.MessageRepository {
	return &messageRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            shop_name TEXT NOT NULL DEFAULT '',
            shop_address TEXT NOT NULL DEFAULT '',
            shop_contact TEXT NOT NULL DEFAULT '',
            totp_secret TEXT NOT NULL DEFAULT '',
            totp_enabled BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS flowers (
            id SERIAL PRIMARY KEY,
            florist_id BIGINT NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
            image_url TEXT NOT NULL DEFAULT '',
            stock_status TEXT NOT NULL DEFAULT 'in_stock',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            buyer_name TEXT NOT NULL,
            buyer_email TEXT NOT NULL,
            buyer_phone TEXT NOT NULL,
            delivery_address TEXT NOT NULL,
            delivery_lat DOUBLE PRECISION,
            delivery_lng DOUBLE PRECISION,
            total_price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            paid BOOLEAN NOT NULL DEFAULT FALSE,
            payment_method TEXT NOT NULL DEFAULT '',
            payment_reference TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            flower_id BIGINT NOT NULL,
            florist_id BIGINT NOT NULL REFERENCES users(id),
            flower_name TEXT NOT NULL,
            florist_name TEXT NOT NULL,
            quantity INT NOT NULL CHECK (quantity > 0),
            unit_price DOUBLE PRECISION NOT NULL,
            fulfillment_status TEXT NOT NULL DEFAULT 'pending'
        )`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            sender_id BIGINT NOT NULL REFERENCES users(id),
            receiver_id BIGINT NOT NULL REFERENCES users(id),
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_flowers_florist ON flowers(florist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_florist ON order_items(florist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_order ON messages(order_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, role, shop_name, shop_address, shop_contact)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	created := *user
	err := r.storage.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.ShopName, user.ShopAddress, user.ShopContact,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

const userColumns = `id, name, email, password_hash, role, shop_name, shop_address, shop_contact, totp_secret, totp_enabled, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.ShopName, &u.ShopAddress, &u.ShopContact, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// --- FlowerRepository implementation ---

const flowerColumns = `id, florist_id, name, description, price, image_url, stock_status, created_at, updated_at`

func scanFlower(row pgx.Row) (*model.Flower, error) {
	var f model.Flower
	err := row.Scan(&f.ID, &f.FloristID, &f.Name, &f.Description, &f.Price,
		&f.ImageURL, &f.StockStatus, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *flowerRepository) Create(ctx context.Context, flower *model.Flower) (*model.Flower, error) {
	const query = `INSERT INTO flowers (florist_id, name, description, price, image_url, stock_status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	created := *flower
	err := r.storage.pool.QueryRow(ctx, query,
		flower.FloristID, flower.Name, flower.Description, flower.Price, flower.ImageURL, flower.StockStatus,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *flowerRepository) GetByID(ctx context.Context, id int64) (*model.Flower, error) {
	return scanFlower(r.storage.pool.QueryRow(ctx, `SELECT `+flowerColumns+` FROM flowers WHERE id=$1`, id))
}

func (r *flowerRepository) list(ctx context.Context, query string, args ...any) ([]model.Flower, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Flower
	for rows.Next() {
		var f model.Flower
		if err := rows.Scan(&f.ID, &f.FloristID, &f.Name, &f.Description, &f.Price,
			&f.ImageURL, &f.StockStatus, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *flowerRepository) List(ctx context.Context) ([]model.Flower, error) {
	return r.list(ctx, `SELECT `+flowerColumns+` FROM flowers ORDER BY created_at DESC`)
}

func (r *flowerRepository) ListByFlorist(ctx context.Context, floristID int64) ([]model.Flower, error) {
	return r.list(ctx, `SELECT `+flowerColumns+` FROM flowers WHERE florist_id=$1 ORDER BY created_at DESC`, floristID)
}

func (r *flowerRepository) Update(ctx context.Context, flower *model.Flower) error {
	const query = `UPDATE flowers
                   SET name=$1, description=$2, price=$3, image_url=$4, stock_status=$5, updated_at=NOW()
                   WHERE id=$6`
	tag, err := r.storage.pool.Exec(ctx, query,
		flower.Name, flower.Description, flower.Price, flower.ImageURL, flower.StockStatus, flower.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *flowerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM flowers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, buyer_id, buyer_name, buyer_email, buyer_phone, delivery_address,
                      delivery_lat, delivery_lng, total_price, status, paid,
                      payment_method, payment_reference, created_at, updated_at`

func scanOrderRows(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.BuyerName, &o.BuyerEmail, &o.BuyerPhone, &o.DeliveryAddress,
			&o.DeliveryLat, &o.DeliveryLng, &o.TotalPrice, &o.Status, &o.Paid,
			&o.PaymentMethod, &o.PaymentReference, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create builds the order and every line item inside one transaction.
// Flower rows are locked while prices and names are snapshotted so a
// concurrent catalog edit cannot split an order between two price views.
func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var buyerEmail string
		err := tx.QueryRow(ctx, `SELECT email FROM users WHERE id=$1`, draft.BuyerID).Scan(&buyerEmail)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("buyer %d: %w", draft.BuyerID, domainErrors.ErrNotFound)
			}
			return err
		}

		const flowerQuery = `SELECT f.name, f.price, f.stock_status, f.florist_id, u.name, u.role, u.shop_name
                             FROM flowers f
                             JOIN users u ON u.id = f.florist_id
                             WHERE f.id=$1
                             FOR UPDATE OF f`

		items := make([]model.OrderItem, 0, len(draft.Lines))
		var total float64
		for _, line := range draft.Lines {
			var (
				flowerName  string
				price       float64
				stock       model.StockStatus
				floristID   int64
				floristUser model.User
			)
			err := tx.QueryRow(ctx, flowerQuery, line.FlowerID).Scan(
				&flowerName, &price, &stock, &floristID,
				&floristUser.Name, &floristUser.Role, &floristUser.ShopName)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("flower %d: %w", line.FlowerID, domainErrors.ErrNotFound)
				}
				return err
			}
			if stock == model.StockOutOfStock {
				return fmt.Errorf("flower %d is out of stock: %w", line.FlowerID, domainErrors.ErrValidation)
			}

			item := model.OrderItem{
				FlowerID:          line.FlowerID,
				FloristID:         floristID,
				FlowerName:        flowerName,
				FloristName:       floristUser.DisplayName(),
				Quantity:          line.Quantity,
				UnitPrice:         price,
				FulfillmentStatus: model.FulfillmentPending,
			}
			total += item.LineTotal()
			items = append(items, item)
		}

		o := &model.Order{
			BuyerID:         draft.BuyerID,
			BuyerName:       draft.BuyerName,
			BuyerEmail:      buyerEmail,
			BuyerPhone:      draft.BuyerPhone,
			DeliveryAddress: draft.DeliveryAddress,
			TotalPrice:      total,
			Status:          model.OrderStatusPending,
		}

		const insertOrder = `INSERT INTO orders (buyer_id, buyer_name, buyer_email, buyer_phone, delivery_address, total_price, status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder,
			o.BuyerID, o.BuyerName, o.BuyerEmail, o.BuyerPhone, o.DeliveryAddress, o.TotalPrice, o.Status,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, flower_id, florist_id, flower_name, florist_name, quantity, unit_price, fulfillment_status)
                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                            RETURNING id`
		for i := range items {
			items[i].OrderID = o.ID
			if err := tx.QueryRow(ctx, insertItem,
				o.ID, items[i].FlowerID, items[i].FloristID, items[i].FlowerName, items[i].FloristName,
				items[i].Quantity, items[i].UnitPrice, items[i].FulfillmentStatus,
			).Scan(&items[i].ID); err != nil {
				return err
			}
		}

		o.Items = items
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

const itemColumns = `id, order_id, flower_id, florist_id, flower_name, florist_name, quantity, unit_price, fulfillment_status`

func (r *orderRepository) itemsForOrders(ctx context.Context, query string, args ...any) (map[int64][]model.OrderItem, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]model.OrderItem)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.FlowerID, &it.FloristID, &it.FlowerName,
			&it.FloristName, &it.Quantity, &it.UnitPrice, &it.FulfillmentStatus); err != nil {
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func orderIDs(orders []model.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrderRows(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrNotFound
	}

	items, err := r.itemsForOrders(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	order := orders[0]
	order.Items = items[order.ID]
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrderRows(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	items, err := r.itemsForOrders(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = ANY($1) ORDER BY id`, orderIDs(orders))
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// ListByFlorist narrows both the order set and each order's item list to the
// florist so one seller never sees another seller's lines on a shared order.
func (r *orderRepository) ListByFlorist(ctx context.Context, floristID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders
                   WHERE id IN (SELECT order_id FROM order_items WHERE florist_id=$1)
                   ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, floristID)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrderRows(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	items, err := r.itemsForOrders(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE florist_id=$1 AND order_id = ANY($2) ORDER BY id`,
		floristID, orderIDs(orders))
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *orderRepository) UpdateFulfillment(ctx context.Context, orderID, floristID int64, status model.FulfillmentStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current model.OrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE order_items SET fulfillment_status=$1 WHERE order_id=$2 AND florist_id=$3`,
			status, orderID, floristID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrForbidden
		}

		var total, delivered, started int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*),
                    COUNT(*) FILTER (WHERE fulfillment_status='delivered'),
                    COUNT(*) FILTER (WHERE fulfillment_status<>'pending')
             FROM order_items WHERE order_id=$1`, orderID).Scan(&total, &delivered, &started)
		if err != nil {
			return err
		}

		next := current
		switch {
		case delivered == total:
			next = model.OrderStatusDelivered
		case started > 0 && current != model.OrderStatusPaid && current != model.OrderStatusFailed:
			next = model.OrderStatusProcessing
		}
		if next == current {
			return nil
		}

		_, err = tx.Exec(ctx, `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, next, orderID)
		return err
	})
}

// SetPaymentState transitions payment fields under a row lock. Re-applying a
// state the order already holds is a no-op, which makes repeated gateway
// callbacks safe.
func (r *orderRepository) SetPaymentState(ctx context.Context, orderID int64, status model.OrderStatus, paid bool, trackingRef string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			current     model.OrderStatus
			currentPaid bool
			currentRef  string
		)
		err := tx.QueryRow(ctx,
			`SELECT status, paid, payment_reference FROM orders WHERE id=$1 FOR UPDATE`, orderID,
		).Scan(&current, &currentPaid, &currentRef)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		ref := currentRef
		if trackingRef != "" {
			ref = trackingRef
		}
		if current == status && currentPaid == paid && ref == currentRef {
			return nil
		}

		_, err = tx.Exec(ctx,
			`UPDATE orders SET status=$1, paid=$2, payment_reference=$3, updated_at=NOW() WHERE id=$4`,
			status, paid, ref, orderID)
		return err
	})
}

func (r *orderRepository) SetPaymentReference(ctx context.Context, orderID int64, reference, method string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET payment_reference=$1, payment_method=$2, updated_at=NOW() WHERE id=$3`,
		reference, method, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetDeliveryLocation(ctx context.Context, orderID, floristID int64, lat, lng float64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT TRUE FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		var owns bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM order_items WHERE order_id=$1 AND florist_id=$2)`,
			orderID, floristID).Scan(&owns)
		if err != nil {
			return err
		}
		if !owns {
			return domainErrors.ErrForbidden
		}

		_, err = tx.Exec(ctx,
			`UPDATE orders SET delivery_lat=$1, delivery_lng=$2, updated_at=NOW() WHERE id=$3`,
			lat, lng, orderID)
		return err
	})
}

func (r *orderRepository) HasFloristItems(ctx context.Context, orderID, floristID int64) (bool, error) {
	var owns bool
	err := r.storage.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE order_id=$1 AND florist_id=$2)`,
		orderID, floristID).Scan(&owns)
	if err != nil {
		return false, err
	}
	return owns, nil
}

// SelectPendingPayments picks initialized-but-unconfirmed orders for the
// reconciler. Selected rows get their updated_at bumped so the next poll
// prefers orders that have waited longest.
func (r *orderRepository) SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + `
                         FROM orders
                         WHERE paid=FALSE AND status='pending' AND payment_reference<>''
                         ORDER BY updated_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		selected, err := scanOrderRows(rows)
		if err != nil {
			return err
		}
		for _, o := range selected {
			if _, err := tx.Exec(ctx, `UPDATE orders SET updated_at=NOW() WHERE id=$1`, o.ID); err != nil {
				return err
			}
		}
		orders = selected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// --- MessageRepository implementation ---

func (r *messageRepository) Create(ctx context.Context, message *model.Message) (*model.Message, error) {
	const query = `INSERT INTO messages (order_id, sender_id, receiver_id, content)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`
	created := *message
	err := r.storage.pool.QueryRow(ctx, query,
		message.OrderID, message.SenderID, message.ReceiverID, message.Content,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *messageRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Message, error) {
	const query = `SELECT id, order_id, sender_id, receiver_id, content, created_at
                   FROM messages WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
