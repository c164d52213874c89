package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/orders"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Tx), args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetProductForUpdate(ctx context.Context, productID string) (*catalog.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockTx) DecrementStock(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockTx) CreateOrder(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockTx) InsertOrderItems(ctx context.Context, items []orders.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockTx) SetOrderTotal(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockTx) ClearCart(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCartReader struct {
	mock.Mock
}

func (m *MockCartReader) ListItems(ctx context.Context, userID string) ([]cart.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id, userID string) (*orders.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func newTestUseCase(repo *MockRepository, carts *MockCartReader, reader *MockOrderReader) *UseCase {
	return NewUseCase(repo, carts, reader, noop.NewTracerProvider().Tracer("test"))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id, name, priceStr string, stock int) *catalog.Product {
	p := catalog.NewProduct(name, "description", price(priceStr), stock, "test", "")
	p.ID = id
	return p
}

func cartLine(userID, productID string, quantity int) cart.Item {
	return *cart.NewItem(userID, productID, quantity)
}

func TestCheckout_EmptyCart(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)
	carts.On("ListItems", mock.Anything, "user-1").Return([]cart.Item{}, nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	var emptyCart *domain.EmptyCartError
	require.ErrorAs(t, err, &emptyCart)
	assert.Nil(t, order)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestCheckout_Success(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	tx := new(MockTx)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)

	carts.On("ListItems", mock.Anything, "user-1").Return([]cart.Item{
		cartLine("user-1", "prod-1", 2),
		cartLine("user-1", "prod-2", 3),
	}, nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	var createdOrder *orders.Order
	tx.On("CreateOrder", mock.Anything, mock.AnythingOfType("*orders.Order")).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(*orders.Order)
		}).
		Return(nil)

	tx.On("GetProductForUpdate", mock.Anything, "prod-1").
		Return(testProduct("prod-1", "Headphones", "10.00", 5), nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-2").
		Return(testProduct("prod-2", "Charger", "5.50", 10), nil)
	tx.On("DecrementStock", mock.Anything, "prod-1", 2).Return(nil)
	tx.On("DecrementStock", mock.Anything, "prod-2", 3).Return(nil)

	var insertedItems []orders.Item
	tx.On("InsertOrderItems", mock.Anything, mock.AnythingOfType("[]orders.Item")).
		Run(func(args mock.Arguments) {
			insertedItems = args.Get(1).([]orders.Item)
		}).
		Return(nil)
	tx.On("SetOrderTotal", mock.Anything, mock.AnythingOfType("*orders.Order")).Return(nil)
	tx.On("ClearCart", mock.Anything, "user-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))

	reader.On("Get", mock.Anything, mock.AnythingOfType("string"), "user-1").
		Return(&orders.Order{Status: orders.StatusPending}, nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, order)
	require.NotNil(t, createdOrder)
	assert.Equal(t, orders.StatusPending, createdOrder.Status)
	assert.Equal(t, "123 Main St", createdOrder.ShippingAddress)
	assert.True(t, createdOrder.TotalAmount.Equal(price("36.50")),
		"expected total 36.50, got %s", createdOrder.TotalAmount)

	require.Len(t, insertedItems, 2)
	assert.Equal(t, "Headphones", insertedItems[0].ProductName)
	assert.True(t, insertedItems[0].Subtotal.Equal(price("20.00")))
	assert.Equal(t, "Charger", insertedItems[1].ProductName)
	assert.True(t, insertedItems[1].Subtotal.Equal(price("16.50")))

	tx.AssertExpectations(t)
	carts.AssertExpectations(t)
	reader.AssertExpectations(t)
}

func TestCheckout_InsufficientStockAbortsEverything(t *testing.T) {
	// Arrange: second line cannot be served, the whole checkout must abort.
	repo := new(MockRepository)
	tx := new(MockTx)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)

	carts.On("ListItems", mock.Anything, "user-1").Return([]cart.Item{
		cartLine("user-1", "prod-1", 1),
		cartLine("user-1", "prod-2", 5),
	}, nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-1").
		Return(testProduct("prod-1", "Headphones", "10.00", 5), nil)
	tx.On("DecrementStock", mock.Anything, "prod-1", 1).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-2").
		Return(testProduct("prod-2", "Charger", "5.50", 2), nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	var noStock *domain.InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, "Charger", noStock.ProductName)
	assert.Equal(t, 5, noStock.Requested)
	assert.Equal(t, 2, noStock.Available)
	assert.Nil(t, order)

	tx.AssertNotCalled(t, "DecrementStock", mock.Anything, "prod-2", mock.Anything)
	tx.AssertNotCalled(t, "InsertOrderItems", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestCheckout_ProductGoneMidCheckout(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	tx := new(MockTx)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)

	carts.On("ListItems", mock.Anything, "user-1").Return([]cart.Item{
		cartLine("user-1", "prod-1", 1),
	}, nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-1").
		Return(nil, &domain.NotFoundError{Entity: "product", ID: "prod-1"})
	tx.On("Rollback", mock.Anything).Return(nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Nil(t, order)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestCheckout_WriteFailureAfterPartialItems(t *testing.T) {
	// Arrange: the item insert fails after stock was already decremented in
	// the transaction; nothing may survive.
	repo := new(MockRepository)
	tx := new(MockTx)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)

	carts.On("ListItems", mock.Anything, "user-1").Return([]cart.Item{
		cartLine("user-1", "prod-1", 1),
	}, nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-1").
		Return(testProduct("prod-1", "Headphones", "10.00", 5), nil)
	tx.On("DecrementStock", mock.Anything, "prod-1", 1).Return(nil)
	tx.On("InsertOrderItems", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	tx.On("Rollback", mock.Anything).Return(nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	require.Error(t, err)
	assert.Nil(t, order)
	tx.AssertNotCalled(t, "SetOrderTotal", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestCheckout_CommitFailure(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	tx := new(MockTx)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)

	carts.On("ListItems", mock.Anything, "user-1").Return([]cart.Item{
		cartLine("user-1", "prod-1", 1),
	}, nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-1").
		Return(testProduct("prod-1", "Headphones", "10.00", 5), nil)
	tx.On("DecrementStock", mock.Anything, "prod-1", 1).Return(nil)
	tx.On("InsertOrderItems", mock.Anything, mock.Anything).Return(nil)
	tx.On("SetOrderTotal", mock.Anything, mock.Anything).Return(nil)
	tx.On("ClearCart", mock.Anything, "user-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(errors.New("serialization failure"))
	tx.On("Rollback", mock.Anything).Return(nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit checkout")
	assert.Nil(t, order)
	reader.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_RepeatAfterSuccessFailsWithEmptyCart(t *testing.T) {
	// Arrange: a committed checkout clears the cart, so an immediate
	// resubmit sees no items. This is also the double-submit outcome.
	repo := new(MockRepository)
	tx := new(MockTx)
	carts := new(MockCartReader)
	reader := new(MockOrderReader)

	carts.On("ListItems", mock.Anything, "user-1").
		Return([]cart.Item{cartLine("user-1", "prod-1", 3)}, nil).Once()
	carts.On("ListItems", mock.Anything, "user-1").
		Return([]cart.Item{}, nil).Once()

	repo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, "prod-1").
		Return(testProduct("prod-1", "Headphones", "10.00", 5), nil)
	tx.On("DecrementStock", mock.Anything, "prod-1", 3).Return(nil)
	tx.On("InsertOrderItems", mock.Anything, mock.Anything).Return(nil)
	tx.On("SetOrderTotal", mock.Anything, mock.Anything).Return(nil)
	tx.On("ClearCart", mock.Anything, "user-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
	reader.On("Get", mock.Anything, mock.AnythingOfType("string"), "user-1").
		Return(&orders.Order{Status: orders.StatusPending}, nil)

	uc := newTestUseCase(repo, carts, reader)

	// Act
	first, firstErr := uc.Checkout(context.Background(), "user-1", "123 Main St")
	second, secondErr := uc.Checkout(context.Background(), "user-1", "123 Main St")

	// Assert
	require.NoError(t, firstErr)
	assert.NotNil(t, first)

	var emptyCart *domain.EmptyCartError
	require.ErrorAs(t, secondErr, &emptyCart)
	assert.Nil(t, second)
	repo.AssertNumberOfCalls(t, "BeginTx", 1)
}
