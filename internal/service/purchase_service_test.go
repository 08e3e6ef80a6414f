package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newPurchaseFixture(t *testing.T, products ...model.Product) (*fakeCartRepo, *fakeProductRepo, *fakeTicketRepo, *fakeMailService, *fakeTicketProducer, IPurchaseService) {
	t.Helper()
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo(products...)
	ticketRepo := newFakeTicketRepo()
	mailService := newFakeMailService()
	producer := newFakeTicketProducer()
	logger := zerolog.Nop()
	svc := NewPurchaseService(cartRepo, productRepo, ticketRepo, mailService, producer, &logger)
	return cartRepo, productRepo, ticketRepo, mailService, producer, svc
}

func product(id uint, stock uint, price string) model.Product {
	return model.Product{
		ProductID: id,
		Code:      uuid.NewString()[:8],
		Name:      "product",
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func TestCompletePurchaseFullSuccess(t *testing.T) {
	// 購物車: X(庫存5) x3 → 全部成交, 庫存變 2, 購物車清空
	cartRepo, productRepo, ticketRepo, mailService, producer, svc := newPurchaseFixture(t, product(1, 5, "10.50"))
	cid := cartRepo.seed(model.CartItem{ProductID: 1, Quantity: 3})

	actor := model.Actor{Email: "buyer@example.com", Name: "Buyer", Role: "user"}
	result, err := svc.CompletePurchase(context.Background(), cid, actor)
	require.NoError(t, err)

	require.False(t, result.Partial)
	require.Empty(t, result.Unfulfilled)
	require.NotNil(t, result.Ticket)
	require.Equal(t, "buyer@example.com", result.Ticket.Purchaser)
	require.True(t, result.Ticket.Amount.Equal(decimal.RequireFromString("31.50")), "amount = 3 x 10.50")
	require.Len(t, result.Ticket.Items, 1)

	require.Equal(t, uint(2), productRepo.stock(1))
	require.Equal(t, 1, ticketRepo.count())

	cart, err := cartRepo.GetCart(context.Background(), cid)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// 通知為 fire-and-forget
	require.Eventually(t, func() bool {
		return mailService.sentCount() == 1 && producer.publishedCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCompletePurchasePartial(t *testing.T) {
	// X(庫存2) x5 買不到, Y(庫存10) x1 買得到
	cartRepo, productRepo, ticketRepo, _, _, svc := newPurchaseFixture(t,
		product(1, 2, "100"),
		product(2, 10, "25"),
	)
	cid := cartRepo.seed(
		model.CartItem{ProductID: 1, Quantity: 5},
		model.CartItem{ProductID: 2, Quantity: 1},
	)

	result, err := svc.CompletePurchase(context.Background(), cid, model.Actor{Email: "buyer@example.com"})
	require.NoError(t, err)

	require.True(t, result.Partial)
	require.Len(t, result.Unfulfilled, 1)
	require.Equal(t, uint(1), result.Unfulfilled[0].Product.ProductID)
	require.Equal(t, 5, result.Unfulfilled[0].Quantity)

	require.True(t, result.Ticket.Amount.Equal(decimal.RequireFromString("25")), "ticket only covers Y")
	require.Len(t, result.Ticket.Items, 1)
	require.Equal(t, uint(2), result.Ticket.Items[0].ProductID)

	// 庫存: X 不動, Y 扣 1
	require.Equal(t, uint(2), productRepo.stock(1))
	require.Equal(t, uint(9), productRepo.stock(2))
	require.Equal(t, 1, ticketRepo.count())

	// 購物車剩下沒買到的 X x5
	cart, err := cartRepo.GetCart(context.Background(), cid)
	require.NoError(t, err)
	require.Equal(t, []model.CartItem{{ProductID: 1, Quantity: 5}}, cart.Items)
}

func TestCompletePurchaseNothingFulfillable(t *testing.T) {
	// Z 庫存 0 → 409, 不開 ticket, 購物車不動
	cartRepo, productRepo, ticketRepo, mailService, _, svc := newPurchaseFixture(t, product(1, 0, "10"))
	cid := cartRepo.seed(model.CartItem{ProductID: 1, Quantity: 1})

	result, err := svc.CompletePurchase(context.Background(), cid, model.Actor{Email: "buyer@example.com"})
	require.Nil(t, result)
	require.Error(t, err)
	require.Equal(t, apperr.ConflictCode, apperr.GetCode(err))

	require.Equal(t, 0, ticketRepo.count())
	require.Equal(t, uint(0), productRepo.stock(1))
	require.Equal(t, 0, mailService.sentCount())

	cart, err := cartRepo.GetCart(context.Background(), cid)
	require.NoError(t, err)
	require.Equal(t, []model.CartItem{{ProductID: 1, Quantity: 1}}, cart.Items)
}

func TestCompletePurchaseCartNotFound(t *testing.T) {
	_, _, _, _, _, svc := newPurchaseFixture(t)

	_, err := svc.CompletePurchase(context.Background(), uuid.New(), model.Actor{})
	require.Error(t, err)
	require.Equal(t, apperr.NotFoundCode, apperr.GetCode(err))
}

func TestCompletePurchasePartitionTotality(t *testing.T) {
	// fulfilled ∪ unfulfilled == 原始內容, 且兩邊不重疊
	cartRepo, _, _, _, _, svc := newPurchaseFixture(t,
		product(1, 10, "1"),
		product(2, 0, "1"),
		product(3, 3, "1"),
		product(4, 1, "1"),
	)
	original := []model.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 3},
		{ProductID: 4, Quantity: 5},
	}
	cid := cartRepo.seed(original...)

	result, err := svc.CompletePurchase(context.Background(), cid, model.Actor{Email: "b@e.com"})
	require.NoError(t, err)

	seen := make(map[uint]int)
	for _, item := range result.Ticket.Items {
		seen[item.ProductID] += item.Quantity
	}
	for _, item := range result.Unfulfilled {
		_, dup := seen[item.Product.ProductID]
		require.False(t, dup, "partition must be disjoint")
		seen[item.Product.ProductID] = item.Quantity
	}

	require.Len(t, seen, len(original))
	for _, item := range original {
		require.Equal(t, item.Quantity, seen[item.ProductID])
	}

	// 購物車內容 == unfulfilled
	cart, err := cartRepo.GetCart(context.Background(), cid)
	require.NoError(t, err)
	require.ElementsMatch(t, []model.CartItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 4, Quantity: 5},
	}, cart.Items)
}

func TestCompletePurchasePurchaserFallsBackToName(t *testing.T) {
	cartRepo, _, _, _, _, svc := newPurchaseFixture(t, product(1, 5, "10"))
	cid := cartRepo.seed(model.CartItem{ProductID: 1, Quantity: 1})

	result, err := svc.CompletePurchase(context.Background(), cid, model.Actor{Name: "Jane"})
	require.NoError(t, err)
	require.Equal(t, "Jane", result.Ticket.Purchaser)
}

// staleStockProductRepo 回報比實際多的庫存快照, 模擬讀完快照後庫存被別人扣走
type staleStockProductRepo struct {
	*fakeProductRepo
}

func (f *staleStockProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := f.fakeProductRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Stock += 10
	return product, nil
}

func TestCompletePurchaseStaleStockSnapshot(t *testing.T) {
	// 快照顯示有貨但條件式扣庫存失敗 → 當作沒買到, 庫存不會變負
	cartRepo := newFakeCartRepo()
	productRepo := &staleStockProductRepo{newFakeProductRepo(
		product(1, 0, "10"),
		product(2, 5, "20"),
	)}
	ticketRepo := newFakeTicketRepo()
	logger := zerolog.Nop()
	svc := NewPurchaseService(cartRepo, productRepo, ticketRepo, newFakeMailService(), newFakeTicketProducer(), &logger)

	cid := cartRepo.seed(
		model.CartItem{ProductID: 1, Quantity: 1},
		model.CartItem{ProductID: 2, Quantity: 2},
	)

	result, err := svc.CompletePurchase(context.Background(), cid, model.Actor{Email: "b@e.com"})
	require.NoError(t, err)

	require.True(t, result.Partial)
	require.Len(t, result.Unfulfilled, 1)
	require.Equal(t, uint(1), result.Unfulfilled[0].Product.ProductID)
	require.Len(t, result.Ticket.Items, 1)
	require.Equal(t, uint(2), result.Ticket.Items[0].ProductID)

	require.Equal(t, uint(0), productRepo.stock(1))
	require.Equal(t, uint(3), productRepo.stock(2))

	// 沒買到的留在購物車
	cart, err := cartRepo.GetCart(context.Background(), cid)
	require.NoError(t, err)
	require.Equal(t, []model.CartItem{{ProductID: 1, Quantity: 1}}, cart.Items)
}

func TestCompletePurchaseProductMissingMidLoop(t *testing.T) {
	// 購物車參照不存在的商品 → internal error
	cartRepo, _, ticketRepo, _, _, svc := newPurchaseFixture(t)
	cid := cartRepo.seed(model.CartItem{ProductID: 99, Quantity: 1})

	_, err := svc.CompletePurchase(context.Background(), cid, model.Actor{Email: "b@e.com"})
	require.Error(t, err)
	require.Equal(t, apperr.InternalCode, apperr.GetCode(err))
	require.Equal(t, 0, ticketRepo.count())
}

func TestGenerateTicketCode(t *testing.T) {
	cid := uuid.New()
	now := time.Now()

	codes := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateTicketCode(cid, now)
		require.Contains(t, code, "TCK-")
		require.Contains(t, code, cid.String()[:8])

		// TCK-<cart8>-<millis>-<rand8>
		parts := strings.Split(code, "-")
		require.Len(t, parts, 4)
		require.Len(t, parts[3], 8, "random suffix must be wide enough to keep collisions negligible")

		require.False(t, codes[code], "codes for the same cart and instant must not collide")
		codes[code] = true
	}
}

func TestCalculateTotalAmount(t *testing.T) {
	items := []model.ResolvedCartItem{
		{Product: product(1, 1, "10.25"), Quantity: 2},
		{Product: product(2, 1, "0.75"), Quantity: 3},
	}
	require.True(t, calculateTotalAmount(items).Equal(decimal.RequireFromString("22.75")))

	require.True(t, calculateTotalAmount(nil).Equal(decimal.Zero))
}
