package service

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 測試用 in-memory repo, 行為對齊 redis / gorm 實作

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*model.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*model.Cart)}
}

func (f *fakeCartRepo) CreateCart(ctx context.Context) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := &model.Cart{CartID: uuid.New(), Items: []model.CartItem{}}
	f.carts[cart.CartID] = cart
	return copyCart(cart), nil
}

func (f *fakeCartRepo) GetCart(ctx context.Context, cartID uuid.UUID) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, redis_repo.ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return redis_repo.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return nil
		}
	}
	cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID uuid.UUID, productID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return redis_repo.ErrCartNotFound
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return redis_repo.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return redis_repo.ErrItemNotFound
}

func (f *fakeCartRepo) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return redis_repo.ErrCartNotFound
	}
	if items == nil {
		items = []model.CartItem{}
	}
	cart.Items = append([]model.CartItem{}, items...)
	return nil
}

// seed 直接塞一台購物車進去
func (f *fakeCartRepo) seed(items ...model.CartItem) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := &model.Cart{CartID: uuid.New(), Items: append([]model.CartItem{}, items...)}
	f.carts[cart.CartID] = cart
	return cart.CartID
}

func copyCart(cart *model.Cart) *model.Cart {
	c := *cart
	c.Items = append([]model.CartItem{}, cart.Items...)
	return &c
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uint]model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[uint]model.Product)}
	for _, p := range products {
		f.products[p.ProductID] = p
	}
	return f
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ProductID == 0 {
		product.ProductID = uint(len(f.products) + 1)
	}
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (f *fakeProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var products []model.Product
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductRepo) ReduceStock(ctx context.Context, id uint, quantity uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok || product.Stock < quantity {
		return db.ErrInsufficientStock
	}
	product.Stock -= quantity
	f.products[id] = product
	return nil
}

func (f *fakeProductRepo) stock(id uint) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets []model.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{}
}

func (f *fakeTicketRepo) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket.TicketID = uint(len(f.tickets) + 1)
	f.tickets = append(f.tickets, *ticket)
	return nil
}

func (f *fakeTicketRepo) GetTicketByCode(ctx context.Context, code string) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.Code == code {
			ticket := t
			return &ticket, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTicketRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickets)
}

type fakeMailService struct {
	mu   sync.Mutex
	sent []model.Ticket
}

func newFakeMailService() *fakeMailService {
	return &fakeMailService{}
}

func (f *fakeMailService) SendReceipt(ctx context.Context, ticket *model.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *ticket)
	return nil
}

func (f *fakeMailService) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeTicketProducer struct {
	mu        sync.Mutex
	published []model.Ticket
}

func newFakeTicketProducer() *fakeTicketProducer {
	return &fakeTicketProducer{}
}

func (f *fakeTicketProducer) PublishTicketCreated(ctx context.Context, ticket *model.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, *ticket)
	return nil
}

func (f *fakeTicketProducer) Close() error {
	return nil
}

func (f *fakeTicketProducer) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}
