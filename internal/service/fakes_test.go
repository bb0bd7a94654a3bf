package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
)

// 測試用 in-memory 實作，只做到各服務測試需要的程度

type fakeUserRepo struct {
	users  map[string]*model.User // key: email
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, db.ErrDuplicateUser
	}
	user.UserID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, db.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, db.ErrUserNotFound
}

func (f *fakeUserRepo) UserExists(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.UserName == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uint) error {
	for email, u := range f.users {
		if u.UserID == id {
			delete(f.users, email)
			return nil
		}
	}
	return db.ErrUserNotFound
}

type fakeReservation struct {
	reserveErrs   []error // 依序回傳，用完後成功
	reserveCalls  int
	finalizeOrder *model.Order
	finalizeErr   error
	finalizeCalls int
	lastDeclared  int64
	lastLines     []db.OrderLine
	stock         int
	restockErr    error
}

func (f *fakeReservation) Reserve(_ context.Context, productID uint, quantity int, userID uint) (*model.CartItem, error) {
	f.reserveCalls++
	if len(f.reserveErrs) > 0 {
		err := f.reserveErrs[0]
		f.reserveErrs = f.reserveErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

func (f *fakeReservation) FinalizeOrder(_ context.Context, userID uint, declaredTotal int64, lines []db.OrderLine) (*model.Order, error) {
	f.finalizeCalls++
	f.lastDeclared = declaredTotal
	f.lastLines = lines
	if f.finalizeErr != nil {
		return nil, f.finalizeErr
	}
	return f.finalizeOrder, nil
}

func (f *fakeReservation) Restock(_ context.Context, productID uint, amount int) (int, error) {
	if f.restockErr != nil {
		return 0, f.restockErr
	}
	f.stock += amount
	return f.stock, nil
}

type fakeCartRepo struct {
	items []model.CartItem
}

func (f *fakeCartRepo) GetCartItemsByUserID(_ context.Context, userID uint) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) GetCartItem(_ context.Context, userID, productID uint) (*model.CartItem, error) {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ProductID == productID {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) GetTotalQuantity(_ context.Context, userID uint) (int, error) {
	total := 0
	for _, it := range f.items {
		if it.UserID == userID {
			total += it.Quantity
		}
	}
	return total, nil
}

type fakeCategoryRepo struct {
	categories map[uint]*model.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint]*model.Category{}, nextID: 1}
}

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, category *model.Category) error {
	category.CategoryID = f.nextID
	f.nextID++
	f.categories[category.CategoryID] = category
	return nil
}

func (f *fakeCategoryRepo) GetCategoryByID(_ context.Context, id uint) (*model.Category, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, db.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) GetAllCategories(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

type fakeProductRepo struct {
	products    map[uint]*model.Product
	nextID      uint
	lastUpdates map[string]interface{}
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*model.Product{}, nextID: 1}
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *model.Product) error {
	product.ProductID = f.nextID
	f.nextID++
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, productID uint) (*model.Product, error) {
	if p, ok := f.products[productID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, db.ErrProductNotFound
}

func (f *fakeProductRepo) GetAllProducts(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductsInStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.Stock > 0 {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductStock(_ context.Context, productID uint) (int, error) {
	if p, ok := f.products[productID]; ok {
		return p.Stock, nil
	}
	return 0, db.ErrProductNotFound
}

func (f *fakeProductRepo) PatchProductFields(_ context.Context, productID uint, updates map[string]interface{}) error {
	p, ok := f.products[productID]
	if !ok {
		return db.ErrProductNotFound
	}
	f.lastUpdates = updates
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["brand"]; ok {
		p.Brand = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(int64)
	}
	if v, ok := updates["discount_rate"]; ok {
		p.DiscountRate = v.(int)
	}
	if v, ok := updates["discounted_price"]; ok {
		p.DiscountedPrice = v.(int64)
	}
	if v, ok := updates["stock"]; ok {
		p.Stock = v.(int)
	}
	if v, ok := updates["category_id"]; ok {
		p.CategoryID = v.(uint)
	}
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, productID uint) error {
	if _, ok := f.products[productID]; !ok {
		return db.ErrProductNotFound
	}
	delete(f.products, productID)
	return nil
}

type fakeProductCache struct {
	cached        map[uint]*model.Product
	invalidated   []uint
	getErr        error
	setCalls      int
	invalidateErr error
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{cached: map[uint]*model.Product{}}
}

func (f *fakeProductCache) GetProduct(_ context.Context, productID uint) (*model.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cached[productID], nil
}

func (f *fakeProductCache) SetProduct(_ context.Context, product *model.Product) error {
	f.setCalls++
	f.cached[product.ProductID] = product
	return nil
}

func (f *fakeProductCache) InvalidateProduct(_ context.Context, productID uint) error {
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	f.invalidated = append(f.invalidated, productID)
	delete(f.cached, productID)
	return nil
}

type fakeOrderRepo struct {
	orders map[uint]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]*model.Order{}}
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id uint) (*model.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, db.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetOrdersByUserID(_ context.Context, userID uint) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetAllOrders(_ context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id uint, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return db.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type fakeReportRepo struct {
	topSales      []db.ProductSales
	history       []db.SaleRecord
	totalSold     int64
	lastPurchased *time.Time
	orderCount    int64
	revenue       int64
}

func (f *fakeReportRepo) TopSales(_ context.Context, limit int) ([]db.ProductSales, error) {
	if limit < len(f.topSales) {
		return f.topSales[:limit], nil
	}
	return f.topSales, nil
}

func (f *fakeReportRepo) SalesHistory(_ context.Context, productID uint) ([]db.SaleRecord, error) {
	if productID == 0 {
		return f.history, nil
	}
	var out []db.SaleRecord
	for _, r := range f.history {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) TotalSold(_ context.Context, productID uint) (int64, error) {
	return f.totalSold, nil
}

func (f *fakeReportRepo) LastPurchased(_ context.Context, productID uint) (*time.Time, error) {
	return f.lastPurchased, nil
}

func (f *fakeReportRepo) OrderTotals(_ context.Context) (int64, int64, error) {
	return f.orderCount, f.revenue, nil
}

type fakeEventProducer struct {
	published []*model.Order
	err       error
}

func (f *fakeEventProducer) ProduceOrderCreatedEvent(_ context.Context, order *model.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order)
	return nil
}

func (f *fakeEventProducer) Close() error { return nil }
