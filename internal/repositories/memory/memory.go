// Package memory provides in-memory implementations of the repository
// interfaces. They honor the same sentinel-error contracts as the MongoDB
// implementations (including the conditional point decrement), which makes
// them drop-in substitutes for service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds one in-memory repository per entity, sharing a single mutex so
// cross-entity operations in tests see a consistent view.
type Store struct {
	mu sync.Mutex

	users        map[primitive.ObjectID]*models.User
	products     map[primitive.ObjectID]*models.Product
	categories   map[primitive.ObjectID]*models.Category
	gifts        map[primitive.ObjectID]*models.Gift
	codes        map[string]*models.Code
	transactions map[primitive.ObjectID]*models.Transaction
	factures     map[primitive.ObjectID]*models.Facture
	messages     []*models.Message
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users:        make(map[primitive.ObjectID]*models.User),
		products:     make(map[primitive.ObjectID]*models.Product),
		categories:   make(map[primitive.ObjectID]*models.Category),
		gifts:        make(map[primitive.ObjectID]*models.Gift),
		codes:        make(map[string]*models.Code),
		transactions: make(map[primitive.ObjectID]*models.Transaction),
		factures:     make(map[primitive.ObjectID]*models.Facture),
	}
}

// Users returns the user repository view of the store
func (s *Store) Users() repositories.UserRepository { return (*userRepo)(s) }

// Products returns the product repository view of the store
func (s *Store) Products() repositories.ProductRepository { return (*productRepo)(s) }

// Categories returns the category repository view of the store
func (s *Store) Categories() repositories.CategoryRepository { return (*categoryRepo)(s) }

// Gifts returns the gift repository view of the store
func (s *Store) Gifts() repositories.GiftRepository { return (*giftRepo)(s) }

// Codes returns the code repository view of the store
func (s *Store) Codes() repositories.CodeRepository { return (*codeRepo)(s) }

// Transactions returns the transaction repository view of the store
func (s *Store) Transactions() repositories.TransactionRepository { return (*transactionRepo)(s) }

// Factures returns the facture repository view of the store
func (s *Store) Factures() repositories.FactureRepository { return (*factureRepo)(s) }

// Messages returns the message repository view of the store
func (s *Store) Messages() repositories.MessageRepository { return (*messageRepo)(s) }

// ----------------------------------------------------------------------------
// users

type userRepo Store

var _ repositories.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Username = user.Username
	existing.Email = user.Email
	existing.Password = user.Password
	existing.IsActive = user.IsActive
	existing.IsStaff = user.IsStaff
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *userRepo) IncrementPoints(ctx context.Context, id primitive.ObjectID, points int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	u.Points += points
	u.UpdatedAt = time.Now()
	return u.Points, nil
}

func (r *userRepo) DecrementPointsIfEnough(ctx context.Context, id primitive.ObjectID, points int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	if u.Points < points {
		return 0, repositories.ErrInsufficientPoints
	}
	u.Points -= points
	u.UpdatedAt = time.Now()
	return u.Points, nil
}

// ----------------------------------------------------------------------------
// products

type productRepo Store

var _ repositories.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = primitive.NewObjectID()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := make([]*models.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *productRepo) DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, p := range r.products {
		if p.CategoryID == categoryID {
			delete(r.products, id)
			removed++
		}
	}
	return removed, nil
}

// ----------------------------------------------------------------------------
// categories

type categoryRepo Store

var _ repositories.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = primitive.NewObjectID()
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories := make([]*models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// ----------------------------------------------------------------------------
// gifts

type giftRepo Store

var _ repositories.GiftRepository = (*giftRepo)(nil)

func (r *giftRepo) Create(ctx context.Context, gift *models.Gift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift.ID = primitive.NewObjectID()
	cp := *gift
	r.gifts[gift.ID] = &cp
	return nil
}

func (r *giftRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gifts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *giftRepo) FindAll(ctx context.Context) ([]*models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gifts := make([]*models.Gift, 0, len(r.gifts))
	for _, g := range r.gifts {
		cp := *g
		gifts = append(gifts, &cp)
	}
	return gifts, nil
}

func (r *giftRepo) Update(ctx context.Context, gift *models.Gift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gifts[gift.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *gift
	r.gifts[gift.ID] = &cp
	return nil
}

func (r *giftRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gifts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.gifts, id)
	return nil
}

// ----------------------------------------------------------------------------
// codes

type codeRepo Store

var _ repositories.CodeRepository = (*codeRepo)(nil)

func (r *codeRepo) Create(ctx context.Context, code *models.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codes[code.Cid]; exists {
		return repositories.ErrDuplicateKey
	}
	code.CreatedAt = time.Now()
	cp := *code
	r.codes[code.Cid] = &cp
	return nil
}

func (r *codeRepo) FindByCid(ctx context.Context, cid string) (*models.Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[cid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *codeRepo) Delete(ctx context.Context, cid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[cid]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.codes, cid)
	return nil
}

// ----------------------------------------------------------------------------
// transactions

type transactionRepo Store

var _ repositories.TransactionRepository = (*transactionRepo)(nil)

func (r *transactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction.ID = primitive.NewObjectID()
	cp := *transaction
	r.transactions[transaction.ID] = &cp
	return nil
}

func (r *transactionRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transactions := make([]*models.Transaction, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.transactions[id]; ok {
			cp := *t
			transactions = append(transactions, &cp)
		}
	}
	return transactions, nil
}

// ----------------------------------------------------------------------------
// factures

type factureRepo Store

var _ repositories.FactureRepository = (*factureRepo)(nil)

func (r *factureRepo) Create(ctx context.Context, facture *models.Facture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	facture.ID = primitive.NewObjectID()
	if facture.Date.IsZero() {
		facture.Date = time.Now()
	}
	cp := *facture
	cp.TransactionIDs = append([]primitive.ObjectID(nil), facture.TransactionIDs...)
	r.factures[facture.ID] = &cp
	return nil
}

func (r *factureRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Facture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.factures[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *f
	cp.TransactionIDs = append([]primitive.ObjectID(nil), f.TransactionIDs...)
	return &cp, nil
}

func (r *factureRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Facture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var factures []*models.Facture
	for _, f := range r.factures {
		if f.UserID == userID {
			cp := *f
			cp.TransactionIDs = append([]primitive.ObjectID(nil), f.TransactionIDs...)
			factures = append(factures, &cp)
		}
	}
	sortFacturesNewestFirst(factures)
	return factures, nil
}

func (r *factureRepo) FindAll(ctx context.Context) ([]*models.Facture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	factures := make([]*models.Facture, 0, len(r.factures))
	for _, f := range r.factures {
		cp := *f
		cp.TransactionIDs = append([]primitive.ObjectID(nil), f.TransactionIDs...)
		factures = append(factures, &cp)
	}
	sortFacturesNewestFirst(factures)
	return factures, nil
}

func sortFacturesNewestFirst(factures []*models.Facture) {
	sort.Slice(factures, func(i, j int) bool { return factures[i].Date.After(factures[j].Date) })
}

// ----------------------------------------------------------------------------
// messages

type messageRepo Store

var _ repositories.MessageRepository = (*messageRepo)(nil)

func (r *messageRepo) Create(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = primitive.NewObjectID()
	if message.Date.IsZero() {
		message.Date = time.Now()
	}
	cp := *message
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *messageRepo) FindBetween(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var messages []*models.Message
	for _, m := range r.messages {
		if (m.FromUserID == a && m.ToUserID == b) || (m.FromUserID == b && m.ToUserID == a) {
			cp := *m
			messages = append(messages, &cp)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].Date.Before(messages[j].Date) })
	return messages, nil
}

func (r *messageRepo) FindForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var messages []*models.Message
	for _, m := range r.messages {
		if m.FromUserID == userID || m.ToUserID == userID {
			cp := *m
			messages = append(messages, &cp)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].Date.After(messages[j].Date) })
	return messages, nil
}
