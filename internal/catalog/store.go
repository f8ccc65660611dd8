package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	productIDPrefix    = "p_"
	collectionIDPrefix = "c_"
)

type Store struct {
	kv      KV
	log     *zap.Logger
	metrics *storeMetrics
	now     func() time.Time
	newID   func(prefix string) string

	// mu is held through the write-through, so mutations never interleave.
	mu          sync.RWMutex
	products    []Product
	collections []Collection
	settings    SiteSettings
	populated   map[slot]bool
	initialized bool
}

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Store) {
		if reg != nil {
			s.metrics = newStoreMetrics(reg)
		}
	}
}

func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:          kv,
		log:         zap.NewNop(),
		now:         time.Now,
		newID:       func(prefix string) string { return prefix + uuid.NewString() },
		products:    []Product{},
		collections: []Collection{},
		settings:    DefaultSettings(),
		populated:   map[slot]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads every slot from the KV. A slot that is missing, unreadable or
// malformed is replaced by its built-in default, which is written back
// immediately. A slot from a newer schema version is served from defaults but
// never overwritten. The store is usable whatever Init returns.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, perr := loadSlot(ctx, s, slotProducts, DefaultProducts)
	collections, cerr := loadSlot(ctx, s, slotCollections, DefaultCollections)
	settings, serr := loadSlot(ctx, s, slotSettings, DefaultSettings)

	if products == nil {
		products = []Product{}
	}
	if collections == nil {
		collections = []Collection{}
	}

	s.products = products
	s.collections = collections
	s.settings = settings
	s.initialized = true
	s.metrics.count(len(products), len(collections))

	s.log.Info("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("collections", len(collections)),
	)
	return errors.Join(perr, cerr, serr)
}

func loadSlot[T any](ctx context.Context, s *Store, sl slot, defaults func() T) (T, error) {
	raw, ok, err := s.kv.Read(ctx, sl.key())
	if err != nil {
		s.log.Warn("read slot failed, seeding defaults", zap.String("slot", string(sl)), zap.Error(err))
		ok = false
	}

	if ok {
		var v T
		err := decodeSlot(raw, &v)
		if err == nil {
			s.populated[sl] = true
			return v, nil
		}
		if errors.Is(err, ErrUnsupportedVersion) {
			// Serve defaults but leave the stored slot alone; a newer build wrote it.
			s.log.Error("slot written by a newer version, not persisting", zap.String("slot", string(sl)), zap.Error(err))
			delete(s.populated, sl)
			return defaults(), fmt.Errorf("%s: %w", sl, err)
		}
		s.log.Warn("malformed slot, seeding defaults", zap.String("slot", string(sl)), zap.Error(err))
	}

	v := defaults()
	s.populated[sl] = true
	return v, s.writeSlot(ctx, sl, v)
}

// writeSlot persists a whole slot. Slots that were never populated are
// skipped so a pre-Init mutation cannot clobber stored data.
func (s *Store) writeSlot(ctx context.Context, sl slot, v any) error {
	if !s.populated[sl] {
		s.metrics.write(sl, resultSkip)
		return nil
	}

	raw, err := encodeSlot(v)
	if err == nil {
		err = s.kv.Write(ctx, sl.key(), raw)
	}
	if err != nil {
		s.metrics.write(sl, resultError)
		s.log.Error("write slot failed", zap.String("slot", string(sl)), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrPersist, sl, err)
	}

	s.metrics.write(sl, resultOK)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:          s.newID(productIDPrefix),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Collection:  in.Collection,
		Featured:    in.Featured,
		CreatedAt:   s.now().UTC(),
	}

	next := append(cloneProducts(s.products), p)
	return p, s.setProducts(ctx, next)
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false, nil
	}

	next := cloneProducts(s.products)
	next[i] = patch.apply(next[i])
	return next[i], true, s.setProducts(ctx, next)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(cloneProducts(s.products), i, i+1)
	return true, s.setProducts(ctx, next)
}

func (s *Store) CreateCollection(ctx context.Context, in CollectionInput) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Collection{
		ID:        s.newID(collectionIDPrefix),
		Name:      in.Name,
		CreatedAt: s.now().UTC(),
	}

	next := append(cloneCollections(s.collections), c)
	return c, s.setCollections(ctx, next)
}

// UpdateCollection merges patch into the collection with id. A rename is
// applied to every product filed under the old name before the collection
// itself changes.
func (s *Store) UpdateCollection(ctx context.Context, id string, patch CollectionPatch) (Collection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.collections, func(c Collection) bool { return c.ID == id })
	if i < 0 {
		return Collection{}, false, nil
	}

	old := s.collections[i]
	updated := patch.apply(old)

	var perr error
	if updated.Name != old.Name {
		products := cloneProducts(s.products)
		renamed := 0
		for j := range products {
			if products[j].Collection == old.Name {
				products[j].Collection = updated.Name
				renamed++
			}
		}
		if renamed > 0 {
			perr = s.setProducts(ctx, products)
		}
		s.log.Debug("collection renamed",
			zap.String("from", old.Name),
			zap.String("to", updated.Name),
			zap.Int("products", renamed),
		)
	}

	next := cloneCollections(s.collections)
	next[i] = updated
	cerr := s.setCollections(ctx, next)
	return updated, true, errors.Join(perr, cerr)
}

func (s *Store) DeleteCollection(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.collections, func(c Collection) bool { return c.ID == id })
	if i < 0 {
		return false, nil
	}
	name := s.collections[i].Name

	var perr error
	products := filterProducts(s.products, func(p Product) bool { return p.Collection != name })
	if removed := len(s.products) - len(products); removed > 0 {
		perr = s.setProducts(ctx, products)
		s.log.Debug("collection products removed", zap.String("collection", name), zap.Int("products", removed))
	}

	next := slices.Delete(cloneCollections(s.collections), i, i+1)
	cerr := s.setCollections(ctx, next)
	return true, errors.Join(perr, cerr)
}

func (s *Store) SetHeroProduct(ctx context.Context, hero HeroProduct) (SiteSettings, error) {
	return s.UpdateSiteSettings(ctx, SettingsPatch{HeroProduct: &hero})
}

func (s *Store) UpdateSiteSettings(ctx context.Context, patch SettingsPatch) (SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.apply(s.settings)
	return s.settings, s.writeSlot(ctx, slotSettings, s.settings)
}

func (s *Store) setProducts(ctx context.Context, next []Product) error {
	s.products = next
	s.metrics.count(len(s.products), len(s.collections))
	return s.writeSlot(ctx, slotProducts, next)
}

func (s *Store) setCollections(ctx context.Context, next []Collection) error {
	s.collections = next
	s.metrics.count(len(s.products), len(s.collections))
	return s.writeSlot(ctx, slotCollections, next)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Products:    cloneProducts(s.products),
		Collections: cloneCollections(s.collections),
		Settings:    s.settings,
	}
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

func (s *Store) Collections() []Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCollections(s.collections)
}

func (s *Store) Settings() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) ProductByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FindProduct(s.products, id)
}

func (s *Store) CollectionByID(id string) (Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FindCollection(s.collections, id)
}

func (s *Store) CollectionByName(name string) (Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FindCollectionByName(s.collections, name)
}

func (s *Store) ProductsByCollection(name string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterByCollection(s.products, name)
}

func (s *Store) FeaturedProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterFeatured(s.products)
}

func (s *Store) SearchProducts(query string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Search(s.products, query)
}

func (s *Store) RelatedProducts(id string, limit int) ([]Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := FindProduct(s.products, id)
	if !ok {
		return nil, false
	}
	return Related(s.products, p, limit), true
}
