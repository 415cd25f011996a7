package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"taxengine/internal/cache"
	"taxengine/internal/config"
	"taxengine/internal/logger"
	"taxengine/internal/websocket"
)

// Stores holds all in-memory store instances
type Stores struct {
	TaxProfileRepo *InMemoryTaxProfileStore
	AuditRepo      *InMemoryAuditStore
}

// BaseServiceTestSuite provides common functionality for service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	cache     cache.Cache
	publisher *RecordingPublisher
	config    *config.Configuration
	logger    *logger.Logger
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = Stores{
		TaxProfileRepo: NewInMemoryTaxProfileStore(),
		AuditRepo:      NewInMemoryAuditStore(),
	}
	s.cache = cache.NewInMemoryCache(time.Minute)
	s.publisher = &RecordingPublisher{}
	s.config = &config.Configuration{
		Cache: config.CacheConfig{Enabled: true, Type: string(cache.CacheTypeInMemory), TTL: time.Minute},
		Tax:   config.TaxConfig{MutationMaxRetries: 3, MutationRetryWait: time.Millisecond},
	}
	s.logger = logger.NewNop()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetPublisher() *RecordingPublisher {
	return s.publisher
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetTxManager() InMemoryTxManager {
	return InMemoryTxManager{}
}

// RecordingPublisher keeps every profile change it is given.
type RecordingPublisher struct {
	mu      sync.Mutex
	changes []websocket.ProfileChange
}

func (p *RecordingPublisher) PublishProfileChange(change websocket.ProfileChange) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
}

func (p *RecordingPublisher) Changes() []websocket.ProfileChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]websocket.ProfileChange(nil), p.changes...)
}
