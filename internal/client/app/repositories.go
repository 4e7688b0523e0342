package app

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/ledgersync/internal/client/localstore"
	"github.com/dmitrijs2005/ledgersync/internal/client/repository"
	"github.com/dmitrijs2005/ledgersync/internal/client/syncclient"
	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/dbx"
	"github.com/dmitrijs2005/ledgersync/internal/dto"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"golang.org/x/sync/errgroup"
)

// Policy is the pull behaviour of one collection.
type Policy struct {
	SkipEmptySnapshots bool
	PruneRemoteDeletes bool
}

// Policies is keyed by collection name. Schedules and bill payments may
// legitimately become empty, interest rates and transactions are never
// deleted remotely.
var Policies = map[string]Policy{
	common.CollectionAccounts:          {SkipEmptySnapshots: true, PruneRemoteDeletes: true},
	common.CollectionSavingsBooks:      {SkipEmptySnapshots: true, PruneRemoteDeletes: true},
	common.CollectionMortgages:         {SkipEmptySnapshots: true, PruneRemoteDeletes: true},
	common.CollectionMortgageSchedules: {SkipEmptySnapshots: false, PruneRemoteDeletes: true},
	common.CollectionInterestRates:     {SkipEmptySnapshots: true, PruneRemoteDeletes: false},
	common.CollectionTransactions:      {SkipEmptySnapshots: true, PruneRemoteDeletes: false},
	common.CollectionBillPayments:      {SkipEmptySnapshots: false, PruneRemoteDeletes: true},
}

type options struct {
	asyncPush bool
	logger    logging.Logger
}

type Option func(*options)

// WithAsyncPush makes every repository push in the background.
func WithAsyncPush(async bool) Option {
	return func(o *options) { o.asyncPush = async }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// syncer is the entity-independent part of a repository.
type syncer interface {
	Collection() string
	StartPull(ctx context.Context) <-chan struct{}
	Refresh(ctx context.Context) int
	Stats() repository.Stats
	Close()
}

// Repositories holds one repository per entity type.
type Repositories struct {
	Accounts          *repository.Repository[models.Account]
	SavingsBooks      *repository.Repository[models.SavingsBook]
	Mortgages         *repository.Repository[models.MortgageAccount]
	MortgageSchedules *repository.Repository[models.MortgageSchedule]
	InterestRates     *repository.Repository[models.InterestRate]
	Transactions      *repository.Repository[models.TransactionRecord]
	BillPayments      *repository.Repository[models.BillPayment]

	all       []syncer
	logger    logging.Logger
	startOnce sync.Once
	group     errgroup.Group
}

// New builds the repositories over db, which must already be migrated
// (see localstore.Open).
func New(db dbx.DBTX, remote syncclient.RemoteStore, opts ...Option) *Repositories {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Repositories{logger: o.logger.With("module", "app")}

	r.Accounts = build(db, remote, common.CollectionAccounts, localstore.AccountSchema, dto.Accounts, o)
	r.SavingsBooks = build(db, remote, common.CollectionSavingsBooks, localstore.SavingsBookSchema, dto.SavingsBooks, o)
	r.Mortgages = build(db, remote, common.CollectionMortgages, localstore.MortgageSchema, dto.Mortgages, o)
	r.MortgageSchedules = build(db, remote, common.CollectionMortgageSchedules, localstore.MortgageScheduleSchema, dto.MortgageSchedules, o)
	r.InterestRates = build(db, remote, common.CollectionInterestRates, localstore.InterestRateSchema, dto.InterestRates, o)
	r.Transactions = build(db, remote, common.CollectionTransactions, localstore.TransactionSchema, dto.Transactions, o)
	r.BillPayments = build(db, remote, common.CollectionBillPayments, localstore.BillPaymentSchema, dto.BillPayments, o)

	r.all = []syncer{r.Accounts, r.SavingsBooks, r.Mortgages, r.MortgageSchedules, r.InterestRates, r.Transactions, r.BillPayments}
	return r
}

func build[E models.Entity](db dbx.DBTX, remote syncclient.RemoteStore, collection string, schema localstore.Schema[E], codec wire.Codec[E], o options) *repository.Repository[E] {
	p := Policies[collection]

	repoOpts := []repository.Option{repository.WithLogger(o.logger)}
	if p.SkipEmptySnapshots {
		repoOpts = append(repoOpts, repository.WithSkipEmptySnapshots())
	}
	if p.PruneRemoteDeletes {
		repoOpts = append(repoOpts, repository.WithPruneRemoteDeletes())
	}
	if o.asyncPush {
		repoOpts = append(repoOpts, repository.WithAsyncPush())
	}

	local := localstore.NewTable(db, schema, o.logger)
	client := syncclient.New(remote, collection, codec, o.logger)
	return repository.New[E](local, client, codec, repoOpts...)
}

// Start launches every pull. Only the first call has an effect.
func (r *Repositories) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		for _, s := range r.all {
			done := s.StartPull(ctx)
			r.group.Go(func() error {
				<-done
				return nil
			})
		}
		r.logger.Info(ctx, "pulls started", "collections", len(r.all))
	})
}

// Wait blocks until every pull started by Start has stopped.
func (r *Repositories) Wait() error {
	return r.group.Wait()
}

// Refresh fetches every collection once, concurrently, and returns the
// number of documents written per collection.
func (r *Repositories) Refresh(ctx context.Context) map[string]int {
	var (
		mu  sync.Mutex
		out = make(map[string]int, len(r.all))
		g   errgroup.Group
	)
	for _, s := range r.all {
		g.Go(func() error {
			n := s.Refresh(ctx)
			mu.Lock()
			out[s.Collection()] = n
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Stats returns each repository's counters by collection name.
func (r *Repositories) Stats() map[string]repository.Stats {
	out := make(map[string]repository.Stats, len(r.all))
	for _, s := range r.all {
		out[s.Collection()] = s.Stats()
	}
	return out
}

// Collections lists the collection names in sorted order.
func (r *Repositories) Collections() []string {
	names := make([]string, 0, len(r.all))
	for _, s := range r.all {
		names = append(names, s.Collection())
	}
	sort.Strings(names)
	return names
}

// Close waits for in-flight background pushes of every repository.
func (r *Repositories) Close() {
	for _, s := range r.all {
		s.Close()
	}
}
