package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/server/notify"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   logging.Logger
	now      func() time.Time
}

func NewService(repo Repository, n notify.Notifier, l logging.Logger) *Service {
	if l == nil {
		l = logging.Nop()
	}
	return &Service{
		repo:     repo,
		notifier: n,
		logger:   l.With("module", "documents"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func validateKey(collection, id string) error {
	if strings.TrimSpace(collection) == "" || strings.ContainsAny(collection, "/") {
		return fmt.Errorf("%w: bad collection %q", common.ErrInvalidDocument, collection)
	}
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, "/") {
		return fmt.Errorf("%w: bad id %q", common.ErrInvalidDocument, id)
	}
	return nil
}

// Set replaces owner's document collection/id with fields.
func (s *Service) Set(ctx context.Context, owner, collection, id string, fields wire.Fields) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}
	normalized, err := NormalizeFields(fields)
	if err != nil {
		return err
	}

	doc := Document{ID: id, Fields: normalized, UpdatedAt: s.now()}
	if err := s.repo.Put(ctx, owner, collection, doc); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	s.publish(ctx, owner, collection)
	return nil
}

func (s *Service) Delete(ctx context.Context, owner, collection, id string) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, owner, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	s.publish(ctx, owner, collection)
	return nil
}

func (s *Service) List(ctx context.Context, owner, collection string) ([]Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("%w: empty collection", common.ErrInvalidDocument)
	}
	docs, err := s.repo.List(ctx, owner, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// Listen sends the current collection, then a fresh full copy after every
// change, until ctx is done (returns nil) or send or a read fails.
func (s *Service) Listen(ctx context.Context, owner, collection string, send func([]Document) error) error {
	changes, unsubscribe := s.notifier.Subscribe(notify.Topic(owner, collection))
	defer unsubscribe()

	for {
		docs, err := s.List(ctx, owner, collection)
		if err != nil {
			return err
		}
		if err := send(docs); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-changes:
		}
	}
}

// publish never fails a write: the document is stored, listeners may just
// learn about it on the next change.
func (s *Service) publish(ctx context.Context, owner, collection string) {
	if err := s.notifier.Publish(ctx, notify.Topic(owner, collection)); err != nil {
		s.logger.Warn(ctx, "change notification failed", "collection", collection, "error", err)
	}
}
