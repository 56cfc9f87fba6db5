package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	contracts "github.com/murkotick/catalog-sale-console/internal/app/sale/contracts"
	"github.com/murkotick/catalog-sale-console/internal/models/m_preset_store"
	commitplan "github.com/murkotick/catalog-sale-console/internal/pkg/committer"
)

// SpannerStore keeps the preset payload in the preset_store table.
// Writes go through a commit plan; reads use a single-use read-only transaction.
type SpannerStore struct {
	client    *spanner.Client
	committer contracts.Committer
	key       string
}

func NewSpannerStore(client *spanner.Client, committer contracts.Committer, key string) *SpannerStore {
	return &SpannerStore{client: client, committer: committer, key: key}
}

// buildUpsertValues returns the row Save writes for key.
func buildUpsertValues(key string, payload []byte) map[string]interface{} {
	return m_preset_store.BuildUpsertMap(key, payload)
}

func (s *SpannerStore) Load(ctx context.Context) ([]byte, error) {
	stmt := spanner.Statement{
		SQL:    m_preset_store.SelectPayloadSQL,
		Params: map[string]interface{}{"key": s.key},
	}
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("spanner read preset_store: %w", err)
	}

	var payload string
	if err := row.Columns(&payload); err != nil {
		return nil, fmt.Errorf("spanner decode preset_store: %w", err)
	}
	return []byte(payload), nil
}

func (s *SpannerStore) Save(ctx context.Context, payload []byte) error {
	plan := commitplan.NewPlan()
	plan.Add(m_preset_store.UpsertMutation(buildUpsertValues(s.key, payload)))
	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("spanner write preset_store: %w", err)
	}
	return nil
}
