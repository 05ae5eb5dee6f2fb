package warehouse

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"meterportal/internal/config"
)

// BigQuery runs portal queries through one client per project.
// It is safe for concurrent use by multiple goroutines.
type BigQuery struct {
	mu       sync.Mutex
	clients  map[string]*bigquery.Client
	opts     []option.ClientOption
	location string
	timeout  time.Duration
}

var _ Warehouse = (*BigQuery)(nil)

// NewBigQuery creates a BigQuery warehouse. Clients are created lazily per project
// using application default credentials unless a credentials file is configured.
func NewBigQuery(cfg config.WarehouseConfig) *BigQuery {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return &BigQuery{
		clients:  make(map[string]*bigquery.Client),
		opts:     opts,
		location: cfg.Location,
		timeout:  cfg.Timeout,
	}
}

func (b *BigQuery) client(ctx context.Context, project string) (*bigquery.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.clients[project]; ok {
		return c, nil
	}
	c, err := bigquery.NewClient(ctx, project, b.opts...)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client for %s: %w", project, err)
	}
	b.clients[project] = c
	return c, nil
}

// Query runs q in project and returns every row keyed by schema field name.
func (b *BigQuery) Query(ctx context.Context, project string, q Query) ([]Row, error) {
	if project == "" {
		return nil, errors.New("bigquery project is not defined")
	}
	if q.SQL == "" {
		return nil, errors.New("query is empty")
	}

	c, err := b.client(ctx, project)
	if err != nil {
		return nil, err
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	bq := c.Query(q.SQL)
	bq.Location = b.location
	if q.Location != "" {
		bq.Location = q.Location
	}
	bq.Parameters = parameters(q.Parameters)

	it, err := bq.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	rows := make([]Row, 0)
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("run query: %w", err)
		}
		row := make(Row, len(values))
		for k, v := range values {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close releases every project client.
func (b *BigQuery) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for project, c := range b.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bigquery client for %s: %w", project, err))
		}
		delete(b.clients, project)
	}
	return errors.Join(errs...)
}

// parameters returns named query parameters in name order.
func parameters(in map[string]any) []bigquery.QueryParameter {
	if len(in) == 0 {
		return nil
	}
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]bigquery.QueryParameter, 0, len(names))
	for _, name := range names {
		out = append(out, bigquery.QueryParameter{Name: name, Value: in[name]})
	}
	return out
}
