package dataset

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Feed points at one tabular source, either an http(s) export url or a
// local file path. Workbook feeds are recognized by their .xlsx suffix.
type Feed struct {
	Name string
	URL  string
}

// FeedData joins the three loaded feeds before the catalog is built.
type FeedData struct {
	Pellets      []*datastructure.Supplier
	ResidualWood []*datastructure.Supplier
	Customers    []*datastructure.Customer
}

type Loader struct {
	log    *zap.Logger
	client *http.Client
}

func NewLoader(log *zap.Logger) *Loader {
	return &Loader{
		log: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LoadAll fetches and parses the three feeds concurrently and joins the
// results. This fan-out is the only designed concurrency of the load cycle,
// there is no ordering requirement between the feeds.
func (l *Loader) LoadAll(ctx context.Context, pellets, residualWood, customers Feed) (*FeedData, error) {
	data := &FeedData{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := l.fetch(ctx, pellets)
		if err != nil {
			return err
		}
		data.Pellets = ParseSuppliers(rows, datastructure.DatasetPellets)
		l.log.Info("loaded supplier feed", zap.String("feed", pellets.Name),
			zap.Int("rows", len(data.Pellets)))
		return nil
	})

	g.Go(func() error {
		rows, err := l.fetch(ctx, residualWood)
		if err != nil {
			return err
		}
		data.ResidualWood = ParseSuppliers(rows, datastructure.DatasetResidualWood)
		l.log.Info("loaded supplier feed", zap.String("feed", residualWood.Name),
			zap.Int("rows", len(data.ResidualWood)))
		return nil
	})

	g.Go(func() error {
		rows, err := l.fetch(ctx, customers)
		if err != nil {
			return err
		}
		data.Customers = ParseCustomers(rows)
		l.log.Info("loaded customer feed", zap.String("feed", customers.Name),
			zap.Int("rows", len(data.Customers)))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, feed Feed) ([][]string, error) {
	raw, err := l.read(ctx, feed)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(strings.SplitN(feed.URL, "?", 2)[0]), ".xlsx") {
		return ReadXLSX(bytes.NewReader(raw))
	}
	return ReadCSV(bytes.NewReader(raw))
}

func (l *Loader) read(ctx context.Context, feed Feed) ([]byte, error) {
	if !strings.HasPrefix(feed.URL, "http://") && !strings.HasPrefix(feed.URL, "https://") {
		raw, err := os.ReadFile(feed.URL)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrNotFound, "read feed file %s", feed.URL)
		}
		return raw, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "build feed request %s", feed.Name)
	}
	req.Header.Set("User-Agent", "holz-markt/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "fetch feed %s", feed.Name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.WrapErrorf(fmt.Errorf("status %s", resp.Status), util.ErrNetwork,
			"fetch feed %s", feed.Name)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "read feed body %s", feed.Name)
	}
	return buf.Bytes(), nil
}
