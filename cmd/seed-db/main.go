// Command seed-db loads product catalog fixtures into the database.
// Fixture files are JSON arrays of products, optionally gzip-compressed;
// several files can be loaded at once.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/larek-storefront/internal/repository"
)

type productJSON struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

const upsertProductSQL = `INSERT INTO products (id, title, description, image, category, price)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		image = EXCLUDED.image,
		category = EXCLUDED.category,
		price = EXCLUDED.price`

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	files := flag.Args()
	if len(files) == 0 {
		slog.Error("usage: seed-db [flags] products.json [more.json.gz ...]")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, files); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string, files []string) error {
	// Read and decode all fixture files concurrently.
	decoded := make([][]productJSON, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			products, err := readFixture(gctx, f)
			if err != nil {
				return errors.Wrapf(err, "read %s", f)
			}
			decoded[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	total := 0
	for i, products := range decoded {
		for _, p := range products {
			if _, err := pool.Exec(ctx, upsertProductSQL,
				p.ID, p.Title, p.Description, p.Image, p.Category, p.Price,
			); err != nil {
				return errors.Wrapf(err, "upsert product %s", p.ID)
			}
			total++
		}
		slog.Info("file loaded", slog.String("file", files[i]), slog.Int("products", len(products)))
	}

	slog.Info("products written", slog.Int("count", total))
	return nil
}

// readFixture decodes one fixture file, transparently handling gzip.
func readFixture(ctx context.Context, path string) ([]productJSON, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	var products []productJSON
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}
