// Command loadcsv bulk-loads seed data from CSV files into the database. It
// writes through the same store as the API, so the schema's uniqueness and
// foreign-key rules still apply; the first violation aborts the run.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/repository/sqlite"
)

// loader binds one CSV file to a row handler. Files load in slice order so
// that referenced rows exist before their referrers.
type loader struct {
	file string
	load func(ctx context.Context, row map[string]string) error
}

func main() {
	dataDir := flag.String("data", "data", "directory containing the CSV files")
	dbPath := flag.String("db", "reviewhub.db", "path to the SQLite database")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), *dataDir, *dbPath); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dataDir, dbPath string) error {
	db, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	im := db.Importer()
	loaders := []loader{
		{"users.csv", func(ctx context.Context, row map[string]string) error {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			role := domain.Role(row["role"])
			if role == "" {
				role = domain.RoleUser
			}
			if !role.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			return im.InsertUser(ctx, id, row["username"], row["email"], role,
				row["bio"], row["first_name"], row["last_name"])
		}},
		{"category.csv", func(ctx context.Context, row map[string]string) error {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			return im.InsertCategory(ctx, id, row["name"], row["slug"])
		}},
		{"genre.csv", func(ctx context.Context, row map[string]string) error {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			return im.InsertGenre(ctx, id, row["name"], row["slug"])
		}},
		{"titles.csv", func(ctx context.Context, row map[string]string) error {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			year, err := intField(row, "year")
			if err != nil {
				return err
			}
			var category *int64
			if row["category"] != "" {
				cat, err := intField(row, "category")
				if err != nil {
					return err
				}
				category = &cat
			}
			return im.InsertTitle(ctx, id, row["name"], int(year), category)
		}},
		{"genre_title.csv", func(ctx context.Context, row map[string]string) error {
			titleID, err := intField(row, "title_id")
			if err != nil {
				return err
			}
			genreID, err := intField(row, "genre_id")
			if err != nil {
				return err
			}
			return im.InsertTitleGenre(ctx, titleID, genreID)
		}},
		{"review.csv", func(ctx context.Context, row map[string]string) error {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			titleID, err := intField(row, "title_id")
			if err != nil {
				return err
			}
			authorID, err := intField(row, "author")
			if err != nil {
				return err
			}
			score, err := intField(row, "score")
			if err != nil {
				return err
			}
			pubDate, err := timeField(row, "pub_date")
			if err != nil {
				return err
			}
			return im.InsertReview(ctx, id, titleID, authorID, row["text"], int(score), pubDate)
		}},
		{"comments.csv", func(ctx context.Context, row map[string]string) error {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			reviewID, err := intField(row, "review_id")
			if err != nil {
				return err
			}
			authorID, err := intField(row, "author")
			if err != nil {
				return err
			}
			pubDate, err := timeField(row, "pub_date")
			if err != nil {
				return err
			}
			return im.InsertComment(ctx, id, reviewID, authorID, row["text"], pubDate)
		}},
	}

	for _, l := range loaders {
		n, err := loadFile(ctx, filepath.Join(dataDir, l.file), l.load)
		if err != nil {
			return fmt.Errorf("%s: %w", l.file, err)
		}
		slog.Info("loaded", "file", l.file, "rows", n)
	}
	return nil
}

// loadFile streams one CSV file, mapping each record onto its header row.
func loadFile(ctx context.Context, path string, load func(context.Context, map[string]string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		if err := load(ctx, row); err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}
}

func intField(row map[string]string, name string) (int64, error) {
	v, err := strconv.ParseInt(row[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return v, nil
}

func timeField(row map[string]string, name string) (time.Time, error) {
	raw := row[name]
	if raw == "" {
		return time.Now().UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %s: %w", name, err)
	}
	return ts, nil
}
