package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/service"
)

// seedAuthors includes a missing author so the Unknown group shows up.
var seedAuthors = []*string{
	ptr("Ursula K. Le Guin"),
	ptr("Octavia E. Butler"),
	ptr("Italo Calvino"),
	ptr("Toni Morrison"),
	ptr("Stanisław Lem"),
	nil,
}

var seedWords = []string{
	"Silent", "Glass", "River", "Winter", "Distant", "Garden", "Lantern", "Salt",
	"Empire", "Orchard", "Tide", "Atlas", "Harbor", "Ember", "Quiet", "Northern",
}

var seedPeriodicals = []string{"Review", "Quarterly", "Monthly", "Gazette", "Digest"}

type seedOptions struct {
	books     int
	magazines int
	seed      uint64
}

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog with sample books and magazines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(flags, true)
			if err != nil {
				return err
			}
			defer e.Close()

			books, magazines := e.services()
			created, err := seed(cmd, books, magazines, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d books and %d magazines\n", created.books, created.magazines)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.books, "books", 20, "Number of books to create")
	cmd.Flags().IntVar(&opts.magazines, "magazines", 10, "Number of magazines to create")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed; the same seed produces the same catalog")
	return cmd
}

func seed(cmd *cobra.Command, books *service.BookService, magazines *service.MagazineService, opts seedOptions) (seedOptions, error) {
	ctx := cmd.Context()
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	var done seedOptions

	for n := range opts.books {
		in := service.BookInput{
			Title:       seedTitle(rng),
			Author:      seedAuthors[rng.IntN(len(seedAuthors))],
			ISBN:        seedISBN(rng),
			PublishDate: seedDate(rng),
		}
		if _, err := books.Create(ctx, in); err != nil {
			return done, fmt.Errorf("create book %d: %w", n+1, err)
		}
		done.books++
	}

	for n := range opts.magazines {
		in := service.MagazineInput{
			Title:       "The " + seedWords[rng.IntN(len(seedWords))] + " " + seedPeriodicals[rng.IntN(len(seedPeriodicals))],
			Author:      seedAuthors[rng.IntN(len(seedAuthors))],
			ISBN:        seedISBN(rng),
			PublishDate: seedDate(rng),
			Issue:       fmt.Sprintf("No. %d", 1+rng.IntN(200)),
		}
		if _, err := magazines.Create(ctx, in); err != nil {
			return done, fmt.Errorf("create magazine %d: %w", n+1, err)
		}
		done.magazines++
	}

	return done, nil
}

func seedTitle(rng *rand.Rand) string {
	return "The " + seedWords[rng.IntN(len(seedWords))] + " " + seedWords[rng.IntN(len(seedWords))]
}

func seedISBN(rng *rand.Rand) string {
	return fmt.Sprintf("978-%d-%04d-%04d-%d", rng.IntN(10), rng.IntN(10000), rng.IntN(10000), rng.IntN(10))
}

func seedDate(rng *rand.Rand) string {
	start := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, rng.IntN(365*75)).Format(domain.DateLayout)
}

func ptr(s string) *string { return &s }
