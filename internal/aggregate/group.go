// Package aggregate derives per-author views from catalog records.
//
// Grouping runs in-process over materialized records. Nothing here touches
// the store and nothing can fail; callers propagate storage errors before
// handing records in.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

// GroupByAuthor partitions records by author key and ranks the partitions by
// size, largest first.
//
// Records whose author is absent share a single Unknown group. Items within a
// group keep their input order. Groups with equal counts keep the order in
// which their author first appeared, though callers should not depend on it.
func GroupByAuthor[R, S any](records []R, author func(R) domain.AuthorKey, summary func(R) S) []domain.AuthorGroup[S] {
	index := make(map[domain.AuthorKey]int)
	groups := make([]domain.AuthorGroup[S], 0)

	for _, r := range records {
		key := author(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.AuthorGroup[S]{Author: key})
		}
		groups[i].Items = append(groups[i].Items, summary(r))
		groups[i].ItemCount++
	}

	slices.SortStableFunc(groups, func(a, b domain.AuthorGroup[S]) int {
		return cmp.Compare(b.ItemCount, a.ItemCount)
	})
	return groups
}

// BooksByAuthor groups books with their full summaries.
func BooksByAuthor(books []*domain.Book) []domain.AuthorGroup[domain.BookSummary] {
	return GroupByAuthor(books, (*domain.Book).AuthorKey, BookSummary)
}

// MagazinesByAuthor groups magazines with their full summaries.
func MagazinesByAuthor(magazines []*domain.Magazine) []domain.AuthorGroup[domain.MagazineSummary] {
	return GroupByAuthor(magazines, (*domain.Magazine).AuthorKey, MagazineSummary)
}

// BriefByAuthor groups any record kind keeping only title and ISBN.
func BriefByAuthor[R any](records []R, author func(R) domain.AuthorKey, brief func(R) domain.BriefSummary) []domain.AuthorGroup[domain.BriefSummary] {
	return GroupByAuthor(records, author, brief)
}

// BookSummary projects a book onto its grouped form.
func BookSummary(b *domain.Book) domain.BookSummary {
	return domain.BookSummary{Title: b.Title, ISBN: b.ISBN, PublishDate: b.PublishDate}
}

// MagazineSummary projects a magazine onto its grouped form.
func MagazineSummary(m *domain.Magazine) domain.MagazineSummary {
	return domain.MagazineSummary{Title: m.Title, Issue: m.Issue, PublishDate: m.PublishDate}
}

// BookBrief projects a book onto title and ISBN.
func BookBrief(b *domain.Book) domain.BriefSummary {
	return domain.BriefSummary{Title: b.Title, ISBN: b.ISBN}
}

// MagazineBrief projects a magazine onto title and ISBN.
func MagazineBrief(m *domain.Magazine) domain.BriefSummary {
	return domain.BriefSummary{Title: m.Title, ISBN: m.ISBN}
}
