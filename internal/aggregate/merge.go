package aggregate

import "github.com/bookstoreapp/bookstore-server/internal/domain"

// Merge joins per-author book groups and magazine groups into one view.
//
// Every book group yields a record, in the order given, carrying the matching
// magazine group if one exists. Magazine groups with no book group are then
// appended in their own order. The result is therefore ranked by book count
// first and is not a sort on combined totals.
//
// Matching is a linear scan on both passes, so the cost is O(books x magazines)
// in the number of groups. Author counts in a single catalog keep this small.
func Merge(books []domain.AuthorGroup[domain.BookSummary], magazines []domain.AuthorGroup[domain.MagazineSummary]) []domain.CombinedAuthorRecord {
	out := make([]domain.CombinedAuthorRecord, 0, len(books)+len(magazines))

	for _, bg := range books {
		rec := domain.CombinedAuthorRecord{
			Author:    bg.Author,
			BookCount: bg.ItemCount,
			Books:     nonNil(bg.Items),
			Magazines: []domain.MagazineSummary{},
		}
		for _, mg := range magazines {
			if mg.Author == bg.Author {
				rec.MagazineCount = mg.ItemCount
				rec.Magazines = nonNil(mg.Items)
				break
			}
		}
		out = append(out, rec)
	}

	for _, mg := range magazines {
		if contains(out, mg.Author) {
			continue
		}
		out = append(out, domain.CombinedAuthorRecord{
			Author:        mg.Author,
			Books:         []domain.BookSummary{},
			MagazineCount: mg.ItemCount,
			Magazines:     nonNil(mg.Items),
		})
	}

	return out
}

func contains(records []domain.CombinedAuthorRecord, author domain.AuthorKey) bool {
	for _, r := range records {
		if r.Author == author {
			return true
		}
	}
	return false
}

func nonNil[S any](items []S) []S {
	if items == nil {
		return []S{}
	}
	return items
}
