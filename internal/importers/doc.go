// Package importers loads the book catalog from CSV exports.
//
// The import flow is:
//
//	CSV file → ParseBooksCSV → []entities.Book → Pipeline → BookStore
//
// ParseBooksCSV reports malformed rows instead of failing the whole file:
// wrong column count, a missing ISBN or title, a non-integer year and ISBNs
// repeated within the file are collected as per-line messages and skipped.
//
// The Pipeline drops books whose ISBN is already in the catalog, so a file
// can be imported again after new rows are appended. The remaining books are
// written in a single transaction; any failure leaves the catalog unchanged.
//
// # Example Usage
//
//	rows, problems, err := importers.ParseBooksCSV(file)
//	pipeline := importers.NewPipeline(books.NewRepository(db.DB))
//	result, err := pipeline.Import(ctx, rows, false)
package importers
