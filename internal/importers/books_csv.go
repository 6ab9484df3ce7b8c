package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// bookCSVColumns is the column order of a catalog export: isbn, title, author, year.
const bookCSVColumns = 4

// ParseBooksCSV reads a catalog CSV. The first row is a header and is skipped.
// Returns the parsed books, any row-level errors encountered, and a fatal error
// if the file cannot be read at all.
func ParseBooksCSV(r io.Reader) ([]entities.Book, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Column count is checked per row

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var books []entities.Book
	var errors []string
	seen := make(map[string]int)
	lineNum := 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		if len(record) != bookCSVColumns {
			errors = append(errors, fmt.Sprintf("Line %d: expected %d columns, got %d", lineNum, bookCSVColumns, len(record)))
			continue
		}

		book := entities.Book{
			ISBN:   strings.TrimSpace(record[0]),
			Title:  strings.TrimSpace(record[1]),
			Author: strings.TrimSpace(record[2]),
		}

		if book.ISBN == "" || book.Title == "" {
			errors = append(errors, fmt.Sprintf("Line %d: skipped - missing isbn or title", lineNum))
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			errors = append(errors, fmt.Sprintf("Line %d: invalid year %q", lineNum, record[3]))
			continue
		}
		book.Year = year

		if first, ok := seen[book.ISBN]; ok {
			errors = append(errors, fmt.Sprintf("Line %d: skipped - isbn %s already on line %d", lineNum, book.ISBN, first))
			continue
		}
		seen[book.ISBN] = lineNum

		books = append(books, book)
	}

	return books, errors, nil
}
