package config

const (
	// DefaultRatingsBaseURL is the Goodreads API root used for external ratings
	DefaultRatingsBaseURL = "https://www.goodreads.com"

	// DefaultImportFile is the catalog CSV read by import-books when -file is omitted
	DefaultImportFile = "./books.csv"
)
