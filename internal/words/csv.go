package words

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
)

// FromCSV builds a bank from a one-word-per-row CSV file. Extra columns are
// ignored; blank rows are skipped.
func FromCSV(filePath string) (*Bank, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read word file %s: %w", filePath, err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s as CSV: %w", filePath, err)
	}

	var list []string
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		word := strings.TrimSpace(record[0])
		if word == "" {
			log.Println("Skipping empty word record:", record)
			continue
		}
		list = append(list, word)
	}

	return New(list)
}
