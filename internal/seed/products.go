package seed

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// LoadProducts ingests the CSV catalog into the products table, ignoring
// duplicates. Columns: product_name, brand_name, category, description,
// price, selling_price, image_url.
func LoadProducts(db *sqlx.DB, log zerolog.Logger, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Warn().Str("path", csvPath).Err(err).Msg("product catalog not loaded")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Warn().Err(err).Msg("unable to read product catalog header")
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Warn().Err(err).Msg("unable to start product seed transaction")
		return
	}
	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO products (product_name, brand_name, category, description, price, selling_price, product_image) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		log.Warn().Err(err).Msg("unable to prepare product insert")
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("unable to read product row")
			continue
		}
		if len(record) < 7 {
			continue
		}
		name := strings.TrimSpace(record[0])
		brand := strings.TrimSpace(record[1])
		category := strings.TrimSpace(record[2])
		description := strings.TrimSpace(record[3])
		price, _ := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		sellingPrice, _ := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
		imageURL := strings.TrimSpace(record[6])

		if name == "" || category == "" || sellingPrice <= 0 {
			continue
		}

		images := []string{}
		if imageURL != "" {
			images = append(images, imageURL)
		}
		encoded, _ := json.Marshal(images)

		if _, err := stmt.Exec(name, brand, category, description, price, sellingPrice, string(encoded)); err != nil {
			log.Warn().Str("product", name).Err(err).Msg("unable to insert product")
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("unable to commit product seed")
	} else {
		log.Info().Int("rows", rows).Msg("seeded product catalog")
	}
}
