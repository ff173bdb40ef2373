package db

import (
	"encoding/csv"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CharacterLibrary is the seeded pool of character names grouped by
// category; rooms created with a category draw from it instead of
// collecting player submissions.
type CharacterLibrary struct {
	ID        uint      `gorm:"primaryKey"`
	Category  string    `gorm:"size:64;not null;uniqueIndex:idx_character_library_category_name"`
	Name      string    `gorm:"size:120;not null;uniqueIndex:idx_character_library_category_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type characterRecord struct {
	Category string
	Name     string
}

// LoadCharacterLibrary reads category,name rows from a CSV and upserts
// them into the character_libraries table.
func LoadCharacterLibrary(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readCharacters(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := CharacterLibrary{
			Category: record.Category,
			Name:     record.Name,
		}
		if err := conn.FirstOrCreate(&entry, CharacterLibrary{Category: entry.Category, Name: entry.Name}).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// ListCategoryCharacters returns all names in a category.
func ListCategoryCharacters(conn *gorm.DB, category string) ([]string, error) {
	var entries []CharacterLibrary
	if err := conn.Where("category = ?", category).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names, nil
}

// ListCategories returns the distinct category labels.
func ListCategories(conn *gorm.DB) ([]string, error) {
	var categories []string
	if err := conn.Model(&CharacterLibrary{}).Distinct("category").Order("category asc").Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func readCharacters(path string) ([]characterRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []characterRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		category := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if category == "" || name == "" {
			continue
		}
		records = append(records, characterRecord{Category: category, Name: name})
	}
	return records, nil
}
