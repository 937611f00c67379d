package sqlite

import (
	"context"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"textstats/internal/domain"
)

// Row is one persisted statistics row.
type Row struct {
	Ordinal              int    `gorm:"primaryKey;autoIncrement:false"`
	Dateiname            string `gorm:"not null"`
	WoerterGesamt        int
	EinzigartigeWoerter  int
	NeueWoerterKumulativ int
}

// TableName keeps the table name stable regardless of struct name.
func (Row) TableName() string { return "document_stats" }

// Exporter writes the statistics table into an SQLite database file.
type Exporter struct {
	path string
}

func NewExporter(path string) *Exporter { return &Exporter{path: path} }

// Export replaces the document_stats table with the given rows.
func (e *Exporter) Export(ctx context.Context, stats []domain.DocumentStats) error {
	db, err := gorm.Open(sqlite.Open(e.path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Migrator().DropTable(&Row{}); err != nil {
			return err
		}
		if err := tx.AutoMigrate(&Row{}); err != nil {
			return err
		}
		if len(stats) == 0 {
			return nil
		}
		rows := make([]Row, len(stats))
		for i, s := range stats {
			rows[i] = Row{
				Ordinal:              s.Ordinal,
				Dateiname:            s.Name,
				WoerterGesamt:        s.TotalWords,
				EinzigartigeWoerter:  s.UniqueWords,
				NeueWoerterKumulativ: s.NewWords,
			}
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

// Load reads the exported rows back in ordinal order.
func Load(ctx context.Context, path string) ([]domain.DocumentStats, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	defer sqlDB.Close()

	var rows []Row
	if err := db.WithContext(ctx).Order("ordinal").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.DocumentStats, len(rows))
	for i, r := range rows {
		out[i] = domain.DocumentStats{
			Ordinal:     r.Ordinal,
			Name:        r.Dateiname,
			TotalWords:  r.WoerterGesamt,
			UniqueWords: r.EinzigartigeWoerter,
			NewWords:    r.NeueWoerterKumulativ,
		}
	}
	return out, nil
}
