package dbstore

import (
	"strings"
	"time"

	"github.com/mkarven/listwise/pkg/suggest"
)

// ItemModel maps the host app's items table. Image references are stored as
// a newline-joined list; the engine passes them through untouched.
type ItemModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	ListID       string    `gorm:"size:36;not null;index"`
	Title        string    `gorm:"size:200;not null;index"`
	Description  string    `gorm:"type:text"`
	Quantity     int       `gorm:"not null;default:0"`
	Images       string    `gorm:"type:text"`
	IsCrossedOut bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null;index"`
	ModifiedAt   time.Time `gorm:"index"`
}

// TableName returns the table name for ItemModel
func (ItemModel) TableName() string {
	return "items"
}

// ToHistoricalItem converts the GORM model to the engine's value type.
func (m *ItemModel) ToHistoricalItem() suggest.HistoricalItem {
	var images []string
	if m.Images != "" {
		images = strings.Split(m.Images, "\n")
	}
	return suggest.HistoricalItem{
		ID:           m.ID,
		ListID:       m.ListID,
		Title:        m.Title,
		Description:  m.Description,
		Quantity:     m.Quantity,
		Images:       images,
		CreatedAt:    m.CreatedAt,
		ModifiedAt:   m.ModifiedAt,
		IsCrossedOut: m.IsCrossedOut,
	}
}

// fromHistoricalItem converts an engine value into the GORM model.
func fromHistoricalItem(item suggest.HistoricalItem) ItemModel {
	return ItemModel{
		ID:           item.ID,
		ListID:       item.ListID,
		Title:        item.Title,
		Description:  item.Description,
		Quantity:     item.Quantity,
		Images:       strings.Join(item.Images, "\n"),
		IsCrossedOut: item.IsCrossedOut,
		CreatedAt:    item.CreatedAt,
		ModifiedAt:   item.ModifiedAt,
	}
}
