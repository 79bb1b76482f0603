package storage

import (
	"time"

	"complaintportal/backend/internal/models"

	"gorm.io/gorm"
)

// ComplaintRow is the PostgreSQL row of a complaint. Seq keeps insertion
// order; the public identifier lives in ComplaintID.
type ComplaintRow struct {
	Seq          uint      `gorm:"primaryKey;autoIncrement"`
	ComplaintID  string    `gorm:"column:complaint_id;type:text;not null;uniqueIndex"`
	FullName     string    `gorm:"type:text;not null"`
	Email        string    `gorm:"type:text;not null"`
	Phone        string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:text;not null"`
	District     string    `gorm:"type:text;not null"`
	Municipality string    `gorm:"type:text"`
	Location     string    `gorm:"type:text"`
	Description  string    `gorm:"type:text;not null"`
	Priority     string    `gorm:"type:text;not null"`
	PhotoURL     *string   `gorm:"type:text"`
	Status       string    `gorm:"type:text;not null;index"`
	SubmittedAt  time.Time `gorm:"not null"`
}

// TableName pins the table name regardless of the struct name.
func (ComplaintRow) TableName() string {
	return "complaints"
}

// Migrate creates or updates the complaints table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ComplaintRow{})
}

func rowFromComplaint(c *models.Complaint) ComplaintRow {
	return ComplaintRow{
		ComplaintID:  c.ID,
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		Category:     string(c.Category),
		District:     c.District,
		Municipality: c.Municipality,
		Location:     c.Location,
		Description:  c.Description,
		Priority:     string(c.Priority),
		PhotoURL:     c.PhotoURL,
		Status:       string(c.Status),
		SubmittedAt:  c.SubmittedAt.UTC(),
	}
}

func (r ComplaintRow) toComplaint() models.Complaint {
	return models.Complaint{
		ID:           r.ComplaintID,
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        r.Phone,
		Category:     models.Category(r.Category),
		District:     r.District,
		Municipality: r.Municipality,
		Location:     r.Location,
		Description:  r.Description,
		Priority:     models.Priority(r.Priority),
		PhotoURL:     r.PhotoURL,
		Status:       models.Status(r.Status),
		SubmittedAt:  r.SubmittedAt.UTC(),
	}
}
