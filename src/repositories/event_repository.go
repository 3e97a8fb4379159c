package repositories

import (
	"context"

	"securities/src/models"
	"securities/src/utils"

	"gorm.io/gorm"
)

type EventRepository interface {
	ListBySecurity(ctx context.Context, securityID uint) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type eventRepo struct {
	db        *gorm.DB
	integrity *integrity
}

func NewEventRepository(db *gorm.DB, schema *models.Schema) EventRepository {
	return &eventRepo{db: db, integrity: newIntegrity(schema)}
}

func (r *eventRepo) ListBySecurity(ctx context.Context, securityID uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Where("security_id = ?", securityID).Find(&events).Error; err != nil {
		return nil, utils.NewStorageError("list events", err)
	}
	return events, nil
}

// Create inserts a corporate event after verifying its security exists. A
// second event of the same type on the same date is rejected.
func (r *eventRepo) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.integrity.requireParent(tx, models.Event{}.TableName(), event.SecurityID); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&models.Event{}).
			Where("security_id = ? AND date = ? AND type = ?", event.SecurityID, event.Date, event.Type).
			Count(&count).Error
		if err != nil {
			return utils.NewStorageError("check event date", err)
		}
		if count > 0 {
			return utils.NewValidationError("date", "event of type '"+event.Type+"' already recorded for "+event.Date.String())
		}

		if err := tx.Create(event).Error; err != nil {
			return utils.NewStorageError("create event", err)
		}
		return nil
	})
}

func (r *eventRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if result.Error != nil {
		return utils.NewStorageError("delete event", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("Event", id)
	}
	return nil
}
