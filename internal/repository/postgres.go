package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/repository/model"
	"github.com/jonboulle/clockwork"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresParticipantRepository struct {
	db    *gorm.DB
	clock clockwork.Clock
}

func NewPostgresParticipantRepository(db *gorm.DB, clock clockwork.Clock) *PostgresParticipantRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PostgresParticipantRepository{db: db, clock: clock}
}

// Migrate creates or updates the participant and draw history tables.
func (r *PostgresParticipantRepository) Migrate() error {
	return r.db.AutoMigrate(&model.Participant{}, &model.DrawRecord{})
}

func (r *PostgresParticipantRepository) Upsert(ctx context.Context, id int64, handle, displayName string, policy domain.RejoinPolicy) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row := &model.Participant{
		ID:           id,
		Handle:       handle,
		DisplayName:  displayName,
		IsActive:     true,
		RegisteredAt: r.clock.Now().UTC(),
	}

	updates := clause.AssignmentColumns([]string{"handle", "display_name"})
	if policy == domain.RejoinReset {
		updates = append(updates,
			clause.Assignment{Column: clause.Column{Name: "address"}, Value: ""},
			clause.Assignment{Column: clause.Column{Name: "gift_proof"}, Value: gorm.Expr("NULL")},
		)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: updates,
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresParticipantRepository) SetAddress(ctx context.Context, id int64, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("id = ?", id).
		Update("address", address).Error
}

func (r *PostgresParticipantRepository) SetGiftProof(ctx context.Context, id int64, proof domain.GiftProof) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(proof)
	if err != nil {
		return fmt.Errorf("encode gift proof: %w", err)
	}

	return r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("id = ?", id).
		Update("gift_proof", datatypes.JSON(raw)).Error
}

func (r *PostgresParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row model.Participant
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	return toDomainParticipant(&row)
}

func (r *PostgresParticipantRepository) ListActive(ctx context.Context) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.Participant
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("registered_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Participant, 0, len(rows))
	for i := range rows {
		p, err := toDomainParticipant(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *PostgresParticipantRepository) GetRecipientOf(ctx context.Context, santaID int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row model.Participant
	err := r.db.WithContext(ctx).
		Where("santa_id = ?", santaID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	return toDomainParticipant(&row)
}

func (r *PostgresParticipantRepository) GetSantaOf(ctx context.Context, recipientID int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row model.Participant
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	return toDomainParticipant(&row)
}

func (r *PostgresParticipantRepository) HasCompletedDraw(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.DrawRecord{}).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresParticipantRepository) ReplaceAssignments(ctx context.Context, records []domain.DrawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([]model.DrawRecord, 0, len(records))
	for _, rec := range records {
		rows = append(rows, toModelDrawRecord(rec))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Participant{}).
			Where("recipient_id IS NOT NULL OR santa_id IS NOT NULL").
			Updates(map[string]any{
				"recipient_id": gorm.Expr("NULL"),
				"santa_id":     gorm.Expr("NULL"),
			})
		if res.Error != nil {
			return res.Error
		}

		for _, rec := range records {
			res := tx.Model(&model.Participant{}).
				Where("id = ?", rec.SantaID).
				Update("recipient_id", rec.RecipientID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInvalidAssignment
			}

			res = tx.Model(&model.Participant{}).
				Where("id = ?", rec.RecipientID).
				Update("santa_id", rec.SantaID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInvalidAssignment
			}
		}

		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PostgresParticipantRepository) ListDrawRecords(ctx context.Context) ([]domain.DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.DrawRecord
	if err := r.db.WithContext(ctx).Order("drawn_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.DrawRecord, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainDrawRecord(&rows[i]))
	}
	return result, nil
}

func toDomainParticipant(row *model.Participant) (*domain.Participant, error) {
	p := &domain.Participant{
		ID:           row.ID,
		Handle:       row.Handle,
		DisplayName:  row.DisplayName,
		Address:      row.Address,
		RecipientID:  row.RecipientID,
		SantaID:      row.SantaID,
		Active:       row.IsActive,
		RegisteredAt: row.RegisteredAt.UTC(),
	}

	if len(row.GiftProof) > 0 && string(row.GiftProof) != "null" {
		var proof domain.GiftProof
		if err := json.Unmarshal(row.GiftProof, &proof); err != nil {
			return nil, fmt.Errorf("decode gift proof of %d: %w", row.ID, err)
		}
		p.GiftProof = &proof
	}

	return p, nil
}

func toModelDrawRecord(rec domain.DrawRecord) model.DrawRecord {
	return model.DrawRecord{
		DrawID:      rec.DrawID,
		SantaID:     rec.SantaID,
		RecipientID: rec.RecipientID,
		DrawnAt:     rec.DrawnAt.UTC(),
	}
}

func toDomainDrawRecord(row *model.DrawRecord) domain.DrawRecord {
	return domain.DrawRecord{
		DrawID:      row.DrawID,
		SantaID:     row.SantaID,
		RecipientID: row.RecipientID,
		DrawnAt:     row.DrawnAt.UTC(),
	}
}
