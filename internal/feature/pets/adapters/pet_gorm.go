// Package adapters はpetsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	authentity "petcare_backend/internal/feature/auth/domain/entity"
	"petcare_backend/internal/feature/pets/domain"
	"petcare_backend/internal/feature/pets/domain/entity"
	"petcare_backend/internal/feature/pets/usecase"
)

// PetModel はpetsテーブルの行です。飼い主の削除時に一緒に削除されます。
type PetModel struct {
	ID       uint             `gorm:"primaryKey"`
	UserID   uint             `gorm:"not null;index"`
	User     *authentity.User `gorm:"constraint:OnDelete:CASCADE"`
	Name     string           `gorm:"size:100;not null"`
	Breed    string           `gorm:"size:100;not null"`
	Birth    time.Time        `gorm:"type:date;not null"`
	Gender   string           `gorm:"size:16;not null"`
	Chip     *string          `gorm:"size:50"`
	Illness  bool             `gorm:"not null;default:false"`
	Neutered bool             `gorm:"not null;default:false"`
	Weight   *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PetModel) TableName() string {
	return "pets"
}

func toModel(e *entity.Pet) PetModel {
	return PetModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Breed:     e.Breed,
		Birth:     e.Birth,
		Gender:    string(e.Gender),
		Chip:      e.Chip,
		Illness:   e.Illness,
		Neutered:  e.Neutered,
		Weight:    e.Weight,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m PetModel) toEntity() entity.Pet {
	return entity.Pet{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Breed:     m.Breed,
		Birth:     m.Birth.UTC(),
		Gender:    entity.Gender(m.Gender),
		Chip:      m.Chip,
		Illness:   m.Illness,
		Neutered:  m.Neutered,
		Weight:    m.Weight,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type petRepository struct {
	db *gorm.DB
}

var _ usecase.PetRepository = (*petRepository)(nil)

func NewPetRepository(db *gorm.DB) *petRepository {
	return &petRepository{db: db}
}

// isForeignKeyViolation は外部キー制約違反のエラーかどうかを判定します。
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// Create はペットを登録します。飼い主が削除済みの場合はdomain.ErrOwnerNotFoundを返します。
func (r *petRepository) Create(ctx context.Context, pet *entity.Pet) error {
	m := toModel(pet)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOwnerNotFound
		}
		return err
	}
	*pet = m.toEntity()
	return nil
}

func (r *petRepository) FindByID(ctx context.Context, id uint) (*entity.Pet, error) {
	var m PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPetNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Pet, error) {
	var rows []PetModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *petRepository) Update(ctx context.Context, pet *entity.Pet) error {
	// 登録後に変更できるのは体重と避妊・去勢の有無のみ
	res := r.db.WithContext(ctx).Model(&PetModel{}).
		Where("id = ? AND user_id = ?", pet.ID, pet.UserID).
		Updates(map[string]any{
			"weight":   pet.Weight,
			"neutered": pet.Neutered,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&PetModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}
