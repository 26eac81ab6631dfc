// Package usecase はペット管理のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"petcare_backend/internal/feature/pets/domain"
	"petcare_backend/internal/feature/pets/domain/entity"
)

const (
	maxNameLength  = 100
	maxBreedLength = 100
	maxChipLength  = 50
)

// PetRepository はペットの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PetRepository interface {
	// Create はペットを保存し、採番されたIDを設定します。
	Create(ctx context.Context, pet *entity.Pet) error
	// FindByID はIDでペットを取得します。存在しない場合はdomain.ErrPetNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Pet, error)
	// ListByOwner は飼い主のペットをID順に返します。
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Pet, error)
	// Update はペットの全項目を保存します。
	Update(ctx context.Context, pet *entity.Pet) error
	// Delete は飼い主のペットを削除します。該当が無い場合はdomain.ErrPetNotFoundを返します。
	Delete(ctx context.Context, ownerID, id uint) error
}

// petUsecase はペット操作のユースケースです。
// 全ての操作は飼い主のIDで絞り込まれ、他人のペットは存在しないものとして扱います。
type petUsecase struct {
	pets PetRepository
	now  func() time.Time
}

// NewPetUsecase はpetUsecaseの新しいインスタンスを生成します。
func NewPetUsecase(pets PetRepository) *petUsecase {
	return &petUsecase{pets: pets, now: time.Now}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidPet, fmt.Sprintf(format, args...))
}

// validate は登録時の入力を検証し、前後の空白を取り除きます。
func (u *petUsecase) validate(p *entity.Pet) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Breed = strings.TrimSpace(p.Breed)

	switch {
	case p.Name == "":
		return invalid("name is required")
	case utf8.RuneCountInString(p.Name) > maxNameLength:
		return invalid("name must be at most %d characters", maxNameLength)
	case p.Breed == "":
		return invalid("breed is required")
	case utf8.RuneCountInString(p.Breed) > maxBreedLength:
		return invalid("breed must be at most %d characters", maxBreedLength)
	case !p.Gender.Valid():
		return invalid("gender must be male or female")
	case p.Birth.IsZero():
		return invalid("birth is required")
	case p.Birth.After(u.now()):
		return invalid("birth must not be in the future")
	case p.Chip != nil && utf8.RuneCountInString(*p.Chip) > maxChipLength:
		return invalid("chip must be at most %d characters", maxChipLength)
	}
	return validateWeight(p.Weight)
}

func validateWeight(w *float64) error {
	if w != nil && *w <= 0 {
		return invalid("weight must be positive")
	}
	return nil
}

// Create は飼い主のペットを登録します。
func (u *petUsecase) Create(ctx context.Context, ownerID uint, pet entity.Pet) (*entity.Pet, error) {
	pet.ID = 0
	pet.UserID = ownerID
	if err := u.validate(&pet); err != nil {
		return nil, err
	}
	if err := u.pets.Create(ctx, &pet); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	return &pet, nil
}

// List は飼い主のペット一覧を返します。
func (u *petUsecase) List(ctx context.Context, ownerID uint) ([]entity.Pet, error) {
	pets, err := u.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// Get は飼い主のペットを1件返します。
func (u *petUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Pet, error) {
	pet, err := u.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet.UserID != ownerID {
		return nil, domain.ErrPetNotFound
	}
	return pet, nil
}

// Update は体重と避妊・去勢の有無を更新します。
func (u *petUsecase) Update(ctx context.Context, ownerID, id uint, update entity.PetUpdate) (*entity.Pet, error) {
	if err := validateWeight(update.Weight); err != nil {
		return nil, err
	}
	pet, err := u.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return pet, nil
	}

	if update.Weight != nil {
		w := *update.Weight
		pet.Weight = &w
	}
	if update.Neutered != nil {
		pet.Neutered = *update.Neutered
	}
	if err := u.pets.Update(ctx, pet); err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}
	return pet, nil
}

// Delete は飼い主のペットを削除します。
func (u *petUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.pets.Delete(ctx, ownerID, id)
}
