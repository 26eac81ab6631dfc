package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare_backend/internal/feature/pets/domain"
	"petcare_backend/internal/feature/pets/domain/entity"
)

// memoryPetRepository はテスト用のインメモリ実装です。
type memoryPetRepository struct {
	mu     sync.Mutex
	nextID uint
	pets   map[uint]entity.Pet

	err error
}

func newMemoryPetRepository() *memoryPetRepository {
	return &memoryPetRepository{nextID: 1, pets: map[uint]entity.Pet{}}
}

func (r *memoryPetRepository) Create(_ context.Context, pet *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	pet.ID = r.nextID
	r.nextID++
	r.pets[pet.ID] = *pet
	return nil
}

func (r *memoryPetRepository) FindByID(_ context.Context, id uint) (*entity.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.ErrPetNotFound
	}
	return &p, nil
}

func (r *memoryPetRepository) ListByOwner(_ context.Context, ownerID uint) ([]entity.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []entity.Pet{}
	for _, p := range r.pets {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryPetRepository) Update(_ context.Context, pet *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[pet.ID]; !ok {
		return domain.ErrPetNotFound
	}
	r.pets[pet.ID] = *pet
	return nil
}

func (r *memoryPetRepository) Delete(_ context.Context, ownerID, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != ownerID {
		return domain.ErrPetNotFound
	}
	delete(r.pets, id)
	return nil
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUsecase(repo PetRepository) *petUsecase {
	u := NewPetUsecase(repo)
	u.now = func() time.Time { return fixedNow }
	return u
}

func validPet() entity.Pet {
	return entity.Pet{
		Name:   "  Hana ",
		Breed:  "Shiba",
		Birth:  time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender: entity.GenderFemale,
	}
}

func TestPetUsecase_Create(t *testing.T) {
	t.Parallel()

	repo := newMemoryPetRepository()
	uc := newTestUsecase(repo)

	in := validPet()
	in.UserID = 999
	in.ID = 42
	pet, err := uc.Create(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, uint(1), pet.UserID, "owner comes from the caller, not the input")
	assert.Equal(t, uint(1), pet.ID)
	assert.Equal(t, "Hana", pet.Name)
}

func TestPetUsecase_CreateValidation(t *testing.T) {
	t.Parallel()

	negative := -1.0
	longChip := "123456789012345678901234567890123456789012345678901"

	tests := []struct {
		name   string
		modify func(p *entity.Pet)
	}{
		{"empty name", func(p *entity.Pet) { p.Name = "  " }},
		{"empty breed", func(p *entity.Pet) { p.Breed = "" }},
		{"unknown gender", func(p *entity.Pet) { p.Gender = "other" }},
		{"missing birth", func(p *entity.Pet) { p.Birth = time.Time{} }},
		{"future birth", func(p *entity.Pet) { p.Birth = fixedNow.AddDate(0, 0, 1) }},
		{"negative weight", func(p *entity.Pet) { p.Weight = &negative }},
		{"long chip", func(p *entity.Pet) { p.Chip = &longChip }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validPet()
			tt.modify(&p)
			_, err := newTestUsecase(newMemoryPetRepository()).Create(context.Background(), 1, p)
			assert.ErrorIs(t, err, domain.ErrInvalidPet)
		})
	}
}

func TestPetUsecase_Ownership(t *testing.T) {
	t.Parallel()

	repo := newMemoryPetRepository()
	uc := newTestUsecase(repo)
	ctx := context.Background()

	pet, err := uc.Create(ctx, 1, validPet())
	require.NoError(t, err)

	_, err = uc.Get(ctx, 2, pet.ID)
	assert.ErrorIs(t, err, domain.ErrPetNotFound)

	w := 3.0
	_, err = uc.Update(ctx, 2, pet.ID, entity.PetUpdate{Weight: &w})
	assert.ErrorIs(t, err, domain.ErrPetNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, 2, pet.ID), domain.ErrPetNotFound)

	list, err := uc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := uc.Get(ctx, 1, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, got.ID)
}

func TestPetUsecase_Update(t *testing.T) {
	t.Parallel()

	repo := newMemoryPetRepository()
	uc := newTestUsecase(repo)
	ctx := context.Background()

	pet, err := uc.Create(ctx, 1, validPet())
	require.NoError(t, err)

	w := 6.5
	neutered := true
	updated, err := uc.Update(ctx, 1, pet.ID, entity.PetUpdate{Weight: &w, Neutered: &neutered})
	require.NoError(t, err)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, 6.5, *updated.Weight)
	assert.True(t, updated.Neutered)

	unchanged, err := uc.Update(ctx, 1, pet.ID, entity.PetUpdate{})
	require.NoError(t, err)
	assert.Equal(t, 6.5, *unchanged.Weight)

	zero := 0.0
	_, err = uc.Update(ctx, 1, pet.ID, entity.PetUpdate{Weight: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidPet)

	_, err = uc.Update(ctx, 1, 999, entity.PetUpdate{Weight: &w})
	assert.ErrorIs(t, err, domain.ErrPetNotFound)
}

func TestPetUsecase_ListAndDelete(t *testing.T) {
	t.Parallel()

	repo := newMemoryPetRepository()
	uc := newTestUsecase(repo)
	ctx := context.Background()

	first, err := uc.Create(ctx, 1, validPet())
	require.NoError(t, err)
	second, err := uc.Create(ctx, 1, validPet())
	require.NoError(t, err)

	list, err := uc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, uc.Delete(ctx, 1, first.ID))
	list, err = uc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestPetUsecase_RepositoryError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("db down")
	repo := newMemoryPetRepository()
	repo.err = dbErr
	uc := newTestUsecase(repo)

	_, err := uc.Create(context.Background(), 1, validPet())
	assert.ErrorIs(t, err, dbErr)
	_, err = uc.List(context.Background(), 1)
	assert.ErrorIs(t, err, dbErr)
}
