// Package dto はpetsフィーチャーのAPI型とドメインエンティティの相互変換を定義します。
package dto

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"petcare_backend/internal/api"
	"petcare_backend/internal/feature/pets/domain/entity"
)

// FromCreateRequest は登録リクエストをエンティティに変換します。飼い主はここでは設定しません。
func FromCreateRequest(req api.PetCreateRequest) entity.Pet {
	return entity.Pet{
		Name:     req.Name,
		Breed:    req.Breed,
		Birth:    req.Birth.Time,
		Gender:   entity.Gender(req.Gender),
		Chip:     req.Chip,
		Illness:  req.Illness,
		Neutered: req.Neutered,
		Weight:   req.Weight,
	}
}

// FromUpdateRequest は更新リクエストを更新内容に変換します。
func FromUpdateRequest(req api.PetUpdateRequest) entity.PetUpdate {
	return entity.PetUpdate{
		Weight:   req.Weight,
		Neutered: req.Neutered,
	}
}

// ToPetResponse はエンティティをレスポンス型に変換します。
func ToPetResponse(p *entity.Pet) api.PetResponse {
	return api.PetResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		Name:     p.Name,
		Breed:    p.Breed,
		Birth:    openapi_types.Date{Time: p.Birth},
		Gender:   string(p.Gender),
		Chip:     p.Chip,
		Illness:  p.Illness,
		Neutered: p.Neutered,
		Weight:   p.Weight,
	}
}

// ToPetListResponse はエンティティの一覧をレスポンス型に変換します。
func ToPetListResponse(pets []entity.Pet) []api.PetResponse {
	out := make([]api.PetResponse, 0, len(pets))
	for i := range pets {
		out = append(out, ToPetResponse(&pets[i]))
	}
	return out
}
