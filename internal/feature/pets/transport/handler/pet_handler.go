// Package handler はpetsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"petcare_backend/internal/api"
	"petcare_backend/internal/feature/pets/domain"
	"petcare_backend/internal/feature/pets/domain/entity"
	"petcare_backend/internal/feature/pets/transport/http/dto"
	jwtmw "petcare_backend/internal/platform/jwt"
	"petcare_backend/internal/platform/logger"
)

// PetUsecase はペット操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PetUsecase interface {
	Create(ctx context.Context, ownerID uint, pet entity.Pet) (*entity.Pet, error)
	List(ctx context.Context, ownerID uint) ([]entity.Pet, error)
	Get(ctx context.Context, ownerID, id uint) (*entity.Pet, error)
	Update(ctx context.Context, ownerID, id uint, update entity.PetUpdate) (*entity.Pet, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// PetHandler はペットのHTTPリクエストを処理します。全てのエンドポイントは認証必須です。
type PetHandler struct {
	uc PetUsecase
}

// NewPetHandler はPetHandlerの新しいインスタンスを生成します。
func NewPetHandler(uc PetUsecase) *PetHandler {
	return &PetHandler{uc: uc}
}

// writeError はドメインエラーをHTTPステータスに変換して返します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPetNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "pet_not_found", Message: domain.ErrPetNotFound.Error()})
	case errors.Is(err, domain.ErrOwnerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user_not_found", Message: "user not found"})
	case errors.Is(err, domain.ErrInvalidPet):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid_pet", Message: err.Error()})
	default:
		logger.LogError(c.Request.Context(), "pet operation failed", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal_error", Message: "internal server error"})
	}
}

// writeBindError はバインドエラーをログに残し、詳細を含めずに400を返します。
func writeBindError(c *gin.Context, msg string, err error) {
	slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid_request", Message: "invalid request"})
}

// owner は認証ミドルウェアが設定した飼い主IDを返します。
func owner(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "missing_credentials", Message: "authentication required"})
		return 0, false
	}
	return id.UserID, true
}

func petID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid_request", Message: "pet id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// Create はペットを登録します。
// POST /api/pets/
func (h *PetHandler) Create(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req api.PetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "pet create validation failed", err)
		return
	}

	pet, err := h.uc.Create(c.Request.Context(), ownerID, dto.FromCreateRequest(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPetResponse(pet))
}

// List は飼い主のペット一覧を返します。
// GET /api/pets/
func (h *PetHandler) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	pets, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPetListResponse(pets))
}

// Get はペットを1件返します。
// GET /api/pets/:id
func (h *PetHandler) Get(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := petID(c)
	if !ok {
		return
	}
	pet, err := h.uc.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPetResponse(pet))
}

// Update は体重と避妊・去勢の有無を更新します。
// PATCH /api/pets/:id
func (h *PetHandler) Update(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := petID(c)
	if !ok {
		return
	}
	var req api.PetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "pet update validation failed", err)
		return
	}
	pet, err := h.uc.Update(c.Request.Context(), ownerID, id, dto.FromUpdateRequest(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPetResponse(pet))
}

// Delete はペットを削除します。
// DELETE /api/pets/:id
func (h *PetHandler) Delete(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := petID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), ownerID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
