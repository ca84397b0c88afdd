package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "madrasahku_backend/internals/databases"
	"madrasahku_backend/internals/features/tenancy/madrasas/dto"
	"madrasahku_backend/internals/features/tenancy/madrasas/model"
	helper "madrasahku_backend/internals/helpers"
	ossHelper "madrasahku_backend/internals/helpers/oss"
)

type MadrasaController struct {
	DB       *gorm.DB
	OSS      *ossHelper.OSSService
	Validate *validator.Validate
}

func NewMadrasaController(db *gorm.DB, oss *ossHelper.OSSService) *MadrasaController {
	return &MadrasaController{DB: db, OSS: oss, Validate: validator.New()}
}

const slugCacheTTL = 5 * time.Minute

func slugCacheKey(slug string) string { return "madrasa:slug:" + slug }

// CREATE
// POST /api/madrasas
func (h *MadrasaController) Create(c *fiber.Ctx) error {
	var req dto.CreateMadrasaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	base := helper.Slugify(req.Name, 100)
	slug, err := helper.EnsureUniqueSlugCI(c.UserContext(), h.DB, "madrasas", "madrasa_slug", base, nil, 100)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}

	m := model.MadrasaModel{
		MadrasaName: req.Name,
		MadrasaSlug: slug,
	}
	if req.Address != "" {
		m.MadrasaAddress = &req.Address
	}
	if req.Phone != "" {
		p, err := helper.NormalizePhone(req.Phone)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		m.MadrasaPhone = &p
	}
	if req.Email != "" {
		m.MadrasaEmail = &req.Email
	}

	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create madrasa")
	}
	return helper.JsonCreated(c, "Madrasa created", dto.FromModel(&m))
}

// GET BY SLUG (public, cached)
// GET /api/madrasas/:slug
func (h *MadrasaController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slug is required")
	}

	if database.KeyDB != nil {
		if cached, err := database.KeyDB.Get(c.UserContext(), slugCacheKey(slug)).Result(); err == nil {
			var resp dto.MadrasaResponse
			if sonic.Unmarshal([]byte(cached), &resp) == nil {
				return helper.JsonOK(c, "ok", resp)
			}
		}
	}

	var m model.MadrasaModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("LOWER(madrasa_slug) = ? AND madrasa_is_active = TRUE", slug).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	resp := dto.FromModel(&m)
	if database.KeyDB != nil {
		if raw, err := sonic.Marshal(resp); err == nil {
			_ = database.KeyDB.Set(c.UserContext(), slugCacheKey(slug), raw, slugCacheTTL).Err()
		}
	}
	return helper.JsonOK(c, "ok", resp)
}

// LIST (paginated, search by name)
// GET /api/madrasas?search=&page=&per_page=
func (h *MadrasaController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.MadrasaModel{}).
		Where("madrasa_is_active = TRUE")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("madrasa_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "madrasa_created_at",
		"name":       "madrasa_name",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var rows []model.MadrasaModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}

// UPDATE (admin of this madrasa)
// PATCH /api/a/madrasas
func (h *MadrasaController) Update(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMadrasaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.MadrasaModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, "madrasa_id = ?", madrasaID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}

	// slug is immutable; only descriptive fields change
	if req.Name != nil {
		m.MadrasaName = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		m.MadrasaAddress = req.Address
	}
	if req.Phone != nil {
		p, err := helper.NormalizePhone(*req.Phone)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		m.MadrasaPhone = &p
	}
	if req.Email != nil {
		m.MadrasaEmail = req.Email
	}

	if err := h.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update madrasa")
	}
	h.bustSlugCache(c, m.MadrasaSlug)
	return helper.JsonUpdated(c, "Madrasa updated", dto.FromModel(&m))
}

// UPLOAD LOGO
// POST /api/a/madrasas/logo
func (h *MadrasaController) UploadLogo(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	if h.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "logo file is required")
	}

	url, err := h.OSS.UploadImageAsWebP(c.UserContext(), fh, "madrasas/"+madrasaID.String()+"/logo")
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	var m model.MadrasaModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, "madrasa_id = ?", madrasaID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}
	old := m.MadrasaLogoURL
	m.MadrasaLogoURL = &url
	if err := h.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save logo")
	}
	if old != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), *old)
	}
	h.bustSlugCache(c, m.MadrasaSlug)
	return helper.JsonUpdated(c, "Logo updated", dto.FromModel(&m))
}

// VERIFY TOGGLE (platform admin)
// PATCH /api/madrasas/:id/verify
func (h *MadrasaController) SetVerified(c *fiber.Ctx) error {
	id := c.Params("id")
	var body struct {
		Verified bool `json:"verified"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res := h.DB.WithContext(c.UserContext()).Model(&model.MadrasaModel{}).
		Where("madrasa_id = ?", id).
		Update("madrasa_is_verified", body.Verified)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}
	return helper.JsonUpdated(c, "Verification updated", fiber.Map{"verified": body.Verified})
}

func (h *MadrasaController) bustSlugCache(c *fiber.Ctx, slug string) {
	if database.KeyDB != nil {
		_ = database.KeyDB.Del(c.UserContext(), slugCacheKey(strings.ToLower(slug))).Err()
	}
}
