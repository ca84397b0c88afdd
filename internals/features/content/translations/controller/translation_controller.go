package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	database "madrasahku_backend/internals/databases"
	"madrasahku_backend/internals/features/content/translations/model"
	helper "madrasahku_backend/internals/helpers"
)

type TranslationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTranslationController(db *gorm.DB) *TranslationController {
	return &TranslationController{DB: db, Validate: validator.New()}
}

const mapCacheTTL = 10 * time.Minute

func mapCacheKey(madrasaID, lang string) string {
	return "i18n:" + madrasaID + ":" + lang
}

type upsertTranslationRequest struct {
	Key string `json:"key" validate:"required,min=1,max=150"`
	EN  string `json:"en"`
	BN  string `json:"bn"`
	AR  string `json:"ar"`
}

// UPSERT (admin; tenant scope comes from the token)
// PUT /api/a/translations
func (h *TranslationController) Upsert(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req upsertTranslationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	values := helper.LangMap(req.EN, req.BN, req.AR)
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "At least one language value is required")
	}

	key := strings.TrimSpace(req.Key)
	var row model.TranslationModel
	err = h.DB.WithContext(c.UserContext()).
		Where("translation_madrasa_id = ? AND translation_key = ?", madrasaID, key).
		First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = model.TranslationModel{
			TranslationMadrasaID: &madrasaID,
			TranslationKey:       key,
			TranslationValues:    values,
		}
		if err := h.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create translation")
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	default:
		row.TranslationValues = values
		if err := h.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update translation")
		}
	}

	h.bustMapCache(c, madrasaID)
	return helper.JsonUpdated(c, "Translation saved", row)
}

// DELETE
// DELETE /api/a/translations/:key
func (h *TranslationController) Delete(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	key := strings.TrimSpace(c.Params("key"))
	res := h.DB.WithContext(c.UserContext()).
		Where("translation_madrasa_id = ? AND translation_key = ?", madrasaID, key).
		Delete(&model.TranslationModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Translation not found")
	}
	h.bustMapCache(c, madrasaID)
	return helper.JsonDeleted(c, "Translation deleted", nil)
}

// LOOKUP ONE KEY
// GET /api/translations/:madrasa_id/:key?lang=bn
func (h *TranslationController) Lookup(c *fiber.Ctx) error {
	madrasaID, err := uuid.Parse(c.Params("madrasa_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "madrasa_id is not a valid uuid")
	}
	key := strings.TrimSpace(c.Params("key"))
	lang := helper.NormalizeLang(c.Query("lang"))

	row, err := h.resolveKey(c, madrasaID, key)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	value := key // unknown keys echo back, so missing strings are visible
	if row != nil {
		value = helper.PickLang(row.TranslationValues, lang, key)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"key": key, "lang": lang, "value": value})
}

// FULL MAP (app bootstrap, cached)
// GET /api/translations/:madrasa_id?lang=bn
func (h *TranslationController) FullMap(c *fiber.Ctx) error {
	madrasaID, err := uuid.Parse(c.Params("madrasa_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "madrasa_id is not a valid uuid")
	}
	lang := helper.NormalizeLang(c.Query("lang"))

	cacheKey := mapCacheKey(madrasaID.String(), lang)
	if database.KeyDB != nil {
		if cached, err := database.KeyDB.Get(c.UserContext(), cacheKey).Result(); err == nil {
			var out map[string]string
			if sonic.Unmarshal([]byte(cached), &out) == nil {
				return helper.JsonOK(c, "ok", out)
			}
		}
	}

	// globals first, then tenant rows override on key collision
	var rows []model.TranslationModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("translation_madrasa_id IS NULL OR translation_madrasa_id = ?", madrasaID).
		Order("translation_madrasa_id ASC NULLS FIRST").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	out := make(map[string]string, len(rows))
	for i := range rows {
		out[rows[i].TranslationKey] = helper.PickLang(rows[i].TranslationValues, lang, rows[i].TranslationKey)
	}

	if database.KeyDB != nil {
		if raw, err := sonic.Marshal(out); err == nil {
			_ = database.KeyDB.Set(c.UserContext(), cacheKey, raw, mapCacheTTL).Err()
		}
	}
	return helper.JsonOK(c, "ok", out)
}

func (h *TranslationController) resolveKey(c *fiber.Ctx, madrasaID uuid.UUID, key string) (*model.TranslationModel, error) {
	var row model.TranslationModel
	err := h.DB.WithContext(c.UserContext()).
		Where("translation_madrasa_id = ? AND translation_key = ?", madrasaID, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = h.DB.WithContext(c.UserContext()).
			Where("translation_madrasa_id IS NULL AND translation_key = ?", key).
			First(&row).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (h *TranslationController) bustMapCache(c *fiber.Ctx, madrasaID uuid.UUID) {
	if database.KeyDB == nil {
		return
	}
	for _, lang := range []string{"en", "bn", "ar"} {
		_ = database.KeyDB.Del(c.UserContext(), mapCacheKey(madrasaID.String(), lang)).Err()
	}
}
