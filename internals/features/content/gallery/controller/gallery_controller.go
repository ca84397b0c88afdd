package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/content/gallery/model"
	helper "madrasahku_backend/internals/helpers"
	ossHelper "madrasahku_backend/internals/helpers/oss"
)

type GalleryController struct {
	DB  *gorm.DB
	OSS *ossHelper.OSSService
}

func NewGalleryController(db *gorm.DB, oss *ossHelper.OSSService) *GalleryController {
	return &GalleryController{DB: db, OSS: oss}
}

// UPLOAD (multipart: image file + optional captions + sort)
// POST /api/a/gallery
func (h *GalleryController) Upload(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	if h.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "image file is required")
	}

	url, err := h.OSS.UploadImageAsWebP(c.UserContext(), fh, "gallery/"+madrasaID.String())
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	sort, _ := strconv.Atoi(c.FormValue("sort", "0"))
	g := model.GalleryModel{
		GalleryMadrasaID: madrasaID,
		GalleryCaption:   helper.LangMap(c.FormValue("caption_en"), c.FormValue("caption_bn"), c.FormValue("caption_ar")),
		GalleryImageURL:  url,
		GallerySort:      sort,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&g).Error; err != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), url)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save gallery item")
	}
	return helper.JsonCreated(c, "Image added to gallery", g)
}

// DELETE
// DELETE /api/a/gallery/:id
func (h *GalleryController) Delete(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var g model.GalleryModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&g, "gallery_id = ? AND gallery_madrasa_id = ?", c.Params("id"), madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Gallery item not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if err := h.DB.WithContext(c.UserContext()).Delete(&g).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete gallery item")
	}
	if h.OSS != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), g.GalleryImageURL)
	}
	return helper.JsonDeleted(c, "Gallery item deleted", nil)
}

// PUBLIC LIST (sorted)
// GET /api/gallery/:madrasa_id?lang=bn&page=&per_page=
func (h *GalleryController) PublicList(c *fiber.Ctx) error {
	madrasaID, err := uuid.Parse(c.Params("madrasa_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "madrasa_id is not a valid uuid")
	}
	lang := helper.NormalizeLang(c.Query("lang"))

	p := helper.ParseFiber(c, "sort", "asc", helper.DefaultOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.GalleryModel{}).
		Where("gallery_madrasa_id = ?", madrasaID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.GalleryModel
	if err := q.Order("gallery_sort ASC, gallery_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	type galleryItem struct {
		GalleryID uuid.UUID `json:"gallery_id"`
		Caption   string    `json:"caption"`
		ImageURL  string    `json:"image_url"`
		Sort      int       `json:"sort"`
	}
	items := make([]galleryItem, 0, len(rows))
	for i := range rows {
		items = append(items, galleryItem{
			GalleryID: rows[i].GalleryID,
			Caption:   helper.PickLang(rows[i].GalleryCaption, lang, ""),
			ImageURL:  rows[i].GalleryImageURL,
			Sort:      rows[i].GallerySort,
		})
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p.Page, p.PerPage, len(items)))
}
