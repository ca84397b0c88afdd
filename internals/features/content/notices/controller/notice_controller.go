package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/content/notices/model"
	helper "madrasahku_backend/internals/helpers"
	ossHelper "madrasahku_backend/internals/helpers/oss"
)

type NoticeController struct {
	DB       *gorm.DB
	OSS      *ossHelper.OSSService
	Validate *validator.Validate
}

func NewNoticeController(db *gorm.DB, oss *ossHelper.OSSService) *NoticeController {
	return &NoticeController{DB: db, OSS: oss, Validate: validator.New()}
}

type noticeRequest struct {
	TitleEN string `json:"title_en"`
	TitleBN string `json:"title_bn"`
	TitleAR string `json:"title_ar"`
	BodyEN  string `json:"body_en"`
	BodyBN  string `json:"body_bn"`
	BodyAR  string `json:"body_ar"`

	// pointer so a PATCH that omits it leaves the flag alone
	Published *bool  `json:"published"`
	PublishAt string `json:"publish_at"` // RFC3339; empty means now
}

// applyNoticeUpdate folds the provided fields into the row. Omitted fields
// keep their stored value.
func applyNoticeUpdate(n *model.NoticeModel, req noticeRequest) error {
	if title := helper.LangMap(req.TitleEN, req.TitleBN, req.TitleAR); len(title) > 0 {
		n.NoticeTitle = title
	}
	if body := helper.LangMap(req.BodyEN, req.BodyBN, req.BodyAR); len(body) > 0 {
		n.NoticeBody = body
	}
	if req.Published != nil {
		n.NoticePublished = *req.Published
	}
	if req.PublishAt != "" {
		t, err := time.Parse(time.RFC3339, req.PublishAt)
		if err != nil {
			return errors.New("publish_at must be RFC3339")
		}
		n.NoticePublishAt = t.UTC()
	}
	return nil
}

// CREATE
// POST /api/a/notices
func (h *NoticeController) Create(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req noticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	title := helper.LangMap(req.TitleEN, req.TitleBN, req.TitleAR)
	if len(title) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "A title in at least one language is required")
	}
	body := helper.LangMap(req.BodyEN, req.BodyBN, req.BodyAR)

	publishAt := time.Now().UTC()
	if req.PublishAt != "" {
		t, err := time.Parse(time.RFC3339, req.PublishAt)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "publish_at must be RFC3339")
		}
		publishAt = t.UTC()
	}

	n := model.NoticeModel{
		NoticeMadrasaID: madrasaID,
		NoticeTitle:     title,
		NoticeBody:      body,
		NoticePublished: req.Published != nil && *req.Published,
		NoticePublishAt: publishAt,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create notice")
	}
	return helper.JsonCreated(c, "Notice created", n)
}

// UPDATE
// PATCH /api/a/notices/:id
func (h *NoticeController) Update(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var n model.NoticeModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&n, "notice_id = ? AND notice_madrasa_id = ?", c.Params("id"), madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var req noticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := applyNoticeUpdate(&n, req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.UserContext()).Save(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notice")
	}
	return helper.JsonUpdated(c, "Notice updated", n)
}

// DELETE
// DELETE /api/a/notices/:id
func (h *NoticeController) Delete(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.UserContext()).
		Where("notice_id = ? AND notice_madrasa_id = ?", c.Params("id"), madrasaID).
		Delete(&model.NoticeModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
	}
	return helper.JsonDeleted(c, "Notice deleted", nil)
}

// UPLOAD ATTACHMENT (image or PDF)
// POST /api/a/notices/:id/attachment
func (h *NoticeController) UploadAttachment(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	if h.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	var n model.NoticeModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&n, "notice_id = ? AND notice_madrasa_id = ?", c.Params("id"), madrasaID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
	}

	fh, err := c.FormFile("attachment")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attachment file is required")
	}

	url, err := h.OSS.UploadDocument(c.UserContext(), fh, "notices/"+n.NoticeID.String(),
		[]string{"image/", "application/pdf"})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	old := n.NoticeAttachmentURL
	n.NoticeAttachmentURL = &url
	if err := h.DB.WithContext(c.UserContext()).Save(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save attachment")
	}
	if old != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), *old)
	}
	return helper.JsonUpdated(c, "Attachment uploaded", n)
}

// PUBLIC LIST (published only, newest first)
// GET /api/notices/:madrasa_id?lang=bn&page=&per_page=
func (h *NoticeController) PublicList(c *fiber.Ctx) error {
	madrasaID, err := uuid.Parse(c.Params("madrasa_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "madrasa_id is not a valid uuid")
	}
	lang := helper.NormalizeLang(c.Query("lang"))

	p := helper.ParseFiber(c, "publish_at", "desc", helper.DefaultOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.NoticeModel{}).
		Where("notice_madrasa_id = ? AND notice_published = true AND notice_publish_at <= ?",
			madrasaID, time.Now().UTC())

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.NoticeModel
	if err := q.Order("notice_publish_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	type noticeItem struct {
		NoticeID      uuid.UUID `json:"notice_id"`
		Title         string    `json:"title"`
		Body          string    `json:"body"`
		AttachmentURL *string   `json:"attachment_url,omitempty"`
		PublishAt     time.Time `json:"publish_at"`
	}
	items := make([]noticeItem, 0, len(rows))
	for i := range rows {
		items = append(items, noticeItem{
			NoticeID:      rows[i].NoticeID,
			Title:         helper.PickLang(rows[i].NoticeTitle, lang, ""),
			Body:          helper.PickLang(rows[i].NoticeBody, lang, ""),
			AttachmentURL: rows[i].NoticeAttachmentURL,
			PublishAt:     rows[i].NoticePublishAt,
		})
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p.Page, p.PerPage, len(items)))
}

// ADMIN LIST (everything, drafts included)
// GET /api/a/notices?page=&per_page=
func (h *NoticeController) AdminList(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.NoticeModel{}).
		Where("notice_madrasa_id = ?", madrasaID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.NoticeModel
	if err := q.Order("notice_created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}
