package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/people/model"
	helper "madrasahku_backend/internals/helpers"
	ossHelper "madrasahku_backend/internals/helpers/oss"
)

type ResultController struct {
	DB  *gorm.DB
	OSS *ossHelper.OSSService
}

func NewResultController(db *gorm.DB, oss *ossHelper.OSSService) *ResultController {
	return &ResultController{DB: db, OSS: oss}
}

// UPLOAD RESULT SHEET (staff; multipart: sheet file + exam_name)
// POST /api/a/people/:id/results
func (h *ResultController) Upload(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	if h.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	examName := strings.TrimSpace(c.FormValue("exam_name"))
	if examName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam_name is required")
	}

	person, err := h.findPerson(c, madrasaID, c.Params("id"))
	if err != nil {
		return err
	}

	fh, err := c.FormFile("sheet")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "sheet file is required")
	}

	url, err := h.OSS.UploadDocument(c.UserContext(), fh, "results/"+person.PersonID.String(),
		[]string{"image/", "application/pdf"})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	r := model.ExamResultModel{
		MadrasaID: madrasaID,
		PersonID:  person.PersonID,
		ExamName:  examName,
		SheetURL:  url,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&r).Error; err != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), url)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save result")
	}
	return helper.JsonCreated(c, "Result uploaded", r)
}

// LIST FOR PERSON (staff)
// GET /api/a/people/:id/results
func (h *ResultController) ListForPerson(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	person, err := h.findPerson(c, madrasaID, c.Params("id"))
	if err != nil {
		return err
	}
	return h.listResults(c, madrasaID, person.PersonID)
}

// MY RESULTS
// GET /api/u/people/me/results
func (h *ResultController) MyResults(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var person model.PersonModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&person, "person_user_id = ? AND person_madrasa_id = ?", userID, madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No person profile linked to this account")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return h.listResults(c, madrasaID, person.PersonID)
}

// DELETE (staff)
// DELETE /api/a/people/results/:result_id
func (h *ResultController) Delete(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var r model.ExamResultModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&r, "result_id = ? AND result_madrasa_id = ?", c.Params("result_id"), madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Result not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if err := h.DB.WithContext(c.UserContext()).Delete(&r).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete result")
	}
	if h.OSS != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), r.SheetURL)
	}
	return helper.JsonDeleted(c, "Result deleted", nil)
}

func (h *ResultController) listResults(c *fiber.Ctx, madrasaID, personID uuid.UUID) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.ExamResultModel{}).
		Where("result_madrasa_id = ? AND result_person_id = ?", madrasaID, personID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.ExamResultModel
	if err := q.Order("result_created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}

func (h *ResultController) findPerson(c *fiber.Ctx, madrasaID uuid.UUID, id string) (*model.PersonModel, error) {
	var person model.PersonModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&person, "person_id = ? AND person_madrasa_id = ?", id, madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Person not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	return &person, nil
}
