package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/constants"
	"madrasahku_backend/internals/features/people/dto"
	"madrasahku_backend/internals/features/people/model"
	helper "madrasahku_backend/internals/helpers"
	ossHelper "madrasahku_backend/internals/helpers/oss"
	"madrasahku_backend/internals/helpers/secure"
)

type PersonController struct {
	DB       *gorm.DB
	OSS      *ossHelper.OSSService
	Validate *validator.Validate
}

func NewPersonController(db *gorm.DB, oss *ossHelper.OSSService) *PersonController {
	return &PersonController{DB: db, OSS: oss, Validate: validator.New()}
}

// CREATE (office registers a person without a login account)
// POST /api/a/people
func (h *PersonController) Create(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !constants.IsValidAccType(req.AccType) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown acc_type")
	}

	p := model.PersonModel{
		MadrasaID:  madrasaID,
		AccType:    req.AccType,
		FullName:   strings.TrimSpace(req.FullName),
		EnrolledAt: time.Now().UTC(),
	}
	if err := applyOptionalFields(&p, req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create person")
	}
	return helper.JsonCreated(c, "Person created", dto.FromModel(&p, true))
}

func applyOptionalFields(p *model.PersonModel, req dto.CreatePersonRequest) error {
	setOpt := func(dst **string, v string) {
		if s := strings.TrimSpace(v); s != "" {
			*dst = &s
		}
	}
	setOpt(&p.GuardianName, req.GuardianName)
	setOpt(&p.Gender, req.Gender)
	setOpt(&p.BloodGroup, req.BloodGroup)
	setOpt(&p.Address, req.Address)
	setOpt(&p.ClassName, req.ClassName)
	setOpt(&p.Designation, req.Designation)

	if s := strings.TrimSpace(req.DateOfBirth); s != "" {
		dob, err := time.Parse("2006-01-02", s)
		if err != nil {
			return errors.New("date_of_birth must be YYYY-MM-DD")
		}
		p.DateOfBirth = &dob
	}
	if s := strings.TrimSpace(req.GuardianPhone); s != "" {
		normalized, err := helper.NormalizePhone(s)
		if err != nil {
			return errors.New("guardian_phone is not a valid phone number")
		}
		enc, err := secure.Encrypt(normalized)
		if err != nil {
			return errors.New("failed to protect guardian phone")
		}
		p.GuardianPhoneEnc = &enc
	}
	if s := strings.TrimSpace(req.NationalID); s != "" {
		enc, err := secure.Encrypt(s)
		if err != nil {
			return errors.New("failed to protect national id")
		}
		p.NationalIDEnc = &enc
	}
	return nil
}

// LIST (staff; filter by class, acc_type, name search)
// GET /api/a/people?search=&class_name=&acc_type=&page=&per_page=
func (h *PersonController) List(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.PersonModel{}).
		Where("person_madrasa_id = ?", madrasaID)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("person_full_name ILIKE ?", "%"+search+"%")
	}
	if cls := strings.TrimSpace(c.Query("class_name")); cls != "" {
		q = q.Where("person_class_name = ?", cls)
	}
	if at := strings.TrimSpace(c.Query("acc_type")); at != "" {
		q = q.Where("person_acc_type = ?", at)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at":  "person_created_at",
		"full_name":   "person_full_name",
		"enrolled_at": "person_enrolled_at",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var rows []model.PersonModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows, true),
		helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}

// GET BY ID (staff)
// GET /api/a/people/:id
func (h *PersonController) GetByID(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	person, err := h.find(c, madrasaID, c.Params("id"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(person, true))
}

// MY PROFILE
// GET /api/u/people/me
func (h *PersonController) MyProfile(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "ok", dto.FromModel(&person, true))
}

// UPDATE (staff)
// PATCH /api/a/people/:id
func (h *PersonController) Update(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	person, err := h.find(c, madrasaID, c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if req.FullName != nil {
		person.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.GuardianName != nil {
		person.GuardianName = req.GuardianName
	}
	if req.Gender != nil {
		person.Gender = req.Gender
	}
	if req.BloodGroup != nil {
		person.BloodGroup = req.BloodGroup
	}
	if req.Address != nil {
		person.Address = req.Address
	}
	if req.ClassName != nil {
		person.ClassName = req.ClassName
	}
	if req.Designation != nil {
		person.Designation = req.Designation
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		}
		person.DateOfBirth = &dob
	}
	if req.GuardianPhone != nil {
		normalized, err := helper.NormalizePhone(*req.GuardianPhone)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "guardian_phone is not a valid phone number")
		}
		enc, err := secure.Encrypt(normalized)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to protect guardian phone")
		}
		person.GuardianPhoneEnc = &enc
	}
	if req.NationalID != nil {
		enc, err := secure.Encrypt(strings.TrimSpace(*req.NationalID))
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to protect national id")
		}
		person.NationalIDEnc = &enc
	}

	if err := h.DB.WithContext(c.UserContext()).Save(person).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update person")
	}
	return helper.JsonUpdated(c, "Person updated", dto.FromModel(person, true))
}

// DELETE (soft, staff)
// DELETE /api/a/people/:id
func (h *PersonController) Delete(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.UserContext()).
		Where("person_id = ? AND person_madrasa_id = ?", c.Params("id"), madrasaID).
		Delete(&model.PersonModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Person not found")
	}
	return helper.JsonDeleted(c, "Person deleted", nil)
}

// UPLOAD PHOTO (self)
// POST /api/u/people/me/photo
func (h *PersonController) UploadMyPhoto(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if h.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	var person model.PersonModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&person, "person_user_id = ? AND person_madrasa_id = ?", userID, madrasaID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "No person profile linked to this account")
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo file is required")
	}

	url, err := h.OSS.UploadProfilePhoto(c.UserContext(), fh, "people/"+person.PersonID.String())
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	old := person.PhotoURL
	person.PhotoURL = &url
	if err := h.DB.WithContext(c.UserContext()).Save(&person).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save photo")
	}
	if old != nil {
		_ = h.OSS.DeleteByPublicURL(c.UserContext(), *old)
	}
	return helper.JsonUpdated(c, "Photo updated", dto.FromModel(&person, true))
}

func (h *PersonController) find(c *fiber.Ctx, madrasaID uuid.UUID, id string) (*model.PersonModel, error) {
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
