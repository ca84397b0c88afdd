package dto

type CreateFeeRuleRequest struct {
	ClassName       string `json:"class_name" validate:"required,min=1,max=50"`
	AccType         string `json:"acc_type"`
	AdmissionAmount int64  `json:"admission_amount" validate:"gte=0"`
	MonthlyAmount   int64  `json:"monthly_amount" validate:"gte=0"`
	ExamAmount      int64  `json:"exam_amount" validate:"gte=0"`
	TransportAmount int64  `json:"transport_amount" validate:"gte=0"`
	DiscountPercent int    `json:"discount_percent" validate:"gte=0,lte=100"`
	EffectiveMonth  string `json:"effective_month" validate:"required"`
}

type UpdateFeeRuleRequest struct {
	AdmissionAmount *int64 `json:"admission_amount" validate:"omitempty,gte=0"`
	MonthlyAmount   *int64 `json:"monthly_amount" validate:"omitempty,gte=0"`
	ExamAmount      *int64 `json:"exam_amount" validate:"omitempty,gte=0"`
	TransportAmount *int64 `json:"transport_amount" validate:"omitempty,gte=0"`
	DiscountPercent *int   `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	IsActive        *bool  `json:"is_active"`
}

type CalculateFeeRequest struct {
	ClassName string `json:"class_name" validate:"required"`
	AccType   string `json:"acc_type"`
	Month     string `json:"month" validate:"required"`
	Admission bool   `json:"admission"`
	Exam      bool   `json:"exam"`
	Transport bool   `json:"transport"`
}
