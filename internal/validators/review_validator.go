package validators

type ReviewCreateRequest struct {
	BookingID uint64  `json:"booking_id" validate:"required"`
	Rating    *int    `json:"rating" validate:"required"`
	Comment   *string `json:"comment" validate:"omitempty,max=1000"`
}

func ValidateReviewCreate(req *ReviewCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
