package schemas

type ClientUpdateRequest struct {
	Version string  `json:"version" validate:"required,max=20"`
	Country *string `json:"country" validate:"omitempty,len=2"`
}
