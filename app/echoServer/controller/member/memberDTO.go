package member

type CreateMemberReq struct {
	Name string `json:"name"`
}

type UpdateMemberReq struct {
	Name string `json:"name" validate:"required"`
}
