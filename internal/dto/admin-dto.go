package dto

type AdminLoginDTO struct {
	Password string `json:"password" validate:"required"`
}

type ArchiveResultDTO struct {
	Archived int `json:"archived"`
}
