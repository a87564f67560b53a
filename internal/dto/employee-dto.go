package dto

import "github.com/aarondl/null/v8"

type CreateEmployeeLogDTO struct {
	Employee string       `json:"employee" validate:"required"`
	Order    null.String  `json:"order"`
	Amount   null.Float64 `json:"amount"`
}

type EmployeeLogDTO struct {
	Timestamp string   `json:"timestamp"`
	Employee  string   `json:"employee"`
	Order     string   `json:"order"`
	Amount    *float64 `json:"amount"`
}
