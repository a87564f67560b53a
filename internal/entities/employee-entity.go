package entities

import "time"

type EmployeeLog struct {
	ID        int64
	Employee  string
	OrderName *string
	Amount    *float64
	CreatedAt time.Time
}
