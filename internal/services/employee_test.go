package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delivery-system/internal/dto"
)

func TestEmployeeService_CreateAndList(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, zap.NewNop())
	svc.now = func() time.Time { return testNow }

	require.NoError(t, svc.CreateLog(context.Background(), dto.CreateEmployeeLogDTO{
		Employee: "samir",
		Order:    null.StringFrom("#123"),
		Amount:   null.Float64From(45.5),
	}))
	require.NoError(t, svc.CreateLog(context.Background(), dto.CreateEmployeeLogDTO{
		Employee: "samir",
	}))

	logs, err := svc.GetLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "2025-03-10 12:00:00", logs[0].Timestamp)
	assert.Equal(t, "#123", logs[0].Order)
	require.NotNil(t, logs[0].Amount)
	assert.Equal(t, 45.5, *logs[0].Amount)

	// Необязательные поля не заполнялись.
	assert.Equal(t, "", logs[1].Order)
	assert.Nil(t, logs[1].Amount)
}
