package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/entities"
	"delivery-system/pkg/constants"
	apperrors "delivery-system/pkg/errors"
)

func newStatsService(orders *fakeOrderRepo) *StatsService {
	s := NewStatsService(orders, testConfig(), zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func statsOrder(driver, status string, cash, fee float64, scanDate time.Time) *entities.Order {
	return &entities.Order{
		Driver:         driver,
		OrderName:      "#" + scanDate.Format("20060102150405"),
		DeliveryStatus: status,
		CashAmount:     cash,
		DriverFee:      fee,
		ScanDate:       scanDate,
		CreatedAt:      scanDate,
	}
}

func TestComputeStats_Buckets(t *testing.T) {
	orders := &fakeOrderRepo{}
	day := testNow.AddDate(0, 0, -1)
	for i, o := range []*entities.Order{
		statsOrder("anouar", constants.StatusDelivered, 100, 20, day),
		statsOrder("anouar", constants.StatusDelivered, 50, 10, day),
		statsOrder("anouar", constants.StatusCancelled, 70, 20, day),
		statsOrder("anouar", constants.StatusReturned, 30, 20, day),
		statsOrder("anouar", constants.StatusInProgress, 40, 20, day),
		statsOrder("anouar", constants.StatusNoAnswer1, 60, 20, day),
	} {
		o.OrderName = o.OrderName + string(rune('a'+i))
		require.NoError(t, orders.Create(context.Background(), o))
	}

	svc := newStatsService(orders)
	res, err := svc.ComputeStats(context.Background(), "anouar", dto.StatsRangeDTO{})
	require.NoError(t, err)

	assert.Equal(t, 6, res.TotalOrders)
	assert.Equal(t, 2, res.Delivered)
	assert.Equal(t, 2, res.Returned)
	assert.Equal(t, 150.0, res.TotalCollect)
	assert.Equal(t, 30.0, res.TotalFees)
	assert.Equal(t, 100.0, res.CanceledAmount)
	assert.InDelta(t, 33.33, res.DeliveryRate, 0.01)
}

func TestComputeStats_Empty(t *testing.T) {
	svc := newStatsService(&fakeOrderRepo{})
	res, err := svc.ComputeStats(context.Background(), "anouar", dto.StatsRangeDTO{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalOrders)
	assert.Equal(t, 0.0, res.DeliveryRate)
}

func TestComputeStats_DaysWindow(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := newStatsService(orders)

	_, err := svc.ComputeStats(context.Background(), "anouar", dto.StatsRangeDTO{Days: 7})
	require.NoError(t, err)

	require.NotNil(t, orders.lastStart)
	// Окно в 7 дней включает сегодня.
	assert.Equal(t, "2025-03-04", orders.lastStart.Format("2006-01-02"))
	assert.Nil(t, orders.lastEnd)
}

func TestComputeStats_ExplicitRange(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := newStatsService(orders)

	_, err := svc.ComputeStats(context.Background(), "anouar", dto.StatsRangeDTO{Start: "2025-02-01", End: "2025-02-28"})
	require.NoError(t, err)

	require.NotNil(t, orders.lastStart)
	require.NotNil(t, orders.lastEnd)
	assert.Equal(t, "2025-02-01", orders.lastStart.Format("2006-01-02"))
	assert.Equal(t, "2025-02-28", orders.lastEnd.Format("2006-01-02"))
}

func TestComputeStats_BadDates(t *testing.T) {
	svc := newStatsService(&fakeOrderRepo{})

	var invalid *apperrors.InvalidInputError
	_, err := svc.ComputeStats(context.Background(), "anouar", dto.StatsRangeDTO{Start: "01.02.2025"})
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.ComputeStats(context.Background(), "anouar", dto.StatsRangeDTO{End: "not-a-date"})
	assert.ErrorAs(t, err, &invalid)
}

func TestAdminStats_PerDriver(t *testing.T) {
	orders := &fakeOrderRepo{}
	day := testNow.AddDate(0, 0, -1)
	require.NoError(t, orders.Create(context.Background(), statsOrder("abderrehman", constants.StatusDelivered, 100, 20, day)))
	require.NoError(t, orders.Create(context.Background(), statsOrder("anouar", constants.StatusReturned, 50, 20, day)))

	svc := newStatsService(orders)
	res, err := svc.AdminStats(context.Background(), dto.StatsRangeDTO{})
	require.NoError(t, err)

	require.Len(t, res, 2)
	assert.Equal(t, 1, res["abderrehman"].Delivered)
	assert.Equal(t, 1, res["anouar"].Returned)
}

func TestTrends_DefaultEndIsToday(t *testing.T) {
	orders := &fakeOrderRepo{
		trendPoints: []entities.TrendPoint{
			{Date: testNow.AddDate(0, 0, -2), Delivered: 3},
			{Date: testNow.AddDate(0, 0, -1), Delivered: 5},
		},
	}
	svc := newStatsService(orders)

	res, err := svc.Trends(context.Background(), dto.StatsRangeDTO{Days: 14})
	require.NoError(t, err)

	require.NotNil(t, orders.lastEnd)
	assert.Equal(t, "2025-03-10", orders.lastEnd.Format("2006-01-02"))

	require.Len(t, res, 2)
	assert.Equal(t, "2025-03-08", res[0].Date)
	assert.Equal(t, 3, res[0].Delivered)
	assert.Equal(t, 5, res[1].Delivered)
}

func TestSearch_Mapping(t *testing.T) {
	orders := &fakeOrderRepo{}
	o := statsOrder("anouar", constants.StatusInProgress, 75, 20, testNow)
	o.OrderName = "#555"
	o.CustomerName = "Client Y"
	o.CustomerPhone = "+212611111111"
	o.Address = "Rabat"
	require.NoError(t, orders.Create(context.Background(), o))

	svc := newStatsService(orders)
	res, err := svc.Search(context.Background(), "555")
	require.NoError(t, err)

	require.Len(t, res, 1)
	assert.Equal(t, "anouar", res[0].Driver)
	assert.Equal(t, "#555", res[0].OrderName)
	assert.Equal(t, "+212611111111", res[0].CustomerPhone)
	assert.Equal(t, 75.0, res[0].CashAmount)
}
