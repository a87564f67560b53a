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
	"delivery-system/internal/entities"
	"delivery-system/internal/repositories"
	"delivery-system/pkg/constants"
	apperrors "delivery-system/pkg/errors"
)

func newPayoutService(payouts *fakePayoutRepo, orders *fakeOrderRepo) *PayoutService {
	s := NewPayoutService(payouts, orders, repositories.NewMemoryCacheRepository(func() time.Time { return testNow }), testConfig(), zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func TestListPayouts_DetailsAndOrdering(t *testing.T) {
	orders := &fakeOrderRepo{}
	seedOrder(orders, "#1", constants.StatusDelivered, "", testNow.Add(-48*time.Hour))
	seedOrder(orders, "#2", constants.StatusDelivered, "", testNow.Add(-24*time.Hour))

	payouts := newFakePayoutRepo(orders)
	payouts.payouts = append(payouts.payouts,
		&entities.Payout{
			Driver: "anouar", PayoutID: "PO-20250301-1000", DateCreated: testNow.Add(-48 * time.Hour),
			Orders: "#1", TotalCash: 100, TotalFees: 20, TotalPayout: 80, Status: constants.PayoutStatusPaid,
		},
		&entities.Payout{
			Driver: "anouar", PayoutID: "PO-20250302-1000", DateCreated: testNow.Add(-24 * time.Hour),
			Orders: "#2, #missing", TotalCash: 100, TotalFees: 20, TotalPayout: 80, Status: constants.PayoutStatusPending,
		},
	)

	svc := newPayoutService(payouts, orders)
	res, err := svc.ListPayouts(context.Background(), "anouar")
	require.NoError(t, err)

	require.Len(t, res, 2)
	// Новые выплаты первыми.
	assert.Equal(t, "PO-20250302-1000", res[0].PayoutID)
	assert.Equal(t, "PO-20250301-1000", res[1].PayoutID)

	require.Len(t, res[0].OrderDetails, 2)
	assert.Equal(t, "#2", res[0].OrderDetails[0].Name)
	assert.Equal(t, 100.0, res[0].OrderDetails[0].CashAmount)
	assert.Equal(t, 20.0, res[0].OrderDetails[0].DriverFee)
	// Неизвестный заказ показывается с нулями.
	assert.Equal(t, "#missing", res[0].OrderDetails[1].Name)
	assert.Equal(t, 0.0, res[0].OrderDetails[1].CashAmount)
}

func TestMarkPaid(t *testing.T) {
	orders := &fakeOrderRepo{}
	payouts := newFakePayoutRepo(orders)
	payouts.payouts = append(payouts.payouts, &entities.Payout{
		Driver: "anouar", PayoutID: "PO-20250301-1000", Status: constants.PayoutStatusPending,
	})

	svc := newPayoutService(payouts, orders)

	// Прогреваем кеш, потом закрываем выплату.
	_, err := svc.ListPayouts(context.Background(), "anouar")
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(context.Background(), "anouar", "PO-20250301-1000"))

	res, err := svc.ListPayouts(context.Background(), "anouar")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, constants.PayoutStatusPaid, res[0].Status)
	assert.NotEmpty(t, res[0].DatePaid)
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	orders := &fakeOrderRepo{}
	payouts := newFakePayoutRepo(orders)
	paidAt := testNow.Add(-time.Hour)
	payouts.payouts = append(payouts.payouts, &entities.Payout{
		Driver: "anouar", PayoutID: "PO-20250301-1000",
		Status: constants.PayoutStatusPaid, DatePaid: &paidAt,
	})

	svc := newPayoutService(payouts, orders)
	err := svc.MarkPaid(context.Background(), "anouar", "PO-20250301-1000")
	assert.ErrorIs(t, err, apperrors.ErrPayoutPaid)
}

func TestMarkPaidThenDeliverSameMinute(t *testing.T) {
	orders := &fakeOrderRepo{}
	payouts := newFakePayoutRepo(orders)
	seedOrder(orders, "#1", constants.StatusDispatched, "", testNow.Add(-time.Hour))
	seedOrder(orders, "#2", constants.StatusDispatched, "", testNow.Add(-time.Hour))

	orderSvc := newOrderService(orders, payouts)
	payoutSvc := newPayoutService(payouts, orders)

	require.NoError(t, orderSvc.UpdateStatus(context.Background(), "anouar", dto.StatusUpdateDTO{
		OrderName: "#1", NewStatus: null.StringFrom(constants.StatusDelivered),
	}))
	require.Len(t, payouts.payouts, 1)
	first := payouts.payouts[0].PayoutID

	require.NoError(t, payoutSvc.MarkPaid(context.Background(), "anouar", first))

	// Следующая доставка в ту же минуту: новая выплата получает свой
	// токен, а не падает на занятом.
	require.NoError(t, orderSvc.UpdateStatus(context.Background(), "anouar", dto.StatusUpdateDTO{
		OrderName: "#2", NewStatus: null.StringFrom(constants.StatusDelivered),
	}))
	require.Len(t, payouts.payouts, 2)

	second := payouts.payouts[1]
	assert.Equal(t, first+"-2", second.PayoutID)
	assert.Equal(t, constants.PayoutStatusPending, second.Status)
	assert.Equal(t, "#2", second.Orders)
	assert.Equal(t, 100.0, second.TotalCash)

	// Закрытая выплата осталась как была.
	assert.Equal(t, constants.PayoutStatusPaid, payouts.payouts[0].Status)
	assert.Equal(t, "#1", payouts.payouts[0].Orders)
	assert.Equal(t, 100.0, payouts.payouts[0].TotalCash)
}

func TestMarkPaid_UnknownPayout(t *testing.T) {
	svc := newPayoutService(newFakePayoutRepo(&fakeOrderRepo{}), &fakeOrderRepo{})
	err := svc.MarkPaid(context.Background(), "anouar", "PO-00000000-0000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
