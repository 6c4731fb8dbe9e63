package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	caferepo "github.com/cafeledger/cafeledger/internal/cafeteria/repository"
	"github.com/cafeledger/cafeledger/internal/clock"
	"github.com/cafeledger/cafeledger/internal/config"
	"github.com/cafeledger/cafeledger/internal/events"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	ledgerrepo "github.com/cafeledger/cafeledger/internal/ledger/repository"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	orderrepo "github.com/cafeledger/cafeledger/internal/order/repository"
	"github.com/cafeledger/cafeledger/internal/orderflow/domain"
	secdomain "github.com/cafeledger/cafeledger/internal/securityevent/domain"
	secrepo "github.com/cafeledger/cafeledger/internal/securityevent/repository"
	"github.com/cafeledger/cafeledger/internal/seed"
	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	settingsrepo "github.com/cafeledger/cafeledger/internal/settings/repository"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	staffrepo "github.com/cafeledger/cafeledger/internal/staff/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	seedCafeteriaID   = "100101"
	seedCafeteriaCode = "1001AB"
	seedMarketerID    = "1001"
)

type fixture struct {
	svc      domain.Service
	orders   orderdomain.Repository
	cafes    cafedomain.Repository
	ledger   ledgerdomain.Repository
	settings settingsdomain.Repository
	staff    staffdomain.Repository
	security secdomain.Repository
	clock    *clock.FakeClock
}

func newFixture(t *testing.T, policy config.LedgerPolicy) *fixture {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	log := zaptest.NewLogger(t)

	orders := orderrepo.NewMemory()
	cafes := caferepo.NewMemory()
	ledger := ledgerrepo.NewMemory()
	settings := settingsrepo.NewMemory()
	staff := staffrepo.NewMemory()
	security := secrepo.NewMemory()

	seeder := seed.New(seed.Params{
		Cafeterias: cafes,
		Staff:      staff,
		Clock:      fc,
		Logger:     log,
	})
	require.NoError(t, seeder.Apply(context.Background()))

	svc := New(Params{
		Logger:     log,
		Orders:     orders,
		Cafeterias: cafes,
		Ledger:     ledger,
		Settings:   settings,
		Staff:      staff,
		Security:   security,
		Hub:        events.NewHub(),
		Clock:      fc,
		Policy:     config.NewStaticPolicyHolder(policy),
		Node:       node,
		Seeder:     seeder,
	})

	return &fixture{
		svc:      svc,
		orders:   orders,
		cafes:    cafes,
		ledger:   ledger,
		settings: settings,
		staff:    staff,
		security: security,
		clock:    fc,
	}
}

func seededBinding() domain.TableBinding {
	return domain.TableBinding{
		CafeteriaCode: seedCafeteriaCode,
		TableCode:     "1001ABT01",
		TableDisplay:  "A-01",
	}
}

func (f *fixture) createOrder(t *testing.T, items []orderdomain.OrderItem, binding domain.TableBinding) *orderdomain.Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		SessionID:   "sess-1",
		CafeteriaID: seedCafeteriaID,
		Items:       items,
		Table:       binding,
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	return order
}

func (f *fixture) advanceToServed(t *testing.T, orderID string) {
	t.Helper()
	for _, status := range []orderdomain.Status{
		orderdomain.StatusConfirmed,
		orderdomain.StatusPreparing,
		orderdomain.StatusReady,
		orderdomain.StatusServed,
	} {
		_, err := f.svc.UpdateOrderStatus(context.Background(), domain.UpdateStatusRequest{
			OrderID:   orderID,
			NewStatus: status,
		})
		require.NoError(t, err)
	}
}

func (f *fixture) cafeteriaPoints(t *testing.T, id string) int64 {
	t.Helper()
	cafe, err := f.cafes.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, cafe)
	return cafe.Points
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 2},
		{MenuItemID: "item-001", Name: "Classic Breakfast", Price: 8.99, Quantity: 1},
	}, seededBinding())

	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.InDelta(t, 14.97, order.Total, 1e-9)
	assert.Equal(t, "1001ABT01", order.TableCode)

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.ID, stored.ID)
}

func TestCreateOrderPreconditions(t *testing.T) {
	ctx := context.Background()
	items := []orderdomain.OrderItem{{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 1}}

	t.Run("missing table code", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		binding := seededBinding()
		binding.TableCode = ""
		_, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{SessionID: "s", CafeteriaID: seedCafeteriaID, Items: items, Table: binding})
		assert.ErrorIs(t, err, domain.ErrMissingTableCode)
	})

	t.Run("cafeteria code mismatch leaves no state", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		binding := seededBinding()
		binding.CafeteriaCode = "WRONG1"
		_, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{SessionID: "s", CafeteriaID: seedCafeteriaID, Items: items, Table: binding})
		assert.ErrorIs(t, err, domain.ErrCafeteriaCodeMismatch)

		orders, err := f.orders.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)
		entries, err := f.ledger.Entries(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		binding := seededBinding()
		binding.TableCode = "1001ABT99"
		_, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{SessionID: "s", CafeteriaID: seedCafeteriaID, Items: items, Table: binding})
		assert.ErrorIs(t, err, domain.ErrTableNotFound)
	})

	t.Run("inactive table", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		_, err := f.cafes.UpdateWaiterTableStatus(ctx, "tbl-001", false)
		require.NoError(t, err)
		_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{SessionID: "s", CafeteriaID: seedCafeteriaID, Items: items, Table: seededBinding()})
		assert.ErrorIs(t, err, domain.ErrTableInactive)
	})

	t.Run("trial expired", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		_, err := f.cafes.SetTrialExpired(ctx, seedCafeteriaID, true)
		require.NoError(t, err)
		_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{SessionID: "s", CafeteriaID: seedCafeteriaID, Items: items, Table: seededBinding()})
		assert.ErrorIs(t, err, domain.ErrTrialExpired)
	})

	t.Run("points exhausted", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		_, err := f.cafes.AdjustPoints(ctx, seedCafeteriaID, -100000)
		require.NoError(t, err)
		_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{SessionID: "s", CafeteriaID: seedCafeteriaID, Items: items, Table: seededBinding()})
		assert.ErrorIs(t, err, domain.ErrNoPointsBalance)
	})
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	order, err := f.svc.UpdateOrderStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID:   "missing",
		NewStatus: orderdomain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestUpdateOrderStatusInvalidTransition(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 1},
	}, seededBinding())

	_, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{
		OrderID:   order.ID,
		NewStatus: orderdomain.StatusPaid,
		ActorID:   "staff-001",
		ActorRole: staffdomain.RoleWaiter,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	events, err := f.security.FindByActor(ctx, "staff-001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Blocked)
	assert.Equal(t, "Invalid status transition", events[0].Reason)
	assert.Equal(t, order.ID, events[0].TargetID)
}

func TestPaymentSettlement(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	// Bring the balance down to exactly the cost of a $3.00 order.
	_, err := f.cafes.AdjustPoints(ctx, seedCafeteriaID, -99000)
	require.NoError(t, err)
	require.Equal(t, int64(1000), f.cafeteriaPoints(t, seedCafeteriaID))

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 3.00, Quantity: 1},
	}, seededBinding())
	f.advanceToServed(t, order.ID)

	paid, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{OrderID: order.ID, NewStatus: orderdomain.StatusPaid})
	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.Equal(t, orderdomain.StatusPaid, paid.Status)
	assert.Equal(t, int64(0), f.cafeteriaPoints(t, seedCafeteriaID))

	entries, err := f.ledger.Entries(ctx)
	require.NoError(t, err)

	var payment, direct *ledgerdomain.Entry
	for i := range entries {
		switch entries[i].Type {
		case ledgerdomain.EntryTypeOrderPayment:
			payment = &entries[i]
		case ledgerdomain.EntryTypeCommissionCredit:
			direct = &entries[i]
		}
	}
	require.NotNil(t, payment)
	assert.Equal(t, int64(1000), payment.Amount)
	require.NotNil(t, payment.OrderID)
	assert.Equal(t, order.ID, *payment.OrderID)

	// Default rates: 10% direct commission on 1000 points.
	require.NotNil(t, direct)
	assert.Equal(t, int64(100), direct.Amount)
	require.NotNil(t, direct.MarketerID)
	assert.Equal(t, seedMarketerID, *direct.MarketerID)

	// With the balance at zero, new orders are refused at creation.
	_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{
		SessionID:   "sess-2",
		CafeteriaID: seedCafeteriaID,
		Items:       []orderdomain.OrderItem{{MenuItemID: "item-005", Name: "Coffee", Price: 0.01, Quantity: 1}},
		Table:       seededBinding(),
	})
	assert.ErrorIs(t, err, domain.ErrNoPointsBalance)
}

func TestPaymentSettlementGrandparentCommission(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	marketer := seedMarketerID
	grandparent := "2002"
	cafe := &cafedomain.Cafeteria{
		ID:                    "200201",
		Name:                  "Grandparent Test Cafe",
		IsOpen:                true,
		Points:                10000,
		Code:                  "2002AB",
		MarketerID:            &marketer,
		GrandparentMarketerID: &grandparent,
		CreatedAt:             f.clock.Now(),
		UpdatedAt:             f.clock.Now(),
	}
	require.NoError(t, f.cafes.Create(ctx, cafe))
	require.NoError(t, f.cafes.AddWaiterSection(ctx, &cafedomain.WaiterSection{ID: "sec-2002", CafeteriaID: cafe.ID, Name: "A"}))
	require.NoError(t, f.cafes.AddWaiterTable(ctx, &cafedomain.WaiterTable{
		ID: "tbl-2002", CafeteriaID: cafe.ID, SectionID: "sec-2002",
		TableNumber: "A-01", Capacity: 2, ReferenceCode: "2002ABT01", IsActive: true,
	}))

	order, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{
		SessionID:   "sess-g",
		CafeteriaID: cafe.ID,
		Items:       []orderdomain.OrderItem{{MenuItemID: "item-005", Name: "Coffee", Price: 3.00, Quantity: 1}},
		Table:       domain.TableBinding{CafeteriaCode: "2002AB", TableCode: "2002ABT01", TableDisplay: "A-01"},
	})
	require.NoError(t, err)
	f.advanceToServed(t, order.ID)

	_, err = f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{OrderID: order.ID, NewStatus: orderdomain.StatusPaid})
	require.NoError(t, err)

	// 5% of 1000 points for the grandparent marketer.
	grandparentCommissions, err := f.ledger.CommissionsByMarketer(ctx, grandparent)
	require.NoError(t, err)
	require.Len(t, grandparentCommissions, 1)
	assert.Equal(t, int64(50), grandparentCommissions[0].Amount)
}

func TestPaymentSettlementIdempotenceOfFailure(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 3.00, Quantity: 1},
	}, seededBinding())
	f.advanceToServed(t, order.ID)

	_, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{OrderID: order.ID, NewStatus: orderdomain.StatusPaid})
	require.NoError(t, err)
	pointsAfterFirst := f.cafeteriaPoints(t, seedCafeteriaID)

	_, err = f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{OrderID: order.ID, NewStatus: orderdomain.StatusPaid})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, pointsAfterFirst, f.cafeteriaPoints(t, seedCafeteriaID))
}

func TestPaymentSettlementInsufficientPoints(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-003", Name: "Cheeseburger", Price: 11.99, Quantity: 100},
	}, seededBinding())
	f.advanceToServed(t, order.ID)

	// 1199 / 0.003 points owed, far above the remaining balance.
	_, err := f.cafes.AdjustPoints(ctx, seedCafeteriaID, -99990)
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{OrderID: order.ID, NewStatus: orderdomain.StatusPaid})
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	// The order must not have transitioned and the balance must be intact.
	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusServed, stored.Status)
	assert.Equal(t, int64(10), f.cafeteriaPoints(t, seedCafeteriaID))
}

func TestConcurrentSettlementNeverOverdraws(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	// Balance covers exactly three $3.00 orders.
	_, err := f.cafes.AdjustPoints(ctx, seedCafeteriaID, -97000)
	require.NoError(t, err)

	var orderIDs []string
	for i := 0; i < 5; i++ {
		order := f.createOrder(t, []orderdomain.OrderItem{
			{MenuItemID: "item-005", Name: "Coffee", Price: 3.00, Quantity: 1},
		}, seededBinding())
		f.advanceToServed(t, order.ID)
		orderIDs = append(orderIDs, order.ID)
	}

	var wg sync.WaitGroup
	results := make([]error, len(orderIDs))
	for i, id := range orderIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{OrderID: id, NewStatus: orderdomain.StatusPaid})
			results[i] = err
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, int64(0), f.cafeteriaPoints(t, seedCafeteriaID))
}

func TestWaiterSectionGuard(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	// John works section A; the order's table sits in section B.
	require.NoError(t, f.staff.SetWaiterSession(ctx, staffdomain.WaiterSession{
		WaiterID: "staff-001", SectionID: "sec-001", CafeteriaID: seedCafeteriaID,
	}))

	binding := seededBinding()
	binding.TableCode = "1001ABT03"
	binding.TableDisplay = "B-01"
	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 1},
	}, binding)

	_, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{
		OrderID:   order.ID,
		NewStatus: orderdomain.StatusConfirmed,
		ActorID:   "staff-001",
		ActorRole: staffdomain.RoleWaiter,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "sec-001")

	events, err := f.security.FindByActor(ctx, "staff-001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Blocked)

	// A waiter in the right section proceeds.
	require.NoError(t, f.staff.SetWaiterSession(ctx, staffdomain.WaiterSession{
		WaiterID: "staff-002", SectionID: "sec-002", CafeteriaID: seedCafeteriaID,
	}))
	updated, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{
		OrderID:   order.ID,
		NewStatus: orderdomain.StatusConfirmed,
		ActorID:   "staff-002",
		ActorRole: staffdomain.RoleWaiter,
	})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusConfirmed, updated.Status)
}

func TestKitchenCategoryGuard(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	// Caesar Salad is a Cold item; Chef Mike only handles Hot.
	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-004", Name: "Caesar Salad", Price: 8.99, Quantity: 1},
	}, seededBinding())

	_, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{
		OrderID:   order.ID,
		NewStatus: orderdomain.StatusConfirmed,
		ActorID:   "staff-003",
		ActorRole: staffdomain.RoleKitchen,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "kcat-001")

	// Chef Sarah handles Cold and may proceed.
	updated, err := f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{
		OrderID:   order.ID,
		NewStatus: orderdomain.StatusConfirmed,
		ActorID:   "staff-004",
		ActorRole: staffdomain.RoleKitchen,
	})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusConfirmed, updated.Status)
}

func TestInactiveStaffBlocked(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 1},
	}, seededBinding())

	_, err := f.staff.UpdateStatus(ctx, "staff-001", false)
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(ctx, domain.UpdateStatusRequest{
		OrderID:   order.ID,
		NewStatus: orderdomain.StatusConfirmed,
		ActorID:   "staff-001",
		ActorRole: staffdomain.RoleWaiter,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "disabled")
}

func TestRechargeLifecycle(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	request, err := f.svc.CreateRechargeRequest(ctx, domain.CreateRechargeInput{
		CafeteriaID:   seedCafeteriaID,
		Amount:        5000,
		ProofImageURL: "https://proof.example/receipt.png",
	})
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.RechargeStatusPending, request.Status)

	before := f.cafeteriaPoints(t, seedCafeteriaID)
	processed, err := f.svc.ProcessRechargeRequest(ctx, domain.ProcessRechargeInput{
		RequestID: request.ID,
		Status:    ledgerdomain.RechargeStatusApproved,
		Notes:     "verified",
	})
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.RechargeStatusApproved, processed.Status)
	require.NotNil(t, processed.ProcessedAt)
	assert.Equal(t, before+5000, f.cafeteriaPoints(t, seedCafeteriaID))

	entries, err := f.ledger.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ledgerdomain.EntryTypeRechargeCredit, entries[0].Type)
	assert.Equal(t, int64(5000), entries[0].Amount)

	// A processed request must not be reprocessable.
	_, err = f.svc.ProcessRechargeRequest(ctx, domain.ProcessRechargeInput{
		RequestID: request.ID,
		Status:    ledgerdomain.RechargeStatusApproved,
	})
	assert.ErrorIs(t, err, domain.ErrRechargeAlreadyProcessed)
	assert.Equal(t, before+5000, f.cafeteriaPoints(t, seedCafeteriaID))
}

func TestRechargeRejectionHasNoBalanceEffect(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	request, err := f.svc.CreateRechargeRequest(ctx, domain.CreateRechargeInput{
		CafeteriaID: seedCafeteriaID,
		Amount:      5000,
	})
	require.NoError(t, err)

	before := f.cafeteriaPoints(t, seedCafeteriaID)
	processed, err := f.svc.ProcessRechargeRequest(ctx, domain.ProcessRechargeInput{
		RequestID: request.ID,
		Status:    ledgerdomain.RechargeStatusRejected,
		Notes:     "unreadable proof",
	})
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.RechargeStatusRejected, processed.Status)
	assert.Equal(t, before, f.cafeteriaPoints(t, seedCafeteriaID))

	entries, err := f.ledger.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRechargeDoubleProcessingAllowedWhenPolicyOff(t *testing.T) {
	policy := config.DefaultLedgerPolicy()
	policy.SingleRechargeProcessing = false
	f := newFixture(t, policy)
	ctx := context.Background()

	request, err := f.svc.CreateRechargeRequest(ctx, domain.CreateRechargeInput{CafeteriaID: seedCafeteriaID, Amount: 100})
	require.NoError(t, err)

	_, err = f.svc.ProcessRechargeRequest(ctx, domain.ProcessRechargeInput{RequestID: request.ID, Status: ledgerdomain.RechargeStatusApproved})
	require.NoError(t, err)
	_, err = f.svc.ProcessRechargeRequest(ctx, domain.ProcessRechargeInput{RequestID: request.ID, Status: ledgerdomain.RechargeStatusApproved})
	require.NoError(t, err)
}

func (f *fixture) creditCommission(t *testing.T, marketerID string, amount int64) {
	t.Helper()
	entry := &ledgerdomain.Entry{
		ID:         fmt.Sprintf("test-%s-%d", marketerID, amount),
		Type:       ledgerdomain.EntryTypeCommissionCredit,
		Amount:     amount,
		MarketerID: &marketerID,
		Timestamp:  f.clock.Now(),
	}
	require.NoError(t, f.ledger.AppendEntry(context.Background(), entry))
}

func TestMarketerBalanceRoundTrip(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	f.creditCommission(t, seedMarketerID, 300)
	f.creditCommission(t, seedMarketerID, 200)
	f.creditCommission(t, "other", 999)

	balance, err := f.svc.MarketerBalance(ctx, seedMarketerID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	record, err := f.svc.CreatePayout(ctx, domain.CreatePayoutInput{
		MarketerID: seedMarketerID,
		Amount:     150,
		Note:       "monthly payout",
		CreatedBy:  "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), record.Amount)

	balance, err = f.svc.MarketerBalance(ctx, seedMarketerID)
	require.NoError(t, err)
	assert.Equal(t, int64(350), balance)
}

func TestCreatePayoutRejectsOverdraw(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	f.creditCommission(t, seedMarketerID, 100)

	_, err := f.svc.CreatePayout(ctx, domain.CreatePayoutInput{MarketerID: seedMarketerID, Amount: 101})
	assert.ErrorIs(t, err, domain.ErrInsufficientMarketerBalance)

	payouts, err := f.svc.MarketerPayouts(ctx, seedMarketerID)
	require.NoError(t, err)
	assert.Empty(t, payouts)
}

func TestCreatePayoutUncheckedWhenPolicyOff(t *testing.T) {
	policy := config.DefaultLedgerPolicy()
	policy.EnforcePayoutBalance = false
	f := newFixture(t, policy)

	record, err := f.svc.CreatePayout(context.Background(), domain.CreatePayoutInput{MarketerID: seedMarketerID, Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(500), record.Amount)
}

func TestUpdateCommissionConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("sum enforced by default", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		err := f.svc.UpdateCommissionConfig(ctx, settingsdomain.CommissionConfig{
			RateDirectParentPercent: 20, RateGrandparentPercent: 10, RateOwnerPercent: 60,
		})
		assert.ErrorIs(t, err, settingsdomain.ErrCommissionSumInvalid)
	})

	t.Run("valid update applies", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		err := f.svc.UpdateCommissionConfig(ctx, settingsdomain.CommissionConfig{
			RateDirectParentPercent: 20, RateGrandparentPercent: 10, RateOwnerPercent: 70,
		})
		require.NoError(t, err)

		cfg, err := f.svc.CommissionConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.RateDirectParentPercent)
	})

	t.Run("sum unchecked when policy off", func(t *testing.T) {
		policy := config.DefaultLedgerPolicy()
		policy.EnforceCommissionSum = false
		f := newFixture(t, policy)
		err := f.svc.UpdateCommissionConfig(ctx, settingsdomain.CommissionConfig{
			RateDirectParentPercent: 20, RateGrandparentPercent: 10, RateOwnerPercent: 60,
		})
		require.NoError(t, err)
	})

	t.Run("negative rate always rejected", func(t *testing.T) {
		f := newFixture(t, config.DefaultLedgerPolicy())
		err := f.svc.UpdateCommissionConfig(ctx, settingsdomain.CommissionConfig{
			RateDirectParentPercent: -1, RateGrandparentPercent: 16, RateOwnerPercent: 85,
		})
		assert.ErrorIs(t, err, settingsdomain.ErrNegativeRate)
	})
}

func TestTrialConfig(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	cfg, err := f.svc.TrialConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.GlobalTrialDays)

	err = f.svc.UpdateTrialConfig(ctx, settingsdomain.TrialConfig{GlobalTrialDays: -1})
	assert.ErrorIs(t, err, settingsdomain.ErrInvalidTrialDays)

	require.NoError(t, f.svc.UpdateTrialConfig(ctx, settingsdomain.TrialConfig{GlobalTrialDays: 30}))

	days := 7
	cafe, err := f.svc.SetTrialOverride(ctx, seedCafeteriaID, &days)
	require.NoError(t, err)
	require.NotNil(t, cafe.TrialDaysOverride)
	assert.Equal(t, 7, *cafe.TrialDaysOverride)

	_, err = f.svc.SetTrialOverride(ctx, "missing", &days)
	assert.ErrorIs(t, err, domain.ErrCafeteriaNotFound)
}

func TestReset(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())
	ctx := context.Background()

	order := f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 1},
	}, seededBinding())
	_ = order

	require.NoError(t, f.svc.Reset(ctx))

	orders, err := f.orders.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, int64(100000), f.cafeteriaPoints(t, seedCafeteriaID))
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	f := newFixture(t, config.DefaultLedgerPolicy())

	notified := 0
	unsubscribe := f.svc.Subscribe(func() { notified++ })
	defer unsubscribe()

	f.createOrder(t, []orderdomain.OrderItem{
		{MenuItemID: "item-005", Name: "Coffee", Price: 2.99, Quantity: 1},
	}, seededBinding())
	assert.Equal(t, 1, notified)
}
