// Package service implements the order/ledger orchestrator: order creation
// preconditions, status transitions with guard enforcement, atomic payment
// settlement with commission fan-out, recharge processing, and payouts.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	"github.com/cafeledger/cafeledger/internal/clock"
	"github.com/cafeledger/cafeledger/internal/config"
	"github.com/cafeledger/cafeledger/internal/events"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	"github.com/cafeledger/cafeledger/internal/metrics"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	"github.com/cafeledger/cafeledger/internal/orderflow/domain"
	"github.com/cafeledger/cafeledger/internal/orderflow/finance"
	"github.com/cafeledger/cafeledger/internal/orderflow/guard"
	secdomain "github.com/cafeledger/cafeledger/internal/securityevent/domain"
	"github.com/cafeledger/cafeledger/internal/seed"
	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const settlementLockTTL = 10 * time.Second

type service struct {
	log      *zap.Logger
	orders   orderdomain.Repository
	cafes    cafedomain.Repository
	ledger   ledgerdomain.Repository
	settings settingsdomain.Repository
	staff    staffdomain.Repository
	security secdomain.Repository
	hub      *events.Hub
	clock    clock.Clock
	policy   *config.PolicyHolder
	node     *snowflake.Node
	locker   *Locker
	seeder   *seed.Seeder
	metrics  *metrics.Metrics
	locks    *keyedMutex
}

type Params struct {
	fx.In

	Logger     *zap.Logger
	Orders     orderdomain.Repository
	Cafeterias cafedomain.Repository
	Ledger     ledgerdomain.Repository
	Settings   settingsdomain.Repository
	Staff      staffdomain.Repository
	Security   secdomain.Repository
	Hub        *events.Hub
	Clock      clock.Clock
	Policy     *config.PolicyHolder
	Node       *snowflake.Node
	Locker     *Locker          `optional:"true"`
	Seeder     *seed.Seeder     `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`
}

func New(p Params) domain.Service {
	return &service{
		log:      p.Logger.Named("orderflow"),
		orders:   p.Orders,
		cafes:    p.Cafeterias,
		ledger:   p.Ledger,
		settings: p.Settings,
		staff:    p.Staff,
		security: p.Security,
		hub:      p.Hub,
		clock:    p.Clock,
		policy:   p.Policy,
		node:     p.Node,
		locker:   p.Locker,
		seeder:   p.Seeder,
		metrics:  p.Metrics,
		locks:    newKeyedMutex(),
	}
}

func (s *service) Orders(ctx context.Context) ([]orderdomain.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *service) Order(ctx context.Context, id string) (*orderdomain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *service) OrdersByCafeteria(ctx context.Context, cafeteriaID string) ([]orderdomain.Order, error) {
	return s.orders.FindByCafeteria(ctx, cafeteriaID)
}

func (s *service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*orderdomain.Order, error) {
	cafe, err := s.cafes.FindByID(ctx, req.CafeteriaID)
	if err != nil {
		return nil, err
	}
	if cafe != nil {
		if cafe.Points <= 0 {
			return nil, domain.ErrNoPointsBalance
		}
		if cafe.IsTrialExpired {
			return nil, domain.ErrTrialExpired
		}
	}

	if req.Table.TableCode == "" {
		return nil, domain.ErrMissingTableCode
	}
	if cafe == nil || cafe.Code != req.Table.CafeteriaCode {
		return nil, domain.ErrCafeteriaCodeMismatch
	}

	tables, err := s.cafes.WaiterTables(ctx, req.CafeteriaID)
	if err != nil {
		return nil, err
	}
	var table *cafedomain.WaiterTable
	for i := range tables {
		if tables[i].ReferenceCode == req.Table.TableCode {
			table = &tables[i]
			break
		}
	}
	if table == nil {
		return nil, domain.ErrTableNotFound
	}
	if !table.IsActive {
		return nil, domain.ErrTableInactive
	}

	var total float64
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}

	now := s.clock.Now()
	order := &orderdomain.Order{
		ID:            s.node.Generate().String(),
		SessionID:     req.SessionID,
		CafeteriaID:   req.CafeteriaID,
		Items:         req.Items,
		Status:        orderdomain.StatusPending,
		Total:         total,
		CafeteriaCode: req.Table.CafeteriaCode,
		TableCode:     req.Table.TableCode,
		TableDisplay:  req.Table.TableDisplay,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("cafeteria_id", order.CafeteriaID),
		zap.Float64("total", order.Total),
	)
	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	s.hub.Notify()
	return order, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, req domain.UpdateStatusRequest) (*orderdomain.Order, error) {
	order, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if req.ActorID != "" {
		if err := s.checkGuards(ctx, order, req); err != nil {
			return nil, err
		}
	}

	if !orderdomain.IsValidStatusTransition(order.Status, req.NewStatus) {
		if req.ActorID != "" {
			s.logSecurityEvent(ctx, req, "Invalid status transition")
		}
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, req.NewStatus)
	}

	if orderdomain.Normalize(req.NewStatus) == orderdomain.StatusPaid {
		if err := s.settle(ctx, order); err != nil {
			if s.metrics != nil {
				s.metrics.SettlementFailures.WithLabelValues(err.Error()).Inc()
			}
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.OrdersSettled.Inc()
		}
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, req.NewStatus)
	if err != nil {
		return nil, err
	}

	s.log.Info("order status updated",
		zap.String("order_id", order.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(req.NewStatus)),
	)
	s.hub.Notify()
	return updated, nil
}

// checkGuards runs the staff-active, waiter-section and kitchen-category
// predicates for the acting staff member. A denial is recorded as a blocked
// security event before the error is returned.
func (s *service) checkGuards(ctx context.Context, order *orderdomain.Order, req domain.UpdateStatusRequest) error {
	actor, err := s.staff.FindByID(ctx, req.ActorID)
	if err != nil {
		return err
	}

	if res := guard.CheckStaffActive(actor); !res.Allowed {
		s.denyGuard(ctx, req, "staff_active", res.Reason)
		return fmt.Errorf("%w: %s", domain.ErrForbidden, res.Reason)
	}

	if req.ActorRole == staffdomain.RoleWaiter {
		session, err := s.staff.WaiterSession(ctx, req.ActorID)
		if err != nil {
			return err
		}
		sectionID, err := s.tableSectionID(ctx, order)
		if err != nil {
			return err
		}
		if res := guard.CheckWaiterSection(session, sectionID); !res.Allowed {
			s.denyGuard(ctx, req, "waiter_section", res.Reason)
			return fmt.Errorf("%w: %s", domain.ErrForbidden, res.Reason)
		}
	}

	if req.ActorRole == staffdomain.RoleKitchen {
		menuItems, err := s.orderMenuItems(ctx, order)
		if err != nil {
			return err
		}
		if res := guard.CheckKitchenCategory(order, actor, menuItems); !res.Allowed {
			s.denyGuard(ctx, req, "kitchen_category", res.Reason)
			return fmt.Errorf("%w: %s", domain.ErrForbidden, res.Reason)
		}
	}

	return nil
}

func (s *service) denyGuard(ctx context.Context, req domain.UpdateStatusRequest, guardName, reason string) {
	if s.metrics != nil {
		s.metrics.GuardDenials.WithLabelValues(guardName).Inc()
	}
	s.logSecurityEvent(ctx, req, reason)
}

func (s *service) tableSectionID(ctx context.Context, order *orderdomain.Order) (string, error) {
	if order.TableCode == "" {
		return "", nil
	}
	tables, err := s.cafes.WaiterTables(ctx, order.CafeteriaID)
	if err != nil {
		return "", err
	}
	for i := range tables {
		if tables[i].ReferenceCode == order.TableCode {
			return tables[i].SectionID, nil
		}
	}
	return "", nil
}

func (s *service) orderMenuItems(ctx context.Context, order *orderdomain.Order) ([]cafedomain.MenuItem, error) {
	items := make([]cafedomain.MenuItem, 0, len(order.Items))
	for _, line := range order.Items {
		mi, err := s.cafes.MenuItemByID(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if mi != nil {
			items = append(items, *mi)
		}
	}
	return items, nil
}

// settle deducts the order's point cost from the cafeteria balance,
// records the payment on the ledger and fans out commission credits. The
// balance check and deduction are serialized per cafeteria.
func (s *service) settle(ctx context.Context, order *orderdomain.Order) error {
	unlock := s.locks.Lock("cafeteria:" + order.CafeteriaID)
	defer unlock()

	if s.locker != nil {
		key := "cafeledger:settlement:" + order.CafeteriaID
		token, ok, err := s.locker.TryLock(ctx, key, settlementLockTTL)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrSettlementBusy
		}
		defer func() {
			if err := s.locker.Release(ctx, key, token); err != nil {
				s.log.Warn("settlement lock release failed", zap.String("key", key), zap.Error(err))
			}
		}()
	}

	points := finance.PointsToDeduct(order.Total)
	cafe, err := s.cafes.FindByID(ctx, order.CafeteriaID)
	if err != nil {
		return err
	}
	if cafe == nil {
		return domain.ErrCafeteriaNotFound
	}
	if cafe.Points < points {
		return domain.ErrInsufficientPoints
	}

	if _, err := s.cafes.AdjustPoints(ctx, order.CafeteriaID, -points); err != nil {
		if errors.Is(err, cafedomain.ErrInsufficientPoints) {
			return domain.ErrInsufficientPoints
		}
		return err
	}

	now := s.clock.Now()
	payment := &ledgerdomain.Entry{
		ID:          s.node.Generate().String(),
		Type:        ledgerdomain.EntryTypeOrderPayment,
		Amount:      points,
		OrderID:     &order.ID,
		CafeteriaID: &order.CafeteriaID,
		Timestamp:   now,
		Description: fmt.Sprintf("Payment for order %s", order.ID),
	}
	if err := s.ledger.AppendEntry(ctx, payment); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.PointsDeducted.Add(float64(points))
	}

	return s.fanOutCommissions(ctx, order, cafe, points, now)
}

// fanOutCommissions posts commission credits for the cafeteria's direct
// and grandparent marketers. Each share is floored independently; whatever
// the shares do not cover stays with the platform.
func (s *service) fanOutCommissions(ctx context.Context, order *orderdomain.Order, cafe *cafedomain.Cafeteria, points int64, now time.Time) error {
	cfg, err := s.settings.CommissionConfig(ctx)
	if err != nil {
		return err
	}

	hasMarketer := cafe.MarketerID != nil && *cafe.MarketerID != ""
	breakdown := finance.CalculateCommissions(points, cfg, hasMarketer)

	if hasMarketer && breakdown.DirectMarketerPoints > 0 {
		entry := &ledgerdomain.Entry{
			ID:          s.node.Generate().String(),
			Type:        ledgerdomain.EntryTypeCommissionCredit,
			Amount:      breakdown.DirectMarketerPoints,
			OrderID:     &order.ID,
			CafeteriaID: &order.CafeteriaID,
			MarketerID:  cafe.MarketerID,
			Timestamp:   now,
			Description: fmt.Sprintf("Commission for order %s", order.ID),
		}
		if err := s.ledger.AppendEntry(ctx, entry); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.CommissionPoints.WithLabelValues("direct").Add(float64(breakdown.DirectMarketerPoints))
		}
	}

	if hasMarketer && cafe.GrandparentMarketerID != nil && *cafe.GrandparentMarketerID != "" && breakdown.GrandparentMarketerPoints > 0 {
		entry := &ledgerdomain.Entry{
			ID:          s.node.Generate().String(),
			Type:        ledgerdomain.EntryTypeCommissionCredit,
			Amount:      breakdown.GrandparentMarketerPoints,
			OrderID:     &order.ID,
			CafeteriaID: &order.CafeteriaID,
			MarketerID:  cafe.GrandparentMarketerID,
			Timestamp:   now,
			Description: fmt.Sprintf("Grandparent commission for order %s", order.ID),
		}
		if err := s.ledger.AppendEntry(ctx, entry); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.CommissionPoints.WithLabelValues("grandparent").Add(float64(breakdown.GrandparentMarketerPoints))
		}
	}

	return nil
}

func (s *service) CreateRechargeRequest(ctx context.Context, in domain.CreateRechargeInput) (*ledgerdomain.RechargeRequest, error) {
	cafe, err := s.cafes.FindByID(ctx, in.CafeteriaID)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, domain.ErrCafeteriaNotFound
	}

	request := &ledgerdomain.RechargeRequest{
		ID:            s.node.Generate().String(),
		CafeteriaID:   in.CafeteriaID,
		Amount:        in.Amount,
		ProofImageURL: in.ProofImageURL,
		Status:        ledgerdomain.RechargeStatusPending,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.ledger.CreateRechargeRequest(ctx, request); err != nil {
		return nil, err
	}

	s.hub.Notify()
	return request, nil
}

func (s *service) ProcessRechargeRequest(ctx context.Context, in domain.ProcessRechargeInput) (*ledgerdomain.RechargeRequest, error) {
	if in.Status != ledgerdomain.RechargeStatusApproved && in.Status != ledgerdomain.RechargeStatusRejected {
		return nil, domain.ErrInvalidRechargeStatus
	}

	unlock := s.locks.Lock("recharge:" + in.RequestID)
	defer unlock()

	request, err := s.ledger.FindRechargeRequest(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ledgerdomain.ErrRechargeNotFound
	}
	if s.policy.Get().SingleRechargeProcessing && request.Status != ledgerdomain.RechargeStatusPending {
		return nil, domain.ErrRechargeAlreadyProcessed
	}

	now := s.clock.Now()
	updated, err := s.ledger.UpdateRechargeRequestStatus(ctx, in.RequestID, in.Status, now, in.Notes)
	if err != nil {
		return nil, err
	}

	if in.Status == ledgerdomain.RechargeStatusApproved {
		if _, err := s.cafes.AdjustPoints(ctx, updated.CafeteriaID, updated.Amount); err != nil {
			return nil, err
		}
		entry := &ledgerdomain.Entry{
			ID:          s.node.Generate().String(),
			Type:        ledgerdomain.EntryTypeRechargeCredit,
			Amount:      updated.Amount,
			CafeteriaID: &updated.CafeteriaID,
			Timestamp:   now,
			Description: fmt.Sprintf("Recharge approved for request %s", updated.ID),
		}
		if err := s.ledger.AppendEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	s.log.Info("recharge request processed",
		zap.String("request_id", in.RequestID),
		zap.String("status", string(in.Status)),
	)
	if s.metrics != nil {
		s.metrics.RechargesProcessed.WithLabelValues(string(in.Status)).Inc()
	}
	s.hub.Notify()
	return updated, nil
}

func (s *service) CreatePayout(ctx context.Context, in domain.CreatePayoutInput) (*ledgerdomain.PayoutRecord, error) {
	unlock := s.locks.Lock("marketer:" + in.MarketerID)
	defer unlock()

	if s.policy.Get().EnforcePayoutBalance {
		balance, err := s.MarketerBalance(ctx, in.MarketerID)
		if err != nil {
			return nil, err
		}
		if balance < in.Amount {
			return nil, domain.ErrInsufficientMarketerBalance
		}
	}

	now := s.clock.Now()
	record := &ledgerdomain.PayoutRecord{
		ID:         s.node.Generate().String(),
		MarketerID: in.MarketerID,
		Amount:     in.Amount,
		Note:       in.Note,
		CreatedAt:  now,
		CreatedBy:  in.CreatedBy,
	}
	if err := s.ledger.CreatePayoutRecord(ctx, record); err != nil {
		return nil, err
	}

	entry := &ledgerdomain.Entry{
		ID:          s.node.Generate().String(),
		Type:        ledgerdomain.EntryTypePayoutDebit,
		Amount:      in.Amount,
		MarketerID:  &record.MarketerID,
		Timestamp:   now,
		Description: fmt.Sprintf("Payout to marketer %s", in.MarketerID),
	}
	if err := s.ledger.AppendEntry(ctx, entry); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PayoutsCreated.Inc()
	}
	s.hub.Notify()
	return record, nil
}

// MarketerBalance folds the append-only history on every call: accrued
// commission credits minus recorded payouts. No cached balance exists for
// marketers.
func (s *service) MarketerBalance(ctx context.Context, marketerID string) (int64, error) {
	commissions, err := s.ledger.CommissionsByMarketer(ctx, marketerID)
	if err != nil {
		return 0, err
	}
	payouts, err := s.ledger.PayoutsByMarketer(ctx, marketerID)
	if err != nil {
		return 0, err
	}

	var balance int64
	for _, entry := range commissions {
		balance += entry.Amount
	}
	for _, payout := range payouts {
		balance -= payout.Amount
	}
	return balance, nil
}

func (s *service) MarketerCommissions(ctx context.Context, marketerID string) ([]ledgerdomain.Entry, error) {
	return s.ledger.CommissionsByMarketer(ctx, marketerID)
}

func (s *service) MarketerPayouts(ctx context.Context, marketerID string) ([]ledgerdomain.PayoutRecord, error) {
	return s.ledger.PayoutsByMarketer(ctx, marketerID)
}

func (s *service) CommissionConfig(ctx context.Context) (settingsdomain.CommissionConfig, error) {
	return s.settings.CommissionConfig(ctx)
}

func (s *service) UpdateCommissionConfig(ctx context.Context, cfg settingsdomain.CommissionConfig) error {
	if cfg.RateDirectParentPercent < 0 || cfg.RateGrandparentPercent < 0 || cfg.RateOwnerPercent < 0 {
		return settingsdomain.ErrNegativeRate
	}
	if s.policy.Get().EnforceCommissionSum {
		sum := cfg.RateDirectParentPercent + cfg.RateGrandparentPercent + cfg.RateOwnerPercent
		if sum != 100 {
			return settingsdomain.ErrCommissionSumInvalid
		}
	}
	if err := s.settings.UpdateCommissionConfig(ctx, cfg); err != nil {
		return err
	}
	s.hub.Notify()
	return nil
}

func (s *service) TrialConfig(ctx context.Context) (settingsdomain.TrialConfig, error) {
	return s.settings.TrialConfig(ctx)
}

func (s *service) UpdateTrialConfig(ctx context.Context, cfg settingsdomain.TrialConfig) error {
	if cfg.GlobalTrialDays < 0 {
		return settingsdomain.ErrInvalidTrialDays
	}
	if err := s.settings.UpdateTrialConfig(ctx, cfg); err != nil {
		return err
	}
	s.hub.Notify()
	return nil
}

func (s *service) SetTrialOverride(ctx context.Context, cafeteriaID string, trialDays *int) (*cafedomain.Cafeteria, error) {
	if trialDays != nil && *trialDays < 0 {
		return nil, settingsdomain.ErrInvalidTrialDays
	}
	cafe, err := s.cafes.UpdateTrialOverride(ctx, cafeteriaID, trialDays)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, domain.ErrCafeteriaNotFound
	}
	s.hub.Notify()
	return cafe, nil
}

func (s *service) SetTrialExpired(ctx context.Context, cafeteriaID string, expired bool) (*cafedomain.Cafeteria, error) {
	cafe, err := s.cafes.SetTrialExpired(ctx, cafeteriaID, expired)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, domain.ErrCafeteriaNotFound
	}
	s.hub.Notify()
	return cafe, nil
}

// wiper is implemented by the in-memory repositories only.
type wiper interface {
	Wipe()
}

func (s *service) Reset(ctx context.Context) error {
	if s.seeder == nil {
		return domain.ErrResetUnavailable
	}

	stores := []any{s.orders, s.cafes, s.ledger, s.settings, s.staff, s.security}
	wipers := make([]wiper, 0, len(stores))
	for _, store := range stores {
		w, ok := store.(wiper)
		if !ok {
			return domain.ErrResetUnavailable
		}
		wipers = append(wipers, w)
	}

	for _, w := range wipers {
		w.Wipe()
	}
	if err := s.seeder.Apply(ctx); err != nil {
		return err
	}

	s.log.Info("sandbox state reset")
	s.hub.Notify()
	return nil
}

func (s *service) Subscribe(callback func()) func() {
	return s.hub.Subscribe(callback)
}

func (s *service) logSecurityEvent(ctx context.Context, req domain.UpdateStatusRequest, reason string) {
	event := &secdomain.Event{
		ID:              s.node.Generate().String(),
		ActorID:         req.ActorID,
		Role:            string(req.ActorRole),
		AttemptedAction: fmt.Sprintf("update_order_status:%s", req.NewStatus),
		TargetID:        req.OrderID,
		Timestamp:       s.clock.Now(),
		Blocked:         true,
		Reason:          reason,
	}
	if err := s.security.Log(ctx, event); err != nil {
		s.log.Warn("security event write failed",
			zap.String("actor_id", req.ActorID),
			zap.Error(err),
		)
	}
}
