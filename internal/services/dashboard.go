package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"coffee-marketplace-client/internal/models"
)

// DashboardOverview aggregates everything the dashboard view renders.
// Sections that failed to load are left empty rather than failing the
// whole overview.
type DashboardOverview struct {
	Profile  *models.User
	Orders   []models.Order
	Payments []models.Payment
}

// DashboardService assembles the customer/vendor dashboard from the
// accounts, orders and payments gateways
type DashboardService struct {
	accounts AccountsGateway
	orders   OrdersGateway
	payments PaymentsGateway
	log      *logrus.Entry
}

// NewDashboardService creates a dashboard service
func NewDashboardService(accounts AccountsGateway, orders OrdersGateway, payments PaymentsGateway) *DashboardService {
	return &DashboardService{
		accounts: accounts,
		orders:   orders,
		payments: payments,
		log:      logrus.WithField("component", "dashboard"),
	}
}

// Overview fetches the profile, order history and, for vendors, the
// payment list concurrently. Individual section failures are logged and
// degrade that section to empty.
func (s *DashboardService) Overview(ctx context.Context, session *models.Session) (*DashboardOverview, error) {
	if !session.Valid() {
		return nil, models.ErrNotAuthenticated
	}

	overview := &DashboardOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.accounts.Profile(gctx, session.Access)
		if err != nil {
			s.log.WithError(err).Warn("profile fetch failed")
			return nil
		}
		overview.Profile = profile
		return nil
	})

	g.Go(func() error {
		orders, err := s.orders.ListOrders(gctx, session.Access)
		if err != nil {
			s.log.WithError(err).Warn("orders fetch failed")
			return nil
		}
		overview.Orders = orders
		return nil
	})

	if session.User.IsVendor() {
		g.Go(func() error {
			payments, err := s.payments.ListPayments(gctx, session.Access)
			if err != nil {
				s.log.WithError(err).Warn("payments fetch failed")
				return nil
			}
			overview.Payments = payments
			return nil
		})
	}

	_ = g.Wait()

	if overview.Profile == nil {
		overview.Profile = &session.User
	}
	return overview, nil
}
