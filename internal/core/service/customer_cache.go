package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// customerSource supplies the id of the authenticated customer. Satisfied by
// *SessionService.
type customerSource interface {
	CustomerID() string
}

// CacheState is a rendering snapshot of the cached customer data.
type CacheState struct {
	Customer                *domain.CustomerProfile     `json:"customer"`
	Consumption             *domain.ConsumptionSnapshot `json:"consumption"`
	CurrentPlan             *domain.CustomerPlan        `json:"currentPlan"`
	Notifications           []domain.Notification       `json:"notifications"`
	UnreadNotifications     int                         `json:"unreadNotifications"`
	IsLoading               bool                        `json:"isLoading"`
	Error                   string                      `json:"error,omitempty"`
	LastCustomerUpdate      time.Time                   `json:"lastCustomerUpdate"`
	LastConsumptionUpdate   time.Time                   `json:"lastConsumptionUpdate"`
	LastNotificationsUpdate time.Time                   `json:"lastNotificationsUpdate"`
}

// CustomerCache owns the in-memory copies of profile, consumption, plan and
// notifications. All mutation funnels through its methods; nothing else
// writes the slices.
//
// There is deliberately no request deduplication or sequencing: concurrent
// refreshes race and the last response to resolve wins, matching the
// observable behavior of the client store this replaces. The mutex only
// guards slice commits against torn writes.
type CustomerCache struct {
	gw  ports.SkyGateway
	ids customerSource
	log zerolog.Logger

	mu    sync.Mutex
	state CacheState
}

func NewCustomerCache(gw ports.SkyGateway, ids customerSource, log zerolog.Logger) *CustomerCache {
	return &CustomerCache{gw: gw, ids: ids, log: log}
}

// LoadCustomerData issues the four customer fetches concurrently and commits
// them all-or-nothing: if any fetch fails, no slice changes and only the
// shared error field is recorded. The join policy lives here and nowhere
// else; a partial-commit variant would be a local change to this method.
func (c *CustomerCache) LoadCustomerData(ctx context.Context) {
	customerID := c.ids.CustomerID()
	if customerID == "" {
		return
	}

	c.mu.Lock()
	c.state.IsLoading = true
	c.mu.Unlock()

	var (
		profile     *domain.CustomerProfile
		consumption *domain.ConsumptionSnapshot
		plan        *domain.CustomerPlan
		notifs      []domain.Notification
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = c.gw.GetCustomerProfile(ctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		consumption, err = c.gw.GetConsumption(ctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		plan, err = c.gw.GetCurrentPlan(ctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		notifs, err = c.gw.GetNotifications(ctx, customerID)
		return err
	})

	if err := g.Wait(); err != nil {
		c.log.Error().Err(err).Str("customer_id", customerID).Msg("customer data load failed")
		c.mu.Lock()
		c.state.IsLoading = false
		c.state.Error = userMessage(err, "Erro ao carregar dados")
		c.mu.Unlock()
		return
	}

	now := time.Now()
	c.mu.Lock()
	c.state.Customer = profile
	c.state.Consumption = consumption
	c.state.CurrentPlan = plan
	c.state.Notifications = notifs
	c.state.UnreadNotifications = countUnread(notifs)
	c.state.IsLoading = false
	c.state.LastCustomerUpdate = now
	c.state.LastConsumptionUpdate = now
	c.state.LastNotificationsUpdate = now
	c.mu.Unlock()
}

// RefreshConsumption replaces only the consumption slice. On failure the
// stale snapshot stays in place and only the error field is updated.
func (c *CustomerCache) RefreshConsumption(ctx context.Context) {
	customerID := c.ids.CustomerID()
	if customerID == "" {
		return
	}

	consumption, err := c.gw.GetConsumption(ctx, customerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Msg("consumption refresh failed")
		c.state.Error = userMessage(err, "Erro ao atualizar consumo")
		return
	}
	c.state.Consumption = consumption
	c.state.LastConsumptionUpdate = time.Now()
}

// RefreshPlan replaces only the current plan slice.
func (c *CustomerCache) RefreshPlan(ctx context.Context) {
	customerID := c.ids.CustomerID()
	if customerID == "" {
		return
	}

	plan, err := c.gw.GetCurrentPlan(ctx, customerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Msg("plan refresh failed")
		c.state.Error = userMessage(err, "Erro ao atualizar plano")
		return
	}
	c.state.CurrentPlan = plan
}

// RefreshNotifications replaces the notification list and unread counter.
func (c *CustomerCache) RefreshNotifications(ctx context.Context) {
	customerID := c.ids.CustomerID()
	if customerID == "" {
		return
	}

	notifs, err := c.gw.GetNotifications(ctx, customerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Msg("notification refresh failed")
		c.state.Error = userMessage(err, "Erro ao atualizar notificações")
		return
	}
	c.state.Notifications = notifs
	c.state.UnreadNotifications = countUnread(notifs)
	c.state.LastNotificationsUpdate = time.Now()
}

// MarkNotificationRead applies the read flag optimistically before the
// remote acknowledgment. A remote failure is recorded in the error field
// without rolling the local copy back; divergence is reconciled by the next
// RefreshNotifications.
func (c *CustomerCache) MarkNotificationRead(ctx context.Context, notificationID string) {
	customerID := c.ids.CustomerID()
	if customerID == "" {
		return
	}

	c.mu.Lock()
	for i := range c.state.Notifications {
		if c.state.Notifications[i].ID == notificationID {
			c.state.Notifications[i].Read = true
		}
	}
	if c.state.UnreadNotifications > 0 {
		c.state.UnreadNotifications--
	}
	c.mu.Unlock()

	if err := c.gw.MarkNotificationRead(ctx, customerID, notificationID); err != nil {
		c.log.Warn().Err(err).Str("notification_id", notificationID).Msg("notification ack failed")
		c.mu.Lock()
		c.state.Error = userMessage(err, "Erro ao marcar notificação")
		c.mu.Unlock()
	}
}

// ClearError resets the shared error field.
func (c *CustomerCache) ClearError() {
	c.mu.Lock()
	c.state.Error = ""
	c.mu.Unlock()
}

// Snapshot returns a copy of the cache state safe to render concurrently.
func (c *CustomerCache) Snapshot() CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state
	if c.state.Customer != nil {
		cp := *c.state.Customer
		cp.MobileLines = append([]domain.MobileLine(nil), c.state.Customer.MobileLines...)
		snap.Customer = &cp
	}
	if c.state.Consumption != nil {
		cons := *c.state.Consumption
		snap.Consumption = &cons
	}
	if c.state.CurrentPlan != nil {
		plan := *c.state.CurrentPlan
		plan.IncludedApps = append([]string(nil), c.state.CurrentPlan.IncludedApps...)
		snap.CurrentPlan = &plan
	}
	snap.Notifications = append([]domain.Notification(nil), c.state.Notifications...)
	return snap
}

func countUnread(notifs []domain.Notification) int {
	n := 0
	for _, notif := range notifs {
		if !notif.Read {
			n++
		}
	}
	return n
}

// userMessage extracts the boundary's user-facing message. Anything that is
// not a boundary error gets the generic fallback; the raw cause goes to the
// log, never to the rendered error field.
func userMessage(err error, fallback string) string {
	if ae, ok := domain.AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
