package app

import (
	"context"

	"github.com/paulkamani9/overtune/internal/backend"
	apperrors "github.com/paulkamani9/overtune/internal/platform/errors"
	"github.com/paulkamani9/overtune/internal/session"
)

// Authenticated reports whether a session is active.
func (a *App) Authenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Authenticated()
}

// AuthError returns the message from the last failed auth attempt.
func (a *App) AuthError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Error()
}

// AuthLoading reports whether a login or registration call is in flight.
func (a *App) AuthLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authLoading
}

// Profile returns the active user profile, zero when anonymous.
func (a *App) Profile() session.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.User()
}

// Login authenticates and, on success, returns to the lessons page and
// refreshes the user's order history. Failure leaves the session anonymous
// with the error message available from AuthError.
func (a *App) Login(ctx context.Context, email, password string) error {
	a.mu.Lock()
	a.authLoading = true
	a.mu.Unlock()

	err := a.session.Login(ctx, email, password)

	a.mu.Lock()
	a.authLoading = false
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.page = PageLessons
	a.mu.Unlock()

	return a.RefreshOrders(ctx)
}

// Register creates an account; semantics mirror Login.
func (a *App) Register(ctx context.Context, input session.RegisterInput) error {
	a.mu.Lock()
	a.authLoading = true
	a.mu.Unlock()

	err := a.session.Register(ctx, input)

	a.mu.Lock()
	a.authLoading = false
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.page = PageLessons
	a.mu.Unlock()

	return a.RefreshOrders(ctx)
}

// Logout unconditionally drops the session, the order history, and the
// persisted credential slots, and returns to the lessons page.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Logout(ctx)
	a.orders = nil
	a.page = PageLessons
}

// Orders returns the order history as last fetched.
func (a *App) Orders() []backend.Order {
	a.mu.Lock()
	defer a.mu.Unlock()
	orders := make([]backend.Order, len(a.orders))
	copy(orders, a.orders)
	return orders
}

// RefreshOrders replaces the order history from the backend. Without an
// active session no request is issued at all.
func (a *App) RefreshOrders(ctx context.Context) error {
	a.mu.Lock()
	if !a.session.Authenticated() {
		a.mu.Unlock()
		return nil
	}
	token := a.session.Token()
	a.loading = true
	a.mu.Unlock()

	orders, err := a.orderGateway.Orders(ctx, token)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		return err
	}
	a.orders = orders
	return nil
}

// SetPage switches between the lessons and order-history pages. The order
// history is user-scoped and requires a session.
func (a *App) SetPage(page Page) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if page == PageOrders && !a.session.Authenticated() {
		return apperrors.E(apperrors.KindUnauthorized, "sign in to view orders")
	}
	a.page = page
	return nil
}
