package app

import (
	"context"
	"log"

	"github.com/paulkamani9/overtune/internal/backend"
	apperrors "github.com/paulkamani9/overtune/internal/platform/errors"
)

// Overlay identifies the modal region layered over the base view. The
// checkout flow keeps exactly one overlay active at a time.
type Overlay int

const (
	// OverlayNone means plain browsing.
	OverlayNone Overlay = iota
	// OverlayCart shows the cart contents.
	OverlayCart
	// OverlayCheckout shows the checkout form.
	OverlayCheckout
	// OverlaySuccess confirms a completed order.
	OverlaySuccess
)

// Page selects the base view underneath any overlay.
type Page int

const (
	// PageLessons is the catalog page.
	PageLessons Page = iota
	// PageOrders is the order-history page.
	PageOrders
)

// Overlay returns the active overlay.
func (a *App) Overlay() Overlay {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overlay
}

// Page returns the active base page.
func (a *App) Page() Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

// CheckoutError returns the message from the last failed order attempt.
func (a *App) CheckoutError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checkoutError
}

// CheckoutLoading reports whether an order submission is in flight.
func (a *App) CheckoutLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checkoutLoading
}

// Checkout returns the current checkout form contents.
func (a *App) Checkout() CheckoutForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checkoutForm
}

// SetCheckoutForm records buyer details typed into the checkout form.
func (a *App) SetCheckoutForm(form CheckoutForm) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checkoutForm = form
}

// OpenCart shows the cart overlay.
func (a *App) OpenCart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overlay = OverlayCart
}

// CloseCart returns from the cart overlay to plain browsing.
func (a *App) CloseCart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overlay == OverlayCart {
		a.overlay = OverlayNone
	}
}

// ProceedToCheckout moves from browsing or the open cart to the checkout
// form, pre-filling name and phone from the profile when a session exists.
// It is not legal from the checkout or success overlays.
func (a *App) ProceedToCheckout() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overlay == OverlayCheckout || a.overlay == OverlaySuccess {
		return apperrors.E(apperrors.KindConflict, "checkout is not available from this view")
	}
	if a.session.Authenticated() {
		user := a.session.User()
		a.checkoutForm.Name = user.Name
		a.checkoutForm.Phone = user.Phone
	}
	a.overlay = OverlayCheckout
	return nil
}

// CompleteOrder submits the cart as an order. Only legal from the checkout
// overlay. On backend success the cart is cleared, the success overlay
// opens, the catalog is refreshed once to reflect decremented spaces, the
// order history is refreshed for a session, and the form resets. On
// failure the view stays on checkout with the error recorded and the cart
// untouched.
func (a *App) CompleteOrder(ctx context.Context) error {
	a.mu.Lock()
	if a.overlay != OverlayCheckout {
		a.mu.Unlock()
		return apperrors.E(apperrors.KindConflict, "no checkout in progress")
	}
	a.checkoutError = ""
	a.checkoutLoading = true
	form := a.checkoutForm
	token := a.session.Token()
	entries := a.cart.Entries()
	a.mu.Unlock()

	order := backend.OrderRequest{Name: form.Name, Phone: form.Phone}
	for _, entry := range entries {
		order.Lessons = append(order.Lessons, backend.OrderLine{
			ID:       entry.Lesson.ID,
			Quantity: entry.Quantity,
		})
	}

	err := a.orderGateway.SubmitOrder(ctx, token, order)

	a.mu.Lock()
	a.checkoutLoading = false
	if err != nil {
		a.checkoutError = err.Error()
		a.mu.Unlock()
		return err
	}
	a.cart.Clear(ctx)
	a.overlay = OverlaySuccess
	a.checkoutForm = CheckoutForm{}
	authenticated := a.session.Authenticated()
	a.mu.Unlock()

	if err := a.RefreshLessons(ctx); err != nil {
		log.Printf("post-order lesson refresh: %v", err)
	}
	if authenticated {
		if err := a.RefreshOrders(ctx); err != nil {
			log.Printf("post-order history refresh: %v", err)
		}
	}
	return nil
}

// CloseSuccess dismisses the success overlay and returns to the lessons
// page. Unconditional.
func (a *App) CloseSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overlay = OverlayNone
	a.page = PageLessons
}
