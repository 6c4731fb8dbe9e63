// Package guard holds the pure authorization predicates scoping which
// staff member may act on which order.
package guard

import (
	"fmt"

	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
)

// Result is the outcome of one guard check. Reason is set only when the
// action is blocked.
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Result { return Result{Allowed: true} }

func deny(reason string) Result { return Result{Allowed: false, Reason: reason} }

// CheckStaffActive blocks disabled staff. A nil staff record passes; the
// caller decides whether anonymous actors are acceptable.
func CheckStaffActive(staff *staffdomain.Staff) Result {
	if staff != nil && !staff.IsActive {
		return deny("Staff account is disabled")
	}
	return allow()
}

// CheckWaiterSection blocks a waiter whose session is bound to a section
// other than the one the order's table belongs to. A waiter with no
// session, or a table with no known section, is unrestricted.
func CheckWaiterSection(session *staffdomain.WaiterSession, tableSectionID string) Result {
	if session != nil && tableSectionID != "" && tableSectionID != session.SectionID {
		return deny(fmt.Sprintf("Waiter can only update orders in their assigned section (%s)", session.SectionID))
	}
	return allow()
}

// CheckKitchenCategory blocks kitchen staff assigned to a category when
// none of the order's items map to that category. Kitchen staff with no
// assigned category are unrestricted.
func CheckKitchenCategory(order *orderdomain.Order, staff *staffdomain.Staff, menuItems []cafedomain.MenuItem) Result {
	if staff == nil || staff.Role != staffdomain.RoleKitchen || staff.KitchenCategoryID == nil {
		return allow()
	}

	categoryID := *staff.KitchenCategoryID
	byID := make(map[string]cafedomain.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	for _, item := range order.Items {
		mi, ok := byID[item.MenuItemID]
		if ok && mi.KitchenCategoryID != nil && *mi.KitchenCategoryID == categoryID {
			return allow()
		}
	}
	return deny(fmt.Sprintf("Kitchen staff can only update orders containing items from their assigned category (%s)", categoryID))
}
