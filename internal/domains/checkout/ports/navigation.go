package ports

import "net/url"

// Navigator moves the customer to another view.
type Navigator interface {
	ToOrder(orderID string)
}

// OrderDetailPath is the location of the order detail view.
func OrderDetailPath(orderID string) string {
	return "/order/" + url.PathEscape(orderID)
}
