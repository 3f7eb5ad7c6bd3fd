// Package queries contains read-only operations over stored orders.
package queries
