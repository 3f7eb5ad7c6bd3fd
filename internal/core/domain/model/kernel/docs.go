// Package kernel holds value objects shared across the order domain.
//
// UUID is the order identity. It is assigned by the persistence layer on the first
// save; its zero value means "not persisted yet".
package kernel
