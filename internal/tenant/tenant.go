// Package tenant maps logical table names to the physical tables of the
// selected business database.
//
// Both businesses share one store. The "elite" tables carry an "elite_"
// prefix while the "shahi" tables use the bare logical name.
package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/elitemotors/detailing-api/pkg/apperror"
)

// Type identifies a business database
type Type string

const (
	Elite Type = "elite"
	Shahi Type = "shahi"
)

// Default is used when nothing valid has been persisted yet
const Default = Elite

// PreferenceKey is the durable preference key holding the selected tenant
const PreferenceKey = "databaseType"

// All returns every known tenant
func All() []Type {
	return []Type{Elite, Shahi}
}

// Valid reports whether t is one of the known tenants
func (t Type) Valid() bool {
	return t == Elite || t == Shahi
}

func (t Type) String() string {
	return string(t)
}

// Parse converts a raw value into a tenant type
func Parse(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", apperror.NewBadRequestError(fmt.Sprintf("unknown database type %q", raw))
	}
	return t, nil
}

// Prefix returns the physical table prefix of a tenant
func Prefix(t Type) string {
	if t == Elite {
		return "elite_"
	}
	return ""
}

// TableName resolves a logical table name for the given tenant
func TableName(t Type, logical string) string {
	return Prefix(t) + logical
}

type ctxKey struct{}

// WithTenant attaches the tenant to the context
func WithTenant(ctx context.Context, t Type) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the tenant from the context
func FromContext(ctx context.Context) (Type, bool) {
	t, ok := ctx.Value(ctxKey{}).(Type)
	if !ok || !t.Valid() {
		return "", false
	}
	return t, true
}

// Resolve returns the physical table for the tenant carried by ctx.
// Missing tenant context is an error, never a silent default.
func Resolve(ctx context.Context, logical string) (string, error) {
	t, ok := FromContext(ctx)
	if !ok {
		return "", apperror.ErrTenantRequired
	}
	return TableName(t, logical), nil
}
