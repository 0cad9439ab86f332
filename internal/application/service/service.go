package service

import (
	"context"
	"strings"

	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/apperror"
)

// tenantKey builds a cache key scoped to the tenant carried by ctx
func tenantKey(ctx context.Context, entity string, filters any) (cache.Key, error) {
	table, err := tenant.Resolve(ctx, entity)
	if err != nil {
		return cache.Key{}, err
	}
	return cache.NewKey(entity, table, filters), nil
}

// fieldErrors collects structural validation failures
type fieldErrors []apperror.FieldError

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
	}
}

func (f *fieldErrors) check(ok bool, field, message string) {
	if !ok {
		f.add(field, message)
	}
}

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.FieldError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}
