// internal/app/features/resources/handler.go

// Package resources exposes the JSON API for creating, listing, updating,
// and archiving portal resources.
package resources

import (
	"go.uber.org/zap"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
)

// Handler owns the resource API endpoints. It is constructed once at
// startup in bootstrap with the shared record store and logger.
type Handler struct {
	Store  *resourcestore.Store
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

// NewHandler constructs a Handler bound to the given record store and
// logger.
func NewHandler(store *resourcestore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}
