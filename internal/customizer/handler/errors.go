package handler

import (
	"errors"
	"net/http"

	"github.com/RandalBristow/pizza-palace-sub000/internal/catalog"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"google.golang.org/grpc/codes"
)

func grpcCode(err error) codes.Code {
	switch {
	case errors.Is(err, customizer.ErrSessionNotFound),
		errors.Is(err, customizer.ErrToppingNotFound),
		errors.Is(err, catalog.ErrMenuItemNotFound):
		return codes.NotFound
	case errors.Is(err, customizer.ErrItemNotSelectable),
		errors.Is(err, customizer.ErrNotReady),
		errors.Is(err, catalog.ErrNotCustomizable):
		return codes.FailedPrecondition
	case errors.Is(err, customizer.ErrInvalidTopping),
		errors.Is(err, customizer.ErrInvalidInput):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

func httpStatus(err error) int {
	switch grpcCode(err) {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
