package graph

import (
	"context"
	"log/slog"

	"nubereats/internal/usecase"
)

// {ok, error}。メッセージだけ返し、種類は外に出さない
type envelope struct {
	ok  bool
	err *string
}

func (e envelope) Ok() bool       { return e.ok }
func (e envelope) Error() *string { return e.err }

func (r *Resolver) envelopeOf(ctx context.Context, operation string, err error) envelope {
	if err == nil {
		return envelope{ok: true}
	}

	msg := "Unexpected error"
	e, ok := usecase.AsError(err)
	if ok {
		msg = e.Message
	}
	if !ok || e.Kind == usecase.KindUnexpected {
		r.Logger.ErrorContext(ctx, "operation failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
	return envelope{err: &msg}
}

type pageOutput struct {
	envelope
	info *usecase.PageInfo
}

func (p pageOutput) TotalPages() *int32 {
	if p.info == nil {
		return nil
	}
	n := int32(p.info.TotalPages)
	return &n
}

func (p pageOutput) TotalResults() *int32 {
	if p.info == nil {
		return nil
	}
	n := int32(p.info.TotalResults)
	return &n
}
