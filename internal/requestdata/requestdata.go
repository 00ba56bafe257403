package requestdata

import (
	"context"

	"github.com/yungbote/storefront-backend/internal/types"
)

var requestDataKey = struct{}{}

type RequestData struct {
	TokenString string
	UserID      string
	Role        types.Role
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
