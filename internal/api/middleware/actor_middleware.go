package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

// ActorMiddleware 從 header 取出操作者資訊
// 驗證本身由外部的 auth layer 處理, 這裡只負責帶進 context
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := model.Actor{
			Email: r.Header.Get("X-User-Email"),
			Name:  r.Header.Get("X-User-Name"),
			Role:  r.Header.Get("X-User-Role"),
		}
		if actor.Role == "" {
			actor.Role = constants.RoleUser
		}

		ctx := context.WithValue(r.Context(), constants.ActorKey, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor 取出請求當下的操作者, 沒有則回傳零值
func GetActor(ctx context.Context) model.Actor {
	if v := ctx.Value(constants.ActorKey); v != nil {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{Role: constants.RoleUser}
}
