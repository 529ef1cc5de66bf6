package handler

import (
	"context"
	"net/http"

	"nubereats/internal/domain/model"
	"nubereats/internal/session"

	"github.com/99designs/gqlgen/graphql/playground"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
	"github.com/labstack/echo/v4"
)

const graphqlPath = "/graphql"

type GraphQLHandler struct {
	schema *graphql.Schema
	http   http.Handler
}

func NewGraphQLHandler(schema *graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, http: &relay.Handler{Schema: schema}}
}

// authはAuthJWT。ctxにユーザーが載った状態でGraphQLに渡す
func (h *GraphQLHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group(graphqlPath)
	g.Use(auth)

	g.POST("", h.query)
	g.GET("", h.subscribe)

	e.GET("/", echo.WrapHandler(playground.Handler("Nuber Eats", graphqlPath)))
}

func (h *GraphQLHandler) query(c echo.Context) error {
	h.http.ServeHTTP(c.Response(), c.Request())
	return nil
}

// websocket（graphql-ws）。それ以外のGETは通常のHTTPとして扱う
func (h *GraphQLHandler) subscribe(c echo.Context) error {
	req := c.Request()
	svc := sessionSchema{schema: h.schema}
	if u, ok := session.UserFromContext(req.Context()); ok {
		svc.user = &u
	}
	graphqlws.NewHandlerFunc(svc, h.http)(c.Response(), req)
	return nil
}

// 接続時のユーザーを購読のctxに載せ直す
type sessionSchema struct {
	schema *graphql.Schema
	user   *model.User
}

func (s sessionSchema) Subscribe(ctx context.Context, document string, operationName string, variables map[string]interface{}) (<-chan interface{}, error) {
	if s.user != nil {
		ctx = session.WithUser(ctx, *s.user)
	}
	return s.schema.Subscribe(ctx, document, operationName, variables)
}
