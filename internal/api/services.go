package api

import (
	"github.com/lorekeep/lorekeep-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Category *service.CategoryService
	Item     *service.ItemService
	Search   *service.SearchService
}
