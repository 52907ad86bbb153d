package api

import (
	"fmt"
	"net/http"

	"github.com/celestina-app/celestina/internal/config"
	"github.com/celestina-app/celestina/pkg/openapi"
	"github.com/celestina-app/celestina/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	routes.Register(
		mux,
		domain.Verifications.Handler().Routes(),
	)

	spec := buildSpec(cfg)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
