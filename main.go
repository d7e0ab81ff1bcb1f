package main

import (
	"log"
	"net/http"

	appproviders "github.com/governa-io/governa/app/providers"
	"github.com/governa-io/governa/app/services/bias"
	"github.com/governa-io/governa/app/services/compliance"
	"github.com/governa-io/governa/framework/app"
	"github.com/governa-io/governa/framework/container"
	gohttp "github.com/governa-io/governa/framework/http"
	"github.com/governa-io/governa/framework/routing"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if err := application.Register(&appproviders.AppServiceProvider{}); err != nil {
		log.Fatalf("register providers: %v", err)
	}
	if err := application.Boot(); err != nil {
		log.Fatalf("boot: %v", err)
	}

	c := application.Container
	r := application.Router()

	// ── Operational endpoints ────────────────────────────────────────────────

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", application.Metrics().Handler())

	// ── Governance API ───────────────────────────────────────────────────────

	r.Prefix("/api/v1", func(api *routing.Router) {

		// GET /api/v1/frameworks
		api.Get("/frameworks", func(w http.ResponseWriter, req *http.Request) {
			checklist := container.MustResolve[*compliance.Checklist](c, "checklist")
			gohttp.NewResponse(w).Success(checklist.Frameworks())
		})

		// GET /api/v1/frameworks/{id}/requirements
		api.Get("/frameworks/{id}/requirements", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			checklist := container.MustResolve[*compliance.Checklist](c, "checklist")

			reqs, err := checklist.Requirements(routing.Param(req, "id"))
			if err != nil {
				res.NotFound(err.Error())
				return
			}
			res.Success(reqs)
		})

		// POST /api/v1/frameworks/{id}/evaluate
		api.Post("/frameworks/{id}/evaluate", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			checklist := container.MustResolve[*compliance.Checklist](c, "checklist")

			var body struct {
				Satisfied []string `json:"satisfied" validate:"required"`
			}
			bag, err := gohttp.NewRequest(req).BindValidated(&body)
			if err != nil {
				res.Error(http.StatusBadRequest, err.Error())
				return
			}
			if bag != nil {
				res.ValidationError(bag)
				return
			}

			report, err := checklist.Evaluate(routing.Param(req, "id"), body.Satisfied)
			if err != nil {
				res.NotFound(err.Error())
				return
			}
			res.Success(report)
		})

		// POST /api/v1/bias/assessments
		api.Post("/bias/assessments", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)

			var body struct {
				Dataset   string  `json:"dataset" validate:"required"`
				Attribute string  `json:"attribute" validate:"required"`
				Threshold float64 `json:"threshold" validate:"gte=0,lte=1"`
			}
			bag, err := gohttp.NewRequest(req).BindValidated(&body)
			if err != nil {
				res.Error(http.StatusBadRequest, err.Error())
				return
			}
			if bag != nil {
				res.ValidationError(bag)
				return
			}

			scorer := container.MustResolve[*bias.Scorer](c, "scorer")
			res.Created(scorer.Score(body.Dataset, body.Attribute, body.Threshold))
		})
	})

	if err := application.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
