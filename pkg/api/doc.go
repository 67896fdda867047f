// Package api serves the pipeline over HTTP.
//
// # Routes
//
//	GET    /healthz                          liveness and build version
//	GET    /metrics                          prometheus metrics
//	GET    /v1/strategies                    decomposition and recomposition strategies
//	POST   /v1/runs                          execute the pipeline, optionally persisting the run
//	GET    /v1/runs                          list stored runs, newest first
//	GET    /v1/runs/{id}                     fetch a stored run
//	DELETE /v1/runs/{id}                     delete a stored run
//	GET    /v1/runs/{id}/artifacts/{format}  render a stored run
//
// Request bodies are validated with struct tags before any work is done.
// Errors are JSON [httputil.ErrorResponse] values whose status follows the
// error code.
//
// # Usage
//
//	srv := api.New(api.Config{
//	    Runner: pipeline.NewRunner(c, nil, logger),
//	    Store:  store.NewMemoryStore(),
//	    Logger: logger,
//	})
//	err := srv.ListenAndServe(ctx, ":8080")
//
// [httputil.ErrorResponse]: github.com/matzehuels/venntower/pkg/httputil
package api
