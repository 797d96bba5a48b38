// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK. [ReadinessHandler] runs a set of named
// [Checks] concurrently under a timeout and answers 503 if any fails.
// [HTTPCheck] builds a check that probes an upstream HTTP backend.
//
// # Quick Start
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "api": health.HTTPCheck(http.DefaultClient, "http://10.0.0.5:9000/"),
//	}, health.WithTimeout(2*time.Second)))
//
// # Response Formats
//
// Plain text by default ("OK" / "Service Unavailable"). Request JSON with
// Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "api": {"status": "unhealthy", "error": "health: check failed: status 502"}
//	  }
//	}
package health
