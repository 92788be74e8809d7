// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

/*
Package supervisor runs the server's long-lived services under suture v4.

The tree has two layers so that housekeeping failures never take the
listener down:

	"oyonews"
	├── "maintenance-layer"
	│   └── JanitorService
	└── "api-layer"
	    └── HTTPServerService

Each layer restarts crashed children with suture's backoff policy. Supervisor
events are logged through sutureslog on a slog logger backed by zerolog (see
logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddMaintenanceService(services.NewJanitorService(time.Minute, tasks...))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
