// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package supervisor provides process supervision for Reelscout using suture v4.

Long-running services live in a three-layer tree so a failure in one layer
is restarted in place without touching the others:

	RootSupervisor ("reelscout")
	├── DataSupervisor ("data-layer")
	│   └── CatalogService
	├── MessagingSupervisor ("messaging-layer")
	│   └── ConfigWatchService (when a config file is in use)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Restarts use suture's failure threshold, decay and backoff (see TreeConfig).
Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(catalogSvc)
	tree.AddAPIService(httpSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Service wrappers live in the services subpackage.
*/
package supervisor
