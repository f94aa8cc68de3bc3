// Package server delivers element deltas to browsers over WebSocket.
//
// Each connection gets a Session whose forward queue implements
// element.ForwardQueue: the app function writes elements through a
// DeltaGenerator, and the session drains the queue to the client as binary
// delta frames.
//
//	app := func(ctx context.Context, dg *element.DeltaGenerator) error {
//	    _, err := dg.Toast("Welcome back!", element.WithIcon("👋"))
//	    return err
//	}
//
//	srv := server.New(app, server.WithAddr(":8080"))
//	log.Fatal(srv.ListenAndServe())
//
// The HTTP surface is a chi router exposing /ws (the session endpoint),
// /healthz, /metrics (Prometheus), and optionally /media for element
// assets.
package server
