// Package websocket pushes board updates to browser clients.
//
// A single Hub owns every connection. Each client gets a read goroutine,
// which only keeps the connection alive, and a write goroutine, which drains
// the client's send queue and pings the peer.
//
// Messages are JSON objects:
//
//	{"event":"step","generation":42,"running":true,"census":{"copper":688}}
//
// "snapshot" messages additionally carry the full MCell pattern; they are sent
// on connect and after any change that is not a plain step.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, snapshot())
//	})
package websocket
