// Package websocket provides WebSocket notifications for completed rover runs.
//
// Architecture:
//
// A central Hub owns all connections. Each client subscribes to one topic
// when it connects (?topic=obstacle). Topics are scenario names; ad-hoc runs
// and clients that give no topic use the "all" topic, which also receives
// every other topic's messages. The hub loop is the only goroutine touching
// the subscriber map; each client has its own read and write pumps with
// ping/pong deadlines.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"topic": "obstacle", "event": "run_completed", "run": {...}}
//
// Incoming messages are read and discarded.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("topic"))
//	})
//
//	hub.BroadcastRun("obstacle", runInfo)
//
// Broadcasts are queued without blocking; when the queue is full the
// message is dropped and logged.
package websocket
