// Package ws streams board frames to websocket clients.
//
// Every client receives the current frames immediately on connect. After
// that the hub pushes {"event":"frames","data":...} whenever the store's
// version advanced, checked every broadcast interval or as soon as Notify
// is called. Slow clients whose send buffer fills up are disconnected.
package ws
