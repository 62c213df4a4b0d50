package websocket

import (
	"keepwise-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the live note feed at /ws/notes. Browsers cannot set
// an Authorization header on websocket upgrades, so the bearer token travels
// in the `token` query parameter instead.
func RegisterRoutes(app *fiber.App, hub *Hub, tokens service.ITokenService) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}

		token := ctx.Query("token")
		authHeader := ""
		if token != "" {
			authHeader = "Bearer " + token
		}
		user, err := tokens.Verify(ctx.Context(), authHeader)
		if err != nil {
			return fiber.ErrForbidden
		}

		ctx.Locals("uid", user.Uid)
		return ctx.Next()
	})

	app.Get("/ws/notes", websocket.New(func(conn *websocket.Conn) {
		uid, _ := conn.Locals("uid").(string)
		ServeWs(hub, conn, uid)
	}))
}

// ServeWs wires a websocket connection into the hub.
func ServeWs(hub *Hub, conn *websocket.Conn, userID string) {
	client := &Client{Hub: hub, Conn: conn, UserID: userID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // blocks for the lifetime of the connection
}
