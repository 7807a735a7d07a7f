package handler

import (
	"encoding/json"
	"net/http"

	"BioGenerator_Service/internal/metrics"
	"BioGenerator_Service/internal/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleBioSocket godoc
// @Summary      자기소개 생성 WebSocket
// @Description  WebSocket 연결 후 텍스트 프레임마다 프로필 JSON을 보내면 같은 연결로 {"bio"} 또는 {"error"} JSON을 돌려받습니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.** `ws://` 또는 `wss://` 스킴으로 연결하세요.
// @Tags         WebSocket
// @Success      101 {string} string "101 Switching Protocols"
// @Router       /ws/generate-bio [get]
func (h *BioHandler) HandleBioSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("HandleBioSocket(): failed to upgrade to WebSocket: %v", err)
		return
	}
	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()

	h.manageBioSession(c, conn)
}

// 요청 프레임마다 독립적으로 처리, 세션 상태 없음
func (h *BioHandler) manageBioSession(c *gin.Context, conn *websocket.Conn) {
	defer conn.Close()
	client := c.ClientIP()
	log.Infof("manageBioSession(): session started for %s", client)

	ctx := c.Request.Context()
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("manageBioSession(): error reading message from %s: %v", client, err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			log.Warnf("manageBioSession(): unsupported message type from %s: %d", client, messageType)
			continue
		}

		var reply any
		text, err := h.service.GenerateFromJSON(ctx, message)
		if err != nil {
			reply = models.ErrorResponse{Error: err.Error()}
		} else {
			reply = models.BioResponse{Bio: text}
		}

		payload, err := json.Marshal(reply)
		if err != nil {
			log.Errorf("manageBioSession(): failed to encode reply: %v", err)
			break
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("manageBioSession(): error sending message to %s: %v", client, err)
			break
		}
	}
	log.Infof("manageBioSession(): session ended for %s", client)
}
