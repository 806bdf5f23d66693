package server

import (
	"dyzs/imgbridge/logger"
	"dyzs/imgbridge/model"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"time"
)

const (
	_WS_SEND_TYPE    = "sensorMultiple"
	_WS_CONTENT_TYPE = "application/json"
	_WS_ACK          = "ack"
)

func (s *ImgHttpServer) ws(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.LOG_WARN("websocket 升级失败：", err)
		return
	}
	s.link(conn)
}

//逐条读取消息，每条消息的 content 为一次编解码参数，处理后回 ack
func (s *ImgHttpServer) link(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(s.bodyLimit())
READ_LOOP:
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.LOG_WARN("websocket 读取异常：", err)
			}
			break READ_LOOP
		}
		msg := &WsReceiveMessage{}
		if err := jsoniter.Unmarshal(data, msg); err != nil {
			logger.LOG_WARN("ws 消息解析异常:", err)
			continue
		}
		var content interface{}
		p := &model.ProcessParam{}
		if err := jsoniter.Unmarshal(msg.Content, p); err != nil {
			logger.LOG_WARN("ws 参数解析异常:", err)
			content = &ImgResponse{Code: -1, Message: err.Error()}
		} else {
			content = s.runJob(p).Output()
		}
		ack, err := jsoniter.Marshal(&WsSendMessage{
			RequestId:        msg.RequestId,
			InteractiveModel: _WS_ACK,
			To:               msg.From,
			From:             msg.To,
			Timestamp:        time.Now().UnixNano() / 1e6,
			ContentType:      _WS_CONTENT_TYPE,
			SendType:         _WS_SEND_TYPE,
			Content:          content,
		})
		if err != nil {
			logger.LOG_WARN("ws 响应序列化异常：", err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, ack); err != nil {
			logger.LOG_WARN("websocket发送异常：", err)
			break READ_LOOP
		}
		logger.LOG_DEBUG("WS_SEND：", msg.RequestId)
	}
}
