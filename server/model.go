package server

import jsoniter "github.com/json-iterator/go"

const (
	CMD_PROCESS       = "process"
	CMD_PROCESS_BATCH = "processbatch"
)

type ImgCmd struct {
	Cmd   string              `json:"cmd"`
	Param jsoniter.RawMessage `json:"param"`
}

type ImgResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

type WsReceiveMessage struct {
	RequestId   string              `json:"requestId"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	SendType    string              `json:"sendType"`
	ContentType string              `json:"contentType"`
	Content     jsoniter.RawMessage `json:"content"`
	Timestamp   int64               `json:"timestamp"`
}

type WsSendMessage struct {
	RequestId        string      `json:"requestId"`
	From             string      `json:"from"`
	To               string      `json:"to"`
	SendType         string      `json:"sendType"`
	ContentType      string      `json:"contentType"`
	InteractiveModel string      `json:"interactiveModel"`
	Content          interface{} `json:"content"`
	Timestamp        int64       `json:"timestamp"`
}
