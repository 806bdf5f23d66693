package server

import (
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"net/http"
)

func responseSuccess(ctx *gin.Context, result interface{}) {
	responseJSON(ctx, http.StatusOK, &ImgResponse{
		Code:    http.StatusOK,
		Message: "success",
		Result:  result,
	})
}

func responseError(ctx *gin.Context, status int, err error) {
	responseJSON(ctx, status, &ImgResponse{
		Code:    -1,
		Message: err.Error(),
		Result:  struct{}{},
	})
}

//用 jsoniter 序列化，张量数据量较大
func responseJSON(ctx *gin.Context, status int, v interface{}) {
	b, err := jsoniter.Marshal(v)
	if err != nil {
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}
	ctx.Data(status, "application/json; charset=utf-8", b)
}
