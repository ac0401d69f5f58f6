package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 本服务的响应体直接输出实体投影本身（数组或对象），
// 错误统一为 {"error": <message>}，与前端约定保持一致。

// OK 返回200成功响应
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created 返回201成功响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Message 返回200消息响应
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string, err error) {
	// 记录详细错误信息，但不向客户端暴露
	if err != nil {
		c.Error(err)
	}

	c.JSON(code, gin.H{"error": message})
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// NotFound 404错误响应
func NotFound(c *gin.Context, message string, err error) {
	Error(c, http.StatusNotFound, message, err)
}

// InternalServerError 500错误响应
func InternalServerError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}
