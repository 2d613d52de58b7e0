package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/fleetquery/internal/nlq"
)

// queryRequest 表单或 JSON 均可
type queryRequest struct {
	Query *string `form:"query" json:"query"`
}

// Index 问答页面
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Examples": []string{
			"What is the status of EV001?",
			"Which EVs are at risk of brake failure?",
			"Which EVs have low charge?",
			"Which EVs are expected to malfunction next month?",
			"What is the average state of charge?",
			"Show fleet health",
		},
	})
}

// Query 回答一个问题
func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBind(&req); err != nil || req.Query == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	answer := h.assistant.Answer(c.Request.Context(), *req.Query)
	c.JSON(http.StatusOK, gin.H{"response": answer.Response})
}

// ListIntents 分类规则名称，顺序即匹配优先级
func (h *Handler) ListIntents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": nlq.Rules()})
}
