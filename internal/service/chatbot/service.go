// Package chatbot 实现旅行助手业务逻辑
// 基于关键词匹配的简单问答，热门推荐类问题实时查询目的地排行
package chatbot

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
)

// DestinationRanker 热门目的地查询接口
// 由 destination service 实现，避免反向依赖聚合层
type DestinationRanker interface {
	GetPopularDestinations(limit int) ([]respond.PopularDestinationRespond, error)
}

// chatbotService 旅行助手业务逻辑实现
// 推荐类问题委托给 DestinationRanker 查询热门目的地
type chatbotService struct {
	destinationService DestinationRanker
}

// NewChatbotService 构造函数
func NewChatbotService(destinationService DestinationRanker) *chatbotService {
	return &chatbotService{
		destinationService: destinationService,
	}
}

// 推荐类问题的关键词
var recommendKeywords = []string{
	"推荐", "热门", "去哪", "目的地", "哪里好玩",
	"recommend", "popular", "destination", "where",
}

// 问候类问题的关键词
var greetingKeywords = []string{
	"你好", "您好", "hello", "hi", "嗨",
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// Reply 根据提问内容生成回复
func (c *chatbotService) Reply(req request.ChatbotRequest) (*respond.ChatbotRespond, error) {
	content := strings.ToLower(strings.TrimSpace(req.Content))

	if containsAny(content, recommendKeywords) {
		return c.replyPopularDestinations()
	}
	if containsAny(content, greetingKeywords) {
		return &respond.ChatbotRespond{
			Reply: "你好，我是旅行助手！你可以问我「推荐热门目的地」，或者直接浏览旅行群列表找同伴～",
		}, nil
	}

	return &respond.ChatbotRespond{
		Reply: "抱歉，我暂时只能回答旅行相关的问题。试试问我「推荐热门目的地」吧～",
	}, nil
}

// replyPopularDestinations 用热门目的地排行组装推荐回复
func (c *chatbotService) replyPopularDestinations() (*respond.ChatbotRespond, error) {
	popular, err := c.destinationService.GetPopularDestinations(5)
	if err != nil {
		zap.L().Error(err.Error())
		return &respond.ChatbotRespond{
			Reply: "热门目的地查询暂时不可用，请稍后再试～",
		}, nil
	}
	if len(popular) == 0 {
		return &respond.ChatbotRespond{
			Reply: "目前还没有热门目的地，快去创建第一个旅行群吧！",
		}, nil
	}

	var sb strings.Builder
	sb.WriteString("当前最热门的旅行目的地：\n")
	for i, p := range popular {
		sb.WriteString(fmt.Sprintf("%d. %s（%d个旅行群）\n", i+1, p.Name, p.GroupCnt))
	}
	sb.WriteString("去群列表看看有没有心仪的队伍吧～")
	return &respond.ChatbotRespond{Reply: sb.String()}, nil
}
