package chatbot

import (
	"strings"
	"testing"

	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/pkg/errorx"
)

// stubRanker 固定返回的热门目的地排行
type stubRanker struct {
	popular []respond.PopularDestinationRespond
	fail    bool
}

func (s *stubRanker) GetPopularDestinations(limit int) ([]respond.PopularDestinationRespond, error) {
	if s.fail {
		return nil, errorx.ErrServerBusy
	}
	if limit < len(s.popular) {
		return s.popular[:limit], nil
	}
	return s.popular, nil
}

func TestReplyRecommendation(t *testing.T) {
	svc := NewChatbotService(&stubRanker{popular: []respond.PopularDestinationRespond{
		{Name: "大理", GroupCnt: 8},
		{Name: "成都", GroupCnt: 5},
	}})

	rsp, err := svc.Reply(request.ChatbotRequest{Content: "帮我推荐一下目的地"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(rsp.Reply, "大理") || !strings.Contains(rsp.Reply, "成都") {
		t.Errorf("reply missing destinations: %s", rsp.Reply)
	}
}

func TestReplyRecommendationEnglishKeyword(t *testing.T) {
	svc := NewChatbotService(&stubRanker{popular: []respond.PopularDestinationRespond{
		{Name: "Kyoto", GroupCnt: 3},
	}})

	rsp, err := svc.Reply(request.ChatbotRequest{Content: "Any popular places?"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(rsp.Reply, "Kyoto") {
		t.Errorf("reply missing destination: %s", rsp.Reply)
	}
}

func TestReplyGreeting(t *testing.T) {
	svc := NewChatbotService(&stubRanker{})

	rsp, err := svc.Reply(request.ChatbotRequest{Content: "你好"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(rsp.Reply, "旅行助手") {
		t.Errorf("unexpected greeting reply: %s", rsp.Reply)
	}
}

func TestReplyFallback(t *testing.T) {
	svc := NewChatbotService(&stubRanker{})

	rsp, err := svc.Reply(request.ChatbotRequest{Content: "今天股票涨了吗"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(rsp.Reply, "旅行相关") {
		t.Errorf("unexpected fallback reply: %s", rsp.Reply)
	}
}

func TestReplyRankerUnavailable(t *testing.T) {
	svc := NewChatbotService(&stubRanker{fail: true})

	// 排行查询失败时降级为提示文案，不向上抛错
	rsp, err := svc.Reply(request.ChatbotRequest{Content: "推荐"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if rsp.Reply == "" {
		t.Errorf("empty degraded reply")
	}
}

func TestReplyEmptyRanking(t *testing.T) {
	svc := NewChatbotService(&stubRanker{})

	rsp, err := svc.Reply(request.ChatbotRequest{Content: "热门目的地有哪些"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(rsp.Reply, "第一个旅行群") {
		t.Errorf("unexpected empty-ranking reply: %s", rsp.Reply)
	}
}
