package respond

// DestinationRespond 目的地列表的单项
// 使用位置:
//   - internal/service/destination/service.go: GetDestinationList
type DestinationRespond struct {
	Uuid        string `json:"uuid"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// PopularDestinationRespond 热门目的地的单项
// 使用位置:
//   - internal/service/destination/service.go: GetPopularDestinations
//   - internal/service/chatbot/service.go: Reply
type PopularDestinationRespond struct {
	Name     string `json:"name"`
	GroupCnt int64  `json:"group_cnt"`
}
