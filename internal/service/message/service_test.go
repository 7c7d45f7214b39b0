package message

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"travel_together_server/internal/dao/mysql/repository"
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/model"
	"travel_together_server/pkg/enum/group/group_status_enum"
	"travel_together_server/pkg/enum/group_member/join_status_enum"
	"travel_together_server/pkg/errorx"
)

// ==================== 测试替身 ====================

type stubGroupRepo struct {
	groups map[string]*model.TravelGroup
}

func (s *stubGroupRepo) FindByUuid(uuid string) (*model.TravelGroup, error) {
	if g, ok := s.groups[uuid]; ok {
		return g, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "群组不存在 uuid=%s", uuid)
}
func (s *stubGroupRepo) FindByOwnerId(string) ([]model.TravelGroup, error) { return nil, nil }
func (s *stubGroupRepo) ListWithMeta(string) ([]repository.GroupWithMeta, error) {
	return nil, nil
}
func (s *stubGroupRepo) CreateGroup(*model.TravelGroup) error              { return nil }
func (s *stubGroupRepo) UpdateFields(string, map[string]interface{}) error { return nil }
func (s *stubGroupRepo) IncrementMemberCntGuarded(string) (bool, error)    { return false, nil }
func (s *stubGroupRepo) DecrementMemberCnt(string) error                   { return nil }
func (s *stubGroupRepo) DeleteByUuid(string) error                         { return nil }

type stubMemberRepo struct {
	members map[string]*model.GroupMember // key: group|user
}

func (s *stubMemberRepo) FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error) {
	if m, ok := s.members[groupUuid+"|"+userUuid]; ok {
		return m, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "成员关系不存在")
}
func (s *stubMemberRepo) FindMembersWithUser(string) ([]model.GroupMemberWithUser, error) {
	return nil, nil
}
func (s *stubMemberRepo) ApprovedMemberIds(string) ([]string, error) { return nil, nil }
func (s *stubMemberRepo) CountApprovedByGroup(string) (int64, error) { return 0, nil }
func (s *stubMemberRepo) Create(*model.GroupMember) error            { return nil }
func (s *stubMemberRepo) UpdateStatus(string, string, int8) error    { return nil }
func (s *stubMemberRepo) Delete(string, string) error                { return nil }
func (s *stubMemberRepo) DeleteByGroupUuid(string) error             { return nil }

type stubUserRepo struct {
	users map[string]*model.User
}

func (s *stubUserRepo) FindByUuid(uuid string) (*model.User, error) {
	if u, ok := s.users[uuid]; ok {
		return u, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户不存在 uuid=%s", uuid)
}
func (s *stubUserRepo) FindByUsername(string) (*model.User, error) {
	return nil, errorx.Newf(errorx.CodeNotFound, "no")
}
func (s *stubUserRepo) FindByTelephone(string) (*model.User, error) {
	return nil, errorx.Newf(errorx.CodeNotFound, "no")
}
func (s *stubUserRepo) CreateUser(*model.User) error                      { return nil }
func (s *stubUserRepo) UpdateFields(string, map[string]interface{}) error { return nil }
func (s *stubUserRepo) SetCurrentGroup(string, string) (bool, error)      { return false, nil }
func (s *stubUserRepo) ClearCurrentGroup(string) error                    { return nil }
func (s *stubUserRepo) ClearCurrentGroupByGroup(string) error             { return nil }
func (s *stubUserRepo) SetGroupOwnerFlag(string, int8) error              { return nil }
func (s *stubUserRepo) SoftDeleteByUuid(string) error                     { return nil }

type stubMessageRepo struct {
	messages []model.GroupMessage
}

func (s *stubMessageRepo) Create(*model.GroupMessage) error { return nil }
func (s *stubMessageRepo) FindRecentByGroup(groupUuid string, limit int) ([]model.GroupMessage, error) {
	var result []model.GroupMessage
	for _, m := range s.messages {
		if m.GroupUuid == groupUuid {
			result = append(result, m)
		}
	}
	if len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}
func (s *stubMessageRepo) DeleteByGroupUuid(string) error { return nil }

// capturePublisher 记录 Publish 收到的消息
type capturePublisher struct {
	mu       sync.Mutex
	captured [][]byte
	fail     error
}

func (p *capturePublisher) Publish(ctx context.Context, msg []byte) error {
	if p.fail != nil {
		return p.fail
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.captured = append(p.captured, msg)
	return nil
}

// noopCache 不缓存任何东西，强制每次走数据库
type noopCache struct{}

func (noopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (noopCache) Get(context.Context, string) (string, error)              { return "", nil }
func (noopCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.Newf(errorx.CodeCacheError, "key 不存在 %s", key)
}
func (noopCache) Delete(context.Context, string) error                    { return nil }
func (noopCache) DeleteByPattern(context.Context, string) error           { return nil }
func (noopCache) DeleteByPatterns(context.Context, []string) error        { return nil }
func (noopCache) AddToSet(context.Context, string, ...interface{}) error  { return nil }
func (noopCache) GetSetMembers(context.Context, string) ([]string, error) { return nil, nil }
func (noopCache) RemoveFromSet(context.Context, string, ...interface{}) error {
	return nil
}
func (noopCache) SubmitTask(action func()) {}

// ==================== 测试脚手架 ====================

func newMessageTestRepos(messages []model.GroupMessage) *repository.Repositories {
	return &repository.Repositories{
		User: &stubUserRepo{users: map[string]*model.User{
			"U1": {Uuid: "U1", Username: "alice"},
			"U2": {Uuid: "U2", Username: "bob"},
		}},
		Group: &stubGroupRepo{groups: map[string]*model.TravelGroup{
			"G1": {Uuid: "G1", Name: "结伴群", Status: group_status_enum.NORMAL, OwnerId: "U1"},
			"G2": {Uuid: "G2", Name: "已解散", Status: group_status_enum.DISMISSED, OwnerId: "U1"},
		}},
		GroupMember: &stubMemberRepo{members: map[string]*model.GroupMember{
			"G1|U1": {GroupUuid: "G1", UserUuid: "U1", JoinStatus: join_status_enum.APPROVED},
			"G1|U2": {GroupUuid: "G1", UserUuid: "U2", JoinStatus: join_status_enum.PENDING},
		}},
		GroupMessage: &stubMessageRepo{messages: messages},
	}
}

// ==================== 测试用例 ====================

func TestSendGroupMessagePublishes(t *testing.T) {
	publisher := &capturePublisher{}
	svc := NewMessageService(newMessageTestRepos(nil), noopCache{}, publisher)

	err := svc.SendGroupMessage(request.SendGroupMessageRequest{
		GroupId: "G1", SendId: "U1", Content: "周末出发，大家准备好了吗",
	})
	if err != nil {
		t.Fatalf("SendGroupMessage failed: %v", err)
	}
	if len(publisher.captured) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.captured))
	}

	var msg request.ChatMessageRequest
	if err := json.Unmarshal(publisher.captured[0], &msg); err != nil {
		t.Fatalf("unmarshal published message: %v", err)
	}
	if msg.GroupId != "G1" || msg.SendId != "U1" {
		t.Errorf("published msg = %+v", msg)
	}
	// SendName 由服务端填充，不信任客户端
	if msg.SendName != "alice" {
		t.Errorf("send_name = %s, want alice", msg.SendName)
	}
}

func TestSendGroupMessageNonMemberRejected(t *testing.T) {
	publisher := &capturePublisher{}
	svc := NewMessageService(newMessageTestRepos(nil), noopCache{}, publisher)

	// U2 是待审核成员，不能发言
	err := svc.SendGroupMessage(request.SendGroupMessageRequest{
		GroupId: "G1", SendId: "U2", Content: "hello",
	})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("err code = %d, want CodeForbidden", errorx.GetCode(err))
	}
	if len(publisher.captured) != 0 {
		t.Errorf("message should not be published")
	}
}

func TestSendGroupMessageDismissedGroupRejected(t *testing.T) {
	svc := NewMessageService(newMessageTestRepos(nil), noopCache{}, &capturePublisher{})

	err := svc.SendGroupMessage(request.SendGroupMessageRequest{
		GroupId: "G2", SendId: "U1", Content: "hello",
	})
	if errorx.GetCode(err) != errorx.CodeStateConflict {
		t.Errorf("err code = %d, want CodeStateConflict", errorx.GetCode(err))
	}
}

func TestGetGroupMessageListAscendingOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	messages := []model.GroupMessage{
		{Uuid: 1, GroupUuid: "G1", SendId: "U1", Content: "第一条", SendAt: sql.NullTime{Time: base, Valid: true}},
		{Uuid: 2, GroupUuid: "G1", SendId: "U2", Content: "第二条", SendAt: sql.NullTime{Time: base.Add(time.Minute), Valid: true}},
		{Uuid: 3, GroupUuid: "G1", SendId: "U1", Content: "第三条", SendAt: sql.NullTime{Time: base.Add(2 * time.Minute), Valid: true}},
	}
	svc := NewMessageService(newMessageTestRepos(messages), noopCache{}, &capturePublisher{})

	list, err := svc.GetGroupMessageList(request.GetGroupMessageListRequest{UserId: "U1", GroupId: "G1"})
	if err != nil {
		t.Fatalf("GetGroupMessageList failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d messages, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Uuid < list[i-1].Uuid {
			t.Errorf("messages not ascending: %d before %d", list[i-1].Uuid, list[i].Uuid)
		}
	}
}

func TestGetGroupMessageListNonMemberRejected(t *testing.T) {
	svc := NewMessageService(newMessageTestRepos(nil), noopCache{}, &capturePublisher{})

	_, err := svc.GetGroupMessageList(request.GetGroupMessageListRequest{UserId: "U2", GroupId: "G1"})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("err code = %d, want CodeForbidden", errorx.GetCode(err))
	}
}
