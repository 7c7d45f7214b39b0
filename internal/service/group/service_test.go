package group

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"travel_together_server/internal/dao/mysql/repository"
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/model"
	"travel_together_server/pkg/enum/group/group_status_enum"
	"travel_together_server/pkg/enum/group/visibility_enum"
	"travel_together_server/pkg/enum/group_member/join_status_enum"
	"travel_together_server/pkg/enum/group_member/role_enum"
	"travel_together_server/pkg/errorx"
)

// ==================== 内存版 Repository 实现 ====================

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[uuid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户不存在 uuid=%s", uuid)
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户不存在 username=%s", username)
}

func (f *fakeUserRepo) FindByTelephone(telephone string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Telephone == telephone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户不存在 telephone=%s", telephone)
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.Uuid] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateFields(uuid string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeUserRepo) SetCurrentGroup(userUuid, groupUuid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userUuid]
	if !ok {
		return false, nil
	}
	if u.CurrentGroupId.Valid {
		return false, nil
	}
	u.CurrentGroupId = sql.NullString{String: groupUuid, Valid: true}
	return true, nil
}

func (f *fakeUserRepo) ClearCurrentGroup(userUuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userUuid]; ok {
		u.CurrentGroupId = sql.NullString{}
		u.IsGroupOwner = 0
	}
	return nil
}

func (f *fakeUserRepo) ClearCurrentGroupByGroup(groupUuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.CurrentGroupId.Valid && u.CurrentGroupId.String == groupUuid {
			u.CurrentGroupId = sql.NullString{}
			u.IsGroupOwner = 0
		}
	}
	return nil
}

func (f *fakeUserRepo) SetGroupOwnerFlag(userUuid string, isOwner int8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userUuid]; ok {
		u.IsGroupOwner = isOwner
	}
	return nil
}

func (f *fakeUserRepo) SoftDeleteByUuid(uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, uuid)
	return nil
}

type fakeGroupRepo struct {
	mu     sync.Mutex
	groups map[string]*model.TravelGroup
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[string]*model.TravelGroup)}
}

func (f *fakeGroupRepo) FindByUuid(uuid string) (*model.TravelGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.groups[uuid]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "群组不存在 uuid=%s", uuid)
}

func (f *fakeGroupRepo) FindByOwnerId(ownerId string) ([]model.TravelGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.TravelGroup
	for _, g := range f.groups {
		if g.OwnerId == ownerId {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (f *fakeGroupRepo) ListWithMeta(userUuid string) ([]repository.GroupWithMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []repository.GroupWithMeta
	for _, g := range f.groups {
		if g.Status != group_status_enum.NORMAL {
			continue
		}
		result = append(result, repository.GroupWithMeta{
			Uuid:       g.Uuid,
			Name:       g.Name,
			Visibility: g.Visibility,
			OwnerId:    g.OwnerId,
			MemberCnt:  g.MemberCnt,
			MaxMembers: g.MaxMembers,
		})
	}
	return result, nil
}

func (f *fakeGroupRepo) CreateGroup(group *model.TravelGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *group
	f.groups[group.Uuid] = &cp
	return nil
}

func (f *fakeGroupRepo) UpdateFields(uuid string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[uuid]
	if !ok {
		return errorx.Newf(errorx.CodeNotFound, "群组不存在 uuid=%s", uuid)
	}
	if status, ok := fields["status"]; ok {
		g.Status = status.(int8)
	}
	return nil
}

func (f *fakeGroupRepo) IncrementMemberCntGuarded(uuid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[uuid]
	if !ok {
		return false, nil
	}
	if g.Status != group_status_enum.NORMAL || g.MemberCnt >= g.MaxMembers {
		return false, nil
	}
	g.MemberCnt++
	return true, nil
}

func (f *fakeGroupRepo) DecrementMemberCnt(uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.groups[uuid]; ok && g.MemberCnt > 0 {
		g.MemberCnt--
	}
	return nil
}

func (f *fakeGroupRepo) DeleteByUuid(uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.groups, uuid)
	return nil
}

type memberKey struct {
	group string
	user  string
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[memberKey]*model.GroupMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[memberKey]*model.GroupMember)}
}

func (f *fakeMemberRepo) FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.members[memberKey{groupUuid, userUuid}]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "成员关系不存在")
}

func (f *fakeMemberRepo) FindMembersWithUser(groupUuid string) ([]model.GroupMemberWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.GroupMemberWithUser
	for k, m := range f.members {
		if k.group == groupUuid && m.JoinStatus == join_status_enum.APPROVED {
			result = append(result, model.GroupMemberWithUser{
				UserId: k.user,
				Role:   m.Role,
			})
		}
	}
	return result, nil
}

func (f *fakeMemberRepo) ApprovedMemberIds(groupUuid string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for k, m := range f.members {
		if k.group == groupUuid && m.JoinStatus == join_status_enum.APPROVED {
			ids = append(ids, k.user)
		}
	}
	return ids, nil
}

func (f *fakeMemberRepo) CountApprovedByGroup(groupUuid string) (int64, error) {
	ids, _ := f.ApprovedMemberIds(groupUuid)
	return int64(len(ids)), nil
}

func (f *fakeMemberRepo) Create(member *model.GroupMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *member
	f.members[memberKey{member.GroupUuid, member.UserUuid}] = &cp
	return nil
}

func (f *fakeMemberRepo) UpdateStatus(groupUuid, userUuid string, status int8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{groupUuid, userUuid}]
	if !ok {
		return errorx.Newf(errorx.CodeNotFound, "成员关系不存在")
	}
	m.JoinStatus = status
	if status == join_status_enum.APPROVED {
		m.JoinedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return nil
}

func (f *fakeMemberRepo) Delete(groupUuid, userUuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, memberKey{groupUuid, userUuid})
	return nil
}

func (f *fakeMemberRepo) DeleteByGroupUuid(groupUuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.members {
		if k.group == groupUuid {
			delete(f.members, k)
		}
	}
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []model.GroupMessage
}

func (f *fakeMessageRepo) Create(message *model.GroupMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) FindRecentByGroup(groupUuid string, limit int) ([]model.GroupMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.GroupMessage
	for _, m := range f.messages {
		if m.GroupUuid == groupUuid {
			result = append(result, m)
		}
	}
	if len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}

func (f *fakeMessageRepo) DeleteByGroupUuid(groupUuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []model.GroupMessage
	for _, m := range f.messages {
		if m.GroupUuid != groupUuid {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type fakeDestinationRepo struct {
	mu           sync.Mutex
	destinations map[string]*model.Destination
}

func newFakeDestinationRepo() *fakeDestinationRepo {
	return &fakeDestinationRepo{destinations: make(map[string]*model.Destination)}
}

func (f *fakeDestinationRepo) FindByUuid(uuid string) (*model.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.destinations[uuid]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "目的地不存在 uuid=%s", uuid)
}

func (f *fakeDestinationRepo) FindByName(name string) (*model.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.destinations {
		if d.Name == name {
			cp := *d
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "目的地不存在 name=%s", name)
}

func (f *fakeDestinationRepo) FindAll() ([]model.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Destination
	for _, d := range f.destinations {
		result = append(result, *d)
	}
	return result, nil
}

func (f *fakeDestinationRepo) Create(destination *model.Destination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *destination
	f.destinations[destination.Uuid] = &cp
	return nil
}

func (f *fakeDestinationRepo) FindPopular(limit int) ([]model.PopularDestination, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
}

func (f *fakeNotificationRepo) Create(notification *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) FindByUserId(userId string) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Notification
	for _, n := range f.notifications {
		if n.UserId == userId {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) MarkRead(uuid, userId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].Uuid == uuid && f.notifications[i].UserId == userId {
			f.notifications[i].IsRead = 1
			return nil
		}
	}
	return errorx.Newf(errorx.CodeNotFound, "通知不存在 uuid=%s", uuid)
}

// fakeCache 内存缓存，SubmitTask 同步执行方便断言
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	sets map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data: make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", errorx.Newf(errorx.CodeCacheError, "key 不存在 %s", key)
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	return nil
}

func (f *fakeCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	return nil
}

func (f *fakeCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = make(map[string]struct{})
	}
	for _, m := range members {
		f.sets[key][fmt.Sprint(m)] = struct{}{}
	}
	return nil
}

func (f *fakeCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range members {
		delete(f.sets[key], fmt.Sprint(m))
	}
	return nil
}

func (f *fakeCache) SubmitTask(action func()) {
	action()
}

// ==================== 测试脚手架 ====================

type testEnv struct {
	repos     *repository.Repositories
	userRepo  *fakeUserRepo
	groupRepo *fakeGroupRepo
	members   *fakeMemberRepo
	cache     *fakeCache
	svc       *travelGroupService
}

func newTestEnv() *testEnv {
	userRepo := newFakeUserRepo()
	groupRepo := newFakeGroupRepo()
	members := newFakeMemberRepo()
	cache := newFakeCache()
	repos := &repository.Repositories{
		User:         userRepo,
		Group:        groupRepo,
		GroupMember:  members,
		GroupMessage: &fakeMessageRepo{},
		Destination:  newFakeDestinationRepo(),
		Notification: &fakeNotificationRepo{},
	}
	return &testEnv{
		repos:     repos,
		userRepo:  userRepo,
		groupRepo: groupRepo,
		members:   members,
		cache:     cache,
		svc:       NewGroupService(repos, cache),
	}
}

func (e *testEnv) addUser(uuid, username string) {
	_ = e.userRepo.CreateUser(&model.User{Uuid: uuid, Username: username})
}

func (e *testEnv) createGroup(t *testing.T, ownerId string, visibility int8, maxMembers int) string {
	t.Helper()
	groupId, err := e.svc.CreateGroup(request.CreateGroupRequest{
		OwnerId:         ownerId,
		Name:            "测试旅行群",
		DestinationName: "大理",
		Visibility:      visibility,
		MaxMembers:      maxMembers,
	})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return groupId
}

// ==================== 测试用例 ====================

func TestCreateGroupSetsOwnerState(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")

	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)

	group, err := env.groupRepo.FindByUuid(groupId)
	if err != nil {
		t.Fatalf("group not found: %v", err)
	}
	if group.MemberCnt != 1 {
		t.Errorf("member_cnt = %d, want 1", group.MemberCnt)
	}
	owner, _ := env.userRepo.FindByUuid("U1")
	if !owner.CurrentGroupId.Valid || owner.CurrentGroupId.String != groupId {
		t.Errorf("owner current_group_id = %v, want %s", owner.CurrentGroupId, groupId)
	}
	if owner.IsGroupOwner != 1 {
		t.Errorf("is_group_owner = %d, want 1", owner.IsGroupOwner)
	}
	member, err := env.members.FindByGroupAndUser(groupId, "U1")
	if err != nil {
		t.Fatalf("owner member row missing: %v", err)
	}
	if member.Role != role_enum.OWNER || member.JoinStatus != join_status_enum.APPROVED {
		t.Errorf("owner member row = role %d status %d", member.Role, member.JoinStatus)
	}
}

func TestCreateGroupRejectedWhenAlreadyInGroup(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)

	_, err := env.svc.CreateGroup(request.CreateGroupRequest{
		OwnerId:         "U1",
		Name:            "第二个群",
		DestinationName: "丽江",
	})
	if errorx.GetCode(err) != errorx.CodeStateConflict {
		t.Errorf("err code = %d, want CodeStateConflict", errorx.GetCode(err))
	}
}

func TestJoinPublicGroupDirectApproval(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)

	status, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})
	if err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if status != join_status_enum.APPROVED {
		t.Errorf("join status = %d, want APPROVED", status)
	}
	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt != 2 {
		t.Errorf("member_cnt = %d, want 2", group.MemberCnt)
	}
	joiner, _ := env.userRepo.FindByUuid("U2")
	if !joiner.CurrentGroupId.Valid || joiner.CurrentGroupId.String != groupId {
		t.Errorf("joiner current_group_id not set")
	}
}

func TestJoinPublicGroupFullRejected(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	env.addUser("U3", "carol")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 2)

	if _, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId}); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	_, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U3", GroupId: groupId})
	if errorx.GetCode(err) != errorx.CodeGroupFull {
		t.Errorf("err code = %d, want CodeGroupFull", errorx.GetCode(err))
	}
	// 满员失败不能留下半截状态
	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt != 2 {
		t.Errorf("member_cnt = %d, want 2", group.MemberCnt)
	}
	u3, _ := env.userRepo.FindByUuid("U3")
	if u3.CurrentGroupId.Valid {
		t.Errorf("U3 current_group_id should stay empty after full rejection")
	}
}

func TestJoinSecondGroupRejected(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	env.addUser("U3", "carol")
	g1 := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)
	g2 := env.createGroup(t, "U2", visibility_enum.PUBLIC, 5)

	if _, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U3", GroupId: g1}); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	_, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U3", GroupId: g2})
	if errorx.GetCode(err) != errorx.CodeStateConflict {
		t.Errorf("err code = %d, want CodeStateConflict", errorx.GetCode(err))
	}
}

func TestJoinPrivateGroupPending(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PRIVATE, 5)

	status, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})
	if err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if status != join_status_enum.PENDING {
		t.Errorf("join status = %d, want PENDING", status)
	}
	// 待审核不占名额，也不占当前群指针
	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt != 1 {
		t.Errorf("member_cnt = %d, want 1", group.MemberCnt)
	}
	u2, _ := env.userRepo.FindByUuid("U2")
	if u2.CurrentGroupId.Valid {
		t.Errorf("pending applicant should not occupy current_group_id")
	}
}

func TestApprovePendingMember(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PRIVATE, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})

	err := env.svc.UpdateMemberStatus(request.UpdateMemberStatusRequest{
		OwnerId: "U1", GroupId: groupId, UserId: "U2", Status: join_status_enum.APPROVED,
	})
	if err != nil {
		t.Fatalf("UpdateMemberStatus failed: %v", err)
	}
	member, _ := env.members.FindByGroupAndUser(groupId, "U2")
	if member.JoinStatus != join_status_enum.APPROVED {
		t.Errorf("join_status = %d, want APPROVED", member.JoinStatus)
	}
	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt != 2 {
		t.Errorf("member_cnt = %d, want 2", group.MemberCnt)
	}
	u2, _ := env.userRepo.FindByUuid("U2")
	if !u2.CurrentGroupId.Valid || u2.CurrentGroupId.String != groupId {
		t.Errorf("approved member current_group_id not set")
	}
}

func TestApproveRejectedByNonOwner(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	env.addUser("U3", "carol")
	groupId := env.createGroup(t, "U1", visibility_enum.PRIVATE, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})

	err := env.svc.UpdateMemberStatus(request.UpdateMemberStatusRequest{
		OwnerId: "U3", GroupId: groupId, UserId: "U2", Status: join_status_enum.APPROVED,
	})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("err code = %d, want CodeForbidden", errorx.GetCode(err))
	}
}

func TestRejectedMemberCanReapply(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PRIVATE, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})
	_ = env.svc.UpdateMemberStatus(request.UpdateMemberStatusRequest{
		OwnerId: "U1", GroupId: groupId, UserId: "U2", Status: join_status_enum.REJECTED,
	})

	status, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})
	if err != nil {
		t.Fatalf("re-apply failed: %v", err)
	}
	if status != join_status_enum.PENDING {
		t.Errorf("re-apply status = %d, want PENDING", status)
	}
}

func TestBlockedMemberCannotJoin(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PRIVATE, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})
	_ = env.svc.UpdateMemberStatus(request.UpdateMemberStatusRequest{
		OwnerId: "U1", GroupId: groupId, UserId: "U2", Status: join_status_enum.BLOCKED,
	})

	_, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("err code = %d, want CodeForbidden", errorx.GetCode(err))
	}
}

func TestOwnerCannotLeave(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)

	err := env.svc.LeaveGroup("U1", groupId)
	if errorx.GetCode(err) != errorx.CodeStateConflict {
		t.Errorf("err code = %d, want CodeStateConflict", errorx.GetCode(err))
	}
}

func TestLeaveGroupReleasesSlot(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})

	if err := env.svc.LeaveGroup("U2", groupId); err != nil {
		t.Fatalf("LeaveGroup failed: %v", err)
	}
	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt != 1 {
		t.Errorf("member_cnt = %d, want 1", group.MemberCnt)
	}
	u2, _ := env.userRepo.FindByUuid("U2")
	if u2.CurrentGroupId.Valid {
		t.Errorf("left member current_group_id should be cleared")
	}
	if _, err := env.members.FindByGroupAndUser(groupId, "U2"); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("member row should be removed")
	}
}

func TestDismissGroupByNonOwnerForbidden(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})

	err := env.svc.DismissGroup("U2", groupId)
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("err code = %d, want CodeForbidden", errorx.GetCode(err))
	}
}

func TestDismissGroupCascade(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)
	_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId})

	if err := env.svc.DismissGroup("U1", groupId); err != nil {
		t.Fatalf("DismissGroup failed: %v", err)
	}
	if _, err := env.groupRepo.FindByUuid(groupId); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("group should be deleted")
	}
	cnt, _ := env.members.CountApprovedByGroup(groupId)
	if cnt != 0 {
		t.Errorf("member rows remain: %d", cnt)
	}
	for _, uid := range []string{"U1", "U2"} {
		u, _ := env.userRepo.FindByUuid(uid)
		if u.CurrentGroupId.Valid {
			t.Errorf("user %s current_group_id should be cleared after dismiss", uid)
		}
		if u.IsGroupOwner != 0 {
			t.Errorf("user %s is_group_owner should be cleared after dismiss", uid)
		}
	}
}

func TestConcurrentJoinNeverExceedsCapacity(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 3)

	userIds := []string{"U2", "U3", "U4", "U5", "U6", "U7"}
	for i, uid := range userIds {
		env.addUser(uid, "user"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	for _, uid := range userIds {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			_, _ = env.svc.JoinGroup(request.JoinGroupRequest{UserId: uid, GroupId: groupId})
		}(uid)
	}
	wg.Wait()

	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt > group.MaxMembers {
		t.Errorf("member_cnt = %d exceeds max_members = %d", group.MemberCnt, group.MaxMembers)
	}
	// member_cnt 必须与生效成员行数一致
	cnt, _ := env.members.CountApprovedByGroup(groupId)
	if int64(group.MemberCnt) != cnt {
		t.Errorf("member_cnt = %d, approved rows = %d", group.MemberCnt, cnt)
	}
}

func TestGetGroupInfoNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.GetGroupInfo("G_NOT_EXIST")
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("err code = %d, want CodeNotFound", errorx.GetCode(err))
	}
}

func TestGetGroupMemberListMarksOnline(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)
	if _, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId}); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}

	// 模拟 U2 在聊天通道上线
	_ = env.cache.AddToSet(context.Background(), "online_users", "U2")

	list, err := env.svc.GetGroupMemberList(groupId)
	if err != nil {
		t.Fatalf("GetGroupMemberList failed: %v", err)
	}
	online := make(map[string]bool, len(list))
	for _, m := range list {
		online[m.UserId] = m.IsOnline
	}
	if !online["U2"] {
		t.Errorf("U2 should be marked online")
	}
	if online["U1"] {
		t.Errorf("U1 should be offline")
	}
}

func TestBlockApprovedMemberReleasesSlot(t *testing.T) {
	env := newTestEnv()
	env.addUser("U1", "alice")
	env.addUser("U2", "bob")
	groupId := env.createGroup(t, "U1", visibility_enum.PUBLIC, 5)
	if _, err := env.svc.JoinGroup(request.JoinGroupRequest{UserId: "U2", GroupId: groupId}); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}

	err := env.svc.UpdateMemberStatus(request.UpdateMemberStatusRequest{
		OwnerId: "U1", GroupId: groupId, UserId: "U2", Status: join_status_enum.BLOCKED,
	})
	if err != nil {
		t.Fatalf("UpdateMemberStatus failed: %v", err)
	}

	member, _ := env.members.FindByGroupAndUser(groupId, "U2")
	if member.JoinStatus != join_status_enum.BLOCKED {
		t.Errorf("join_status = %d, want BLOCKED", member.JoinStatus)
	}
	group, _ := env.groupRepo.FindByUuid(groupId)
	if group.MemberCnt != 1 {
		t.Errorf("member_cnt = %d, want 1", group.MemberCnt)
	}
	u2, _ := env.userRepo.FindByUuid("U2")
	if u2.CurrentGroupId.Valid {
		t.Errorf("kicked member still holds current_group_id")
	}
	cnt, _ := env.members.CountApprovedByGroup(groupId)
	if int64(group.MemberCnt) != cnt {
		t.Errorf("member_cnt = %d, approved rows = %d", group.MemberCnt, cnt)
	}
}
