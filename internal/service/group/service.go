// Package group 实现旅行群组业务逻辑
// 群组生命周期与成员状态流转的核心规则都在这里：
// 单群策略、容量守护、群主特权操作
package group

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/internal/model"
	"travel_together_server/pkg/constants"
	"travel_together_server/pkg/enum/group/group_status_enum"
	"travel_together_server/pkg/enum/group/visibility_enum"
	"travel_together_server/pkg/enum/group_member/join_status_enum"
	"travel_together_server/pkg/enum/group_member/role_enum"
	"travel_together_server/pkg/enum/notification/notification_kind_enum"
	"travel_together_server/pkg/errorx"
	"travel_together_server/pkg/util/random"
)

// travelGroupService 群组业务逻辑实现
// 通过构造函数注入 Repository 和 Cache 依赖
type travelGroupService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *travelGroupService {
	return &travelGroupService{
		repos: repos,
		cache: cacheService,
	}
}

// findOrCreateDestination 按名称查找目的地，不存在则创建
// 与建群同一个事务，保证群和目的地同生同死
func (g *travelGroupService) findOrCreateDestination(txRepos *repository.Repositories, name string) (*model.Destination, error) {
	destination, err := txRepos.Destination.FindByName(name)
	if err == nil {
		return destination, nil
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		return nil, err
	}
	destination = &model.Destination{
		Uuid: "D" + random.GetNowAndLenRandomString(11),
		Name: name,
	}
	if err := txRepos.Destination.Create(destination); err != nil {
		return nil, err
	}
	return destination, nil
}

// CreateGroup 创建旅行群组
// 建群者自动成为群主和首个生效成员，member_cnt 从 1 起步
// 单群策略：已有生效群的用户不能再建群
func (g *travelGroupService) CreateGroup(req request.CreateGroupRequest) (string, error) {
	owner, err := g.repos.User.FindByUuid(req.OwnerId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return "", errorx.ErrServerBusy
	}
	if owner.CurrentGroupId.Valid {
		return "", errorx.New(errorx.CodeStateConflict, "您已有生效中的旅行群，不能再创建新群")
	}
	if !visibility_enum.Valid(req.Visibility) {
		return "", errorx.New(errorx.CodeInvalidParam, "群可见性参数不合法")
	}

	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = constants.DEFAULT_MAX_MEMBERS
	}

	group := model.TravelGroup{
		Uuid:        fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
		Name:        req.Name,
		Description: req.Description,
		Visibility:  req.Visibility,
		OwnerId:     req.OwnerId,
		MemberCnt:   1,
		MaxMembers:  maxMembers,
		Status:      group_status_enum.NORMAL,
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		destination, err := g.findOrCreateDestination(txRepos, req.DestinationName)
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		group.DestinationId = destination.Uuid

		if err := txRepos.Group.CreateGroup(&group); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		member := model.GroupMember{
			GroupUuid:  group.Uuid,
			UserUuid:   req.OwnerId,
			Role:       role_enum.OWNER,
			JoinStatus: join_status_enum.APPROVED,
			JoinedAt:   sql.NullTime{Time: time.Now(), Valid: true},
		}
		if err := txRepos.GroupMember.Create(&member); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		// 条件更新：并发建群/入群时只有一个能占住当前群指针
		ok, err := txRepos.User.SetCurrentGroup(req.OwnerId, group.Uuid)
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if !ok {
			return errorx.New(errorx.CodeStateConflict, "您已有生效中的旅行群，不能再创建新群")
		}
		if err := txRepos.User.SetGroupOwnerFlag(req.OwnerId, 1); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})

	if err != nil {
		return "", err
	}

	g.cache.SubmitTask(func() {
		if err := g.cache.DeleteByPattern(context.Background(), "group_browse_list_*"); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return group.Uuid, nil
}

// JoinGroup 加入群组
// 公开群：容量守护 + 单群策略都通过才直接生效
// 私密群：只创建待审核申请，不占成员名额，等群主审批
func (g *travelGroupService) JoinGroup(req request.JoinGroupRequest) (int8, error) {
	group, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return 0, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}
	if group.Status != group_status_enum.NORMAL {
		return 0, errorx.New(errorx.CodeStateConflict, "该群已解散或被禁用")
	}
	if group.OwnerId == req.UserId {
		return 0, errorx.New(errorx.CodeStateConflict, "您已是该群群主")
	}

	user, err := g.repos.User.FindByUuid(req.UserId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return 0, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	// 已有成员关系时按状态分流
	rejoining := false
	member, err := g.repos.GroupMember.FindByGroupAndUser(req.GroupId, req.UserId)
	if err == nil {
		switch member.JoinStatus {
		case join_status_enum.APPROVED:
			return 0, errorx.New(errorx.CodeStateConflict, "您已在该群中")
		case join_status_enum.PENDING:
			return 0, errorx.New(errorx.CodeStateConflict, "您的申请正在审核中")
		case join_status_enum.BLOCKED:
			return 0, errorx.New(errorx.CodeForbidden, "您已被该群拉黑，无法加入")
		case join_status_enum.REJECTED:
			// 被拒绝过的可以重新申请
			rejoining = true
		}
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	if group.Visibility == visibility_enum.PUBLIC {
		// 公开群直接生效，单群策略先行检查（事务内还有条件更新兜底）
		if user.CurrentGroupId.Valid {
			return 0, errorx.New(errorx.CodeStateConflict, "您已有生效中的旅行群")
		}
		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			// 容量检查与自增合并为一条条件 UPDATE，并发下不会超卖
			ok, err := txRepos.Group.IncrementMemberCntGuarded(req.GroupId)
			if err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if !ok {
				return errorx.New(errorx.CodeGroupFull, "该群成员已满")
			}

			if rejoining {
				if err := txRepos.GroupMember.UpdateStatus(req.GroupId, req.UserId, join_status_enum.APPROVED); err != nil {
					zap.L().Error(err.Error())
					return errorx.ErrServerBusy
				}
			} else {
				newMember := model.GroupMember{
					GroupUuid:  req.GroupId,
					UserUuid:   req.UserId,
					Role:       role_enum.MEMBER,
					JoinStatus: join_status_enum.APPROVED,
					JoinedAt:   sql.NullTime{Time: time.Now(), Valid: true},
				}
				if err := txRepos.GroupMember.Create(&newMember); err != nil {
					zap.L().Error(err.Error())
					return errorx.ErrServerBusy
				}
			}

			ok, err = txRepos.User.SetCurrentGroup(req.UserId, req.GroupId)
			if err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if !ok {
				return errorx.New(errorx.CodeStateConflict, "您已有生效中的旅行群")
			}
			return nil
		})
		if err != nil {
			return 0, err
		}

		// 通知群主有新成员加入
		g.createNotification(req.GroupId, group.OwnerId, notification_kind_enum.SYSTEM,
			fmt.Sprintf("用户 %s 加入了群「%s」", user.Username, group.Name))
		g.invalidateGroupCaches(req.GroupId)
		return join_status_enum.APPROVED, nil
	}

	// 私密群：进入待审核，不占名额，也不受单群策略限制
	if rejoining {
		if err := g.repos.GroupMember.UpdateStatus(req.GroupId, req.UserId, join_status_enum.PENDING); err != nil {
			zap.L().Error(err.Error())
			return 0, errorx.ErrServerBusy
		}
	} else {
		newMember := model.GroupMember{
			GroupUuid:  req.GroupId,
			UserUuid:   req.UserId,
			Role:       role_enum.MEMBER,
			JoinStatus: join_status_enum.PENDING,
		}
		if err := g.repos.GroupMember.Create(&newMember); err != nil {
			zap.L().Error(err.Error())
			return 0, errorx.ErrServerBusy
		}
	}

	g.createNotification(req.GroupId, group.OwnerId, notification_kind_enum.JOIN_REQUEST,
		fmt.Sprintf("用户 %s 申请加入群「%s」", user.Username, group.Name))
	return join_status_enum.PENDING, nil
}

// UpdateMemberStatus 群主审批成员状态
// 通过：容量守护自增 + 占用申请人的当前群指针；拒绝/拉黑：仅更新状态
func (g *travelGroupService) UpdateMemberStatus(req request.UpdateMemberStatusRequest) error {
	group, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if group.OwnerId != req.OwnerId {
		return errorx.New(errorx.CodeForbidden, "只有群主可以审批成员")
	}
	if req.UserId == req.OwnerId {
		return errorx.New(errorx.CodeInvalidParam, "不能对群主自己操作")
	}
	if req.Status != join_status_enum.APPROVED &&
		req.Status != join_status_enum.REJECTED &&
		req.Status != join_status_enum.BLOCKED {
		return errorx.New(errorx.CodeInvalidParam, "审批状态参数不合法")
	}

	member, err := g.repos.GroupMember.FindByGroupAndUser(req.GroupId, req.UserId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "该用户没有此群的申请记录")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if member.JoinStatus == req.Status {
		return errorx.New(errorx.CodeStateConflict, "成员已处于该状态")
	}

	// 生效成员被移出（拒绝/拉黑）：回收名额并清空当前群指针
	if member.JoinStatus == join_status_enum.APPROVED {
		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.GroupMember.UpdateStatus(req.GroupId, req.UserId, req.Status); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if err := txRepos.Group.DecrementMemberCnt(req.GroupId); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if err := txRepos.User.ClearCurrentGroup(req.UserId); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			return nil
		})
		if err != nil {
			return err
		}
		g.createNotification(req.GroupId, req.UserId, notification_kind_enum.JOIN_RESULT,
			fmt.Sprintf("您已被移出群「%s」", group.Name))
		g.invalidateGroupCaches(req.GroupId)
		return nil
	}

	if req.Status == join_status_enum.APPROVED {
		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			ok, err := txRepos.Group.IncrementMemberCntGuarded(req.GroupId)
			if err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if !ok {
				return errorx.New(errorx.CodeGroupFull, "该群成员已满，无法通过申请")
			}
			if err := txRepos.GroupMember.UpdateStatus(req.GroupId, req.UserId, join_status_enum.APPROVED); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			// 申请人在等待期间加入了别的群，这里会失败并整体回滚
			ok, err = txRepos.User.SetCurrentGroup(req.UserId, req.GroupId)
			if err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if !ok {
				return errorx.New(errorx.CodeStateConflict, "该用户已有生效中的旅行群")
			}
			return nil
		})
		if err != nil {
			return err
		}
		g.createNotification(req.GroupId, req.UserId, notification_kind_enum.JOIN_RESULT,
			fmt.Sprintf("您加入群「%s」的申请已通过", group.Name))
		g.invalidateGroupCaches(req.GroupId)
		return nil
	}

	if err := g.repos.GroupMember.UpdateStatus(req.GroupId, req.UserId, req.Status); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	g.createNotification(req.GroupId, req.UserId, notification_kind_enum.JOIN_RESULT,
		fmt.Sprintf("您加入群「%s」的申请未通过", group.Name))
	return nil
}

// LeaveGroup 退出群组
// 群主不能退群，只能解散；删除成员行、回收名额、清空当前群指针在同一事务内完成
func (g *travelGroupService) LeaveGroup(userId, groupId string) error {
	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if group.OwnerId == userId {
		return errorx.New(errorx.CodeStateConflict, "群主不能退群，请解散群组")
	}

	member, err := g.repos.GroupMember.FindByGroupAndUser(groupId, userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "您不在该群中")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if member.JoinStatus != join_status_enum.APPROVED {
		return errorx.New(errorx.CodeStateConflict, "您不是该群的生效成员")
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.GroupMember.Delete(groupId, userId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Group.DecrementMemberCnt(groupId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.User.ClearCurrentGroup(userId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	g.createNotification(groupId, group.OwnerId, notification_kind_enum.SYSTEM,
		fmt.Sprintf("有成员退出了群「%s」", group.Name))
	g.invalidateGroupCaches(groupId)
	return nil
}

// DismissGroup 解散群组
// 仅群主可操作；级联清理成员、消息，并批量回收所有成员的当前群指针
func (g *travelGroupService) DismissGroup(ownerId, groupId string) error {
	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if group.OwnerId != ownerId {
		return errorx.New(errorx.CodeForbidden, "只有群主可以解散群组")
	}

	// 事务前取成员名单，用于事后通知
	memberIds, err := g.repos.GroupMember.ApprovedMemberIds(groupId)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		// 先批量回收所有成员（含群主）的当前群指针和群主标记
		if err := txRepos.User.ClearCurrentGroupByGroup(groupId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.GroupMember.DeleteByGroupUuid(groupId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.GroupMessage.DeleteByGroupUuid(groupId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Group.UpdateFields(groupId, map[string]interface{}{
			"status": group_status_enum.DISMISSED,
		}); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Group.DeleteByUuid(groupId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 通知除群主外的所有原成员
	for _, memberId := range memberIds {
		if memberId == ownerId {
			continue
		}
		g.createNotification(groupId, memberId, notification_kind_enum.SYSTEM,
			fmt.Sprintf("群「%s」已被群主解散", group.Name))
	}
	g.invalidateGroupCaches(groupId)
	return nil
}

// GetGroupList 获取浏览列表
// 缓存键按请求者区分（is_member 标记与用户相关），短 TTL
func (g *travelGroupService) GetGroupList(userId string) ([]respond.GetGroupListRespond, error) {
	cacheKey := "group_browse_list_" + userId

	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var cached []respond.GetGroupListRespond
		if err := json.Unmarshal([]byte(rspString), &cached); err == nil {
			return cached, nil
		}
		zap.L().Warn("Unmarshal group browse list cache failed", zap.Error(err))
	} else if err != nil {
		zap.L().Error("Redis get error", zap.Error(err))
	}

	groups, err := g.repos.Group.ListWithMeta(userId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// make 初始化 len=0，序列化后是 [] 而不是 null
	rspList := make([]respond.GetGroupListRespond, 0, len(groups))
	for _, grp := range groups {
		rspList = append(rspList, respond.GetGroupListRespond{
			Uuid:            grp.Uuid,
			Name:            grp.Name,
			Description:     grp.Description,
			Visibility:      grp.Visibility,
			OwnerId:         grp.OwnerId,
			OwnerName:       grp.OwnerName,
			DestinationName: grp.DestinationName,
			MemberCnt:       grp.MemberCnt,
			MaxMembers:      grp.MaxMembers,
			IsFull:          grp.MemberCnt >= grp.MaxMembers,
			IsMember:        grp.IsMember,
		})
	}

	g.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(rspList)
		if err != nil {
			zap.L().Error("Marshal group browse list error", zap.Error(err))
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*5); err != nil {
			zap.L().Error("Set cache error", zap.Error(err))
		}
	})

	return rspList, nil
}

// GetGroupInfo 获取群组详情（缓存 24 小时，写路径负责失效）
func (g *travelGroupService) GetGroupInfo(groupId string) (*respond.GetGroupInfoRespond, error) {
	cacheKey := "group_info_" + groupId

	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp respond.GetGroupInfoRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return &rsp, nil
		}
		zap.L().Warn("Unmarshal group info cache failed", zap.String("groupId", groupId), zap.Error(err))
	} else if err != nil {
		zap.L().Error("Get group info cache error", zap.String("groupId", groupId), zap.Error(err))
	}

	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	destinationName := ""
	if group.DestinationId != "" {
		if destination, err := g.repos.Destination.FindByUuid(group.DestinationId); err == nil {
			destinationName = destination.Name
		}
	}

	rsp := &respond.GetGroupInfoRespond{
		Uuid:            group.Uuid,
		Name:            group.Name,
		Description:     group.Description,
		Visibility:      group.Visibility,
		OwnerId:         group.OwnerId,
		DestinationName: destinationName,
		MemberCnt:       group.MemberCnt,
		MaxMembers:      group.MaxMembers,
		Status:          group.Status,
		CreatedAt:       group.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	g.cache.SubmitTask(func() {
		data, err := json.Marshal(rsp)
		if err != nil {
			zap.L().Error("Marshal group info error", zap.Error(err))
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(data), time.Hour*24); err != nil {
			zap.L().Error("Set group info cache error", zap.Error(err))
		}
	})

	return rsp, nil
}

// GetGroupMemberList 获取群成员列表（仅生效成员）
func (g *travelGroupService) GetGroupMemberList(groupId string) ([]respond.GetGroupMemberListRespond, error) {
	cacheKey := "group_memberlist_" + groupId

	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp []respond.GetGroupMemberListRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			g.markOnlineMembers(rsp)
			return rsp, nil
		}
		zap.L().Warn("Unmarshal group member list cache failed", zap.String("groupId", groupId), zap.Error(err))
	} else if err != nil {
		zap.L().Error("Get group member list cache error", zap.String("groupId", groupId), zap.Error(err))
	}

	members, err := g.repos.GroupMember.FindMembersWithUser(groupId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.GetGroupMemberListRespond, 0, len(members))
	for _, m := range members {
		joinedAt := ""
		if m.JoinedAt.Valid {
			joinedAt = m.JoinedAt.Time.Format("2006-01-02 15:04:05")
		}
		rspList = append(rspList, respond.GetGroupMemberListRespond{
			UserId:   m.UserId,
			Username: m.Username,
			Avatar:   m.Avatar,
			Role:     m.Role,
			JoinedAt: joinedAt,
		})
	}

	// 在线状态是实时数据，先序列化基础列表入缓存，再叠加标注
	if data, err := json.Marshal(rspList); err != nil {
		zap.L().Error("Marshal group member list error", zap.Error(err))
	} else {
		g.cache.SubmitTask(func() {
			if err := g.cache.Set(context.Background(), cacheKey, string(data), time.Hour*24); err != nil {
				zap.L().Error("Set group member list cache error", zap.Error(err))
			}
		})
	}

	g.markOnlineMembers(rspList)
	return rspList, nil
}

// markOnlineMembers 按 Redis 在线用户集合标注成员在线状态
// 集合由聊天通道的上下线事件维护，查询失败时全部按离线返回
func (g *travelGroupService) markOnlineMembers(members []respond.GetGroupMemberListRespond) {
	if len(members) == 0 {
		return
	}
	online, err := g.cache.GetSetMembers(context.Background(), "online_users")
	if err != nil || len(online) == 0 {
		if err != nil {
			zap.L().Warn("查询在线用户集合失败", zap.Error(err))
		}
		return
	}
	onlineSet := make(map[string]struct{}, len(online))
	for _, id := range online {
		onlineSet[id] = struct{}{}
	}
	for i := range members {
		if _, ok := onlineSet[members[i].UserId]; ok {
			members[i].IsOnline = true
		}
	}
}

// createNotification 写入站内通知，失败只记日志不影响主流程
func (g *travelGroupService) createNotification(groupId, userId string, kind int8, content string) {
	notification := model.Notification{
		Uuid:      "N" + random.GetNowAndLenRandomString(11),
		UserId:    userId,
		Kind:      kind,
		Content:   content,
		GroupUuid: groupId,
	}
	if err := g.repos.Notification.Create(&notification); err != nil {
		zap.L().Error("创建通知失败", zap.Error(err))
	}
}

// invalidateGroupCaches 写路径后的缓存失效（异步）
func (g *travelGroupService) invalidateGroupCaches(groupId string) {
	g.cache.SubmitTask(func() {
		if err := g.cache.Delete(context.Background(), "group_info_"+groupId); err != nil {
			zap.L().Error(err.Error())
		}
		if err := g.cache.Delete(context.Background(), "group_memberlist_"+groupId); err != nil {
			zap.L().Error(err.Error())
		}
		if err := g.cache.DeleteByPattern(context.Background(), "group_browse_list_*"); err != nil {
			zap.L().Error(err.Error())
		}
	})
}
