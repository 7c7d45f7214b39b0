// Package model 定义数据库实体模型
// 本文件定义用户模型，包含基本资料、认证信息和当前所在群指针
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 用户模型
// 对应数据库 user 表
type User struct {
	gorm.Model

	// Uuid 用户唯一标识，格式：U + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:用户唯一id"`

	// Username 用户名，登录凭证，全局唯一
	Username string `gorm:"column:username;uniqueIndex;type:varchar(20);not null;comment:用户名"`

	// Email 邮箱地址，全局唯一
	Email string `gorm:"column:email;uniqueIndex;type:varchar(50);not null;comment:邮箱"`

	// Telephone 手机号码（可选），用于短信验证码登录
	Telephone string `gorm:"column:telephone;index;type:char(11);comment:电话"`

	// Password 密码（bcrypt 哈希后），不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// Gender 性别（可选），Male/Female/Other
	Gender string `gorm:"column:gender;type:varchar(10);comment:性别"`

	// Bio 个人简介
	Bio string `gorm:"column:bio;type:varchar(200);comment:个人简介"`

	// Avatar 用户头像 URL
	Avatar string `gorm:"column:avatar;type:varchar(255);comment:头像"`

	// CurrentGroupId 当前生效群的 UUID
	// 单群策略：一个用户同一时刻至多有一个 Approved 的群
	CurrentGroupId sql.NullString `gorm:"column:current_group_id;type:char(20);comment:当前所在群uuid"`

	// IsGroupOwner 是否为某个群的群主，0.否，1.是
	IsGroupOwner int8 `gorm:"column:is_group_owner;not null;default:0;comment:是否群主"`

	// Status 账号状态，0.正常，1.禁用
	Status int8 `gorm:"column:status;index;not null;comment:状态，0.正常，1.禁用"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段，调用方无需手动加密
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确，用于登录验证
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
