package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	DEFAULT_MAX_MEMBERS        = 10  // 建群时未指定容量的默认上限
	DEFAULT_MESSAGE_LIMIT      = 50  // 聊天记录默认返回条数
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)
