package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	// CtxUserID gin Context 中的当前用户标识
	CtxUserID = "user_id"
	// CtxUserName gin Context 中的当前用户名
	CtxUserName = "user_name"
	// CtxUserEmail gin Context 中的当前用户邮箱
	CtxUserEmail = "user_email"
	// CtxUserRole gin Context 中的当前用户角色（仅管理员 Token）
	CtxUserRole = "user_role"
)
