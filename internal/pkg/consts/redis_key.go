package consts

const (
	PublicProfileKey = "profile:public:"
	PostViewKey      = "post:view:"
	MediaTempKey     = "media:temp"
)
