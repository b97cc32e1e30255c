package api

import "Atelier/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	ProfileHandler    *handler.ProfileHandler
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	AdminHandler      *handler.AdminHandler
}
