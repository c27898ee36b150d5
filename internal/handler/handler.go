package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/unibase-dev/facility-manager/backend/internal/config"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"github.com/unibase-dev/facility-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/staff-scheduling", func(r chi.Router) {
			staffOrAdmin := h.RequiredRole([]domain.Role{domain.RoleStaff, domain.RoleAdmin})
			adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})

			r.Route("/availability", func(r chi.Router) {
				r.Use(staffOrAdmin)
				r.With(h.myInfo, h.preventInactiveStaff).Post("/submit", h.SubmitWeeklyAvailability)
				r.Get("/{staffID}", h.GetStaffAvailability)
			})

			r.Route("/status", func(r chi.Router) {
				r.Use(staffOrAdmin)
				r.With(h.myInfo, h.preventInactiveStaff).Post("/update", h.UpdateRealTimeStatus)
				r.Get("/{staffID}", h.GetRealTimeStatus)
			})

			r.Route("/day-off", func(r chi.Router) {
				r.With(staffOrAdmin, h.myInfo, h.preventInactiveStaff).Post("/request", h.SubmitDayOffRequest)
				r.With(staffOrAdmin).Get("/requests", h.GetDayOffRequests)
				r.Route("/requests/{formattedID}", func(r chi.Router) {
					r.Use(h.dayOffRequest)
					r.With(adminOnly).Patch("/approve", h.ApproveDayOffRequest)
					r.With(adminOnly).Patch("/reject", h.RejectDayOffRequest)
					r.With(h.RequiredRole([]domain.Role{domain.RoleStaff})).Patch("/cancel", h.CancelDayOffRequest)
				})
				r.Route("/bulk", func(r chi.Router) {
					r.Use(adminOnly)
					r.Patch("/approve", h.BulkApproveDayOffRequests)
					r.Patch("/reject", h.BulkRejectDayOffRequests)
				})
			})

			r.With(staffOrAdmin).Get("/eligible-staff", h.GetEligibleStaff)
			r.With(staffOrAdmin).Post("/assign-staff", h.AssignStaff)
			r.With(adminOnly).Get("/overview", h.GetScheduleOverview)
			r.With(adminOnly).Get("/staff-list", h.GetStaffListWithStatus)
		})
	})
}
