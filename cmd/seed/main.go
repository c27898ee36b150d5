package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/unibase-dev/facility-manager/backend/internal/config"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"github.com/unibase-dev/facility-manager/backend/internal/repository"
	"github.com/unibase-dev/facility-manager/backend/internal/scheduler"
	"github.com/unibase-dev/facility-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入本周随机时间表, 3: 插入随机实时状态, 4: 插入随机请假申请)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomStaffUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("无法生成随机员工", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 2:
		staff, err := repo.GetActiveStaff("")
		if err != nil {
			slog.Error("无法获取在职员工", slog.String("error", err.Error()))
			return
		}

		weekStart := domain.WeekStartOf(time.Now())
		cnt := 0
		for _, u := range staff {
			availability := utils.GenerateRandomWeeklyAvailability(u.ID, weekStart)
			if err := repo.UpsertAvailability(availability); err != nil {
				slog.Error("无法插入时间表", slog.Int64("staff_id", u.ID), slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入本周时间表成功", slog.Int("count", cnt))
	case 3:
		staff, err := repo.GetActiveStaff("")
		if err != nil {
			slog.Error("无法获取在职员工", slog.String("error", err.Error()))
			return
		}

		now := time.Now()
		cnt := 0
		for _, u := range staff {
			status := domain.DefaultRealTimeStatus(u.ID)
			status.CurrentStatus = utils.GenerateRandomStaffStatus()
			status.ActiveTaskCount = rand.Intn(6)
			status.WorkloadLevel = scheduler.CalcWorkloadLevel(status.ActiveTaskCount)
			status.IsCurrentlyAvailable = status.CurrentStatus == domain.StaffStatusAvailable
			status.AutoAssignEligible = scheduler.CalcAutoAssignEligible(status.IsScheduledOnDuty, status.IsCurrentlyAvailable, status.WorkloadLevel)
			status.StatusUpdatedAt = now
			status.LastActivityAt = now.Add(-time.Duration(rand.Intn(120)) * time.Minute)

			if err := repo.UpsertRealTimeStatus(status); err != nil {
				slog.Error("无法插入实时状态", slog.Int64("staff_id", u.ID), slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入实时状态成功", slog.Int("count", cnt))
	case 4:
		if n <= 0 {
			slog.Error("请输入合法的申请数量")
			return
		}

		staff, err := repo.GetActiveStaff("")
		if err != nil {
			slog.Error("无法获取在职员工", slog.String("error", err.Error()))
			return
		}
		if len(staff) == 0 {
			slog.Error("数据库中没有在职员工，请先插入员工")
			return
		}

		now := time.Now()
		cnt := 0
		for i := 0; i < n; i++ {
			u := staff[rand.Intn(len(staff))]

			var formattedID string
			seq, err := repo.NextDayOffSequence(now.Year())
			if err != nil {
				formattedID = domain.FallbackDayOffRequestID(now)
			} else {
				formattedID = domain.FormatDayOffRequestID(now.Year(), seq)
			}

			request := &domain.DayOffRequest{
				FormattedID: formattedID,
				StaffID:     u.ID,
				RequestDate: now.AddDate(0, 0, rand.Intn(14)+1),
				Reason:      utils.GenerateRandomDayOffReason(),
				RequestType: domain.DayOffTypeDayOff,
				Status:      domain.DayOffPending,
				RequestedAt: now,
			}

			if err := repo.CreateDayOffRequest(request); err != nil {
				slog.Error("无法插入请假申请", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入请假申请成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
