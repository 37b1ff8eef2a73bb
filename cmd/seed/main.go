package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/auth"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/config"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/repository"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/seed"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/service"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var csvPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机员工, 3: 从 CSV 导入员工)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&csvPath, "csv", "", "导入员工的 CSV 文件路径，默认使用 SEED_CSV_PATH")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
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
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("无法创建数据库表", "error", err)
		return
	}

	// 种子数据也经过 service 写入，不加锁也不发邮件
	svc := service.New(service.Options{
		Users:     repo,
		Employees: repo,
		Hasher:    auth.NewBcryptHasher(),
		Logger:    logger,
	})

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user := utils.GenerateRandomUser(cfg.Email.UserDomain)
				if _, err := svc.Signup(context.Background(), service.SignupInput{
					Username: user.Username,
					Email:    user.Email,
					Password: cfg.Seed.User.Password,
				}); err != nil {
					slog.Error("无法插入用户", "username", user.Username, slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				e := utils.GenerateRandomEmployee(cfg.Email.UserDomain)
				if _, err := svc.AddEmployee(context.Background(), service.EmployeeInput{
					FirstName: e.FirstName,
					LastName:  e.LastName,
					Email:     e.Email,
					Gender:    e.Gender,
					Salary:    e.Salary,
				}); err != nil {
					slog.Error("无法插入员工", "email", e.Email, slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 3:
		if csvPath == "" {
			csvPath = cfg.Seed.CSVPath
		}

		res, err := seed.ImportEmployeesFromFile(context.Background(), csvPath, svc)
		if err != nil {
			slog.Error("无法导入员工", "path", csvPath, slog.String("error", err.Error()))
			return
		}

		slog.Info("导入员工完成", slog.Int("imported", res.Imported), slog.Int("skipped", res.Skipped))
	default:
		slog.Error("指定的操作非法")
	}
}
