package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/config"
	appHTTP "github.com/Kalpa111334/Dutch-Trails-QR/internal/handler/http"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/cron"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/database"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/jwt"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/repository/postgresql"
	attendanceService "github.com/Kalpa111334/Dutch-Trails-QR/internal/service/attendance"
	serviceAuth "github.com/Kalpa111334/Dutch-Trails-QR/internal/service/auth"
	reportService "github.com/Kalpa111334/Dutch-Trails-QR/internal/service/report"
	rosterService "github.com/Kalpa111334/Dutch-Trails-QR/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)
	overrideRepo := postgresql.NewScheduleOverrideRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	calculator := attendanceService.NewMetricsCalculator()

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	rosterSvc := rosterService.NewRosterService(db, rosterRepo, overrideRepo, employeeRepo, cfg.Roster.TieBreak)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, rosterSvc, calculator, time.Now)
	reportSvc := reportService.NewReportService(attendanceRepo, departmentRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	rosterHandler := appHTTP.NewRosterHandler(rosterSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		rosterHandler,
		reportHandler,
	)

	closeDayInterval, err := time.ParseDuration(cfg.Cron.CloseDayInterval)
	if err != nil {
		log.Fatal("invalid CRON_CLOSE_DAY_INTERVAL: ", err)
	}
	recalcInterval, err := time.ParseDuration(cfg.Cron.RecalculateInterval)
	if err != nil {
		log.Fatal("invalid CRON_RECALCULATE_INTERVAL: ", err)
	}

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(attendanceRepo, attendanceSvc, calculator, closeDayInterval, recalcInterval, cfg.Cron.RecalculateDays, time.Now)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
