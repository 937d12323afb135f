package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/spx-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/spx-hr/attendance-backend-go/internal/handler/http"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/database"
	"github.com/spx-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/spx-hr/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/spx-hr/attendance-backend-go/internal/service/employee"
	payrollService "github.com/spx-hr/attendance-backend-go/internal/service/payroll"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, attendanceRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, payrollSvc)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, payrollRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	if cfg.Cron.Enabled {
		jobs := cron.NewAttendanceJobs(attendanceSvc)
		scheduler := cron.NewScheduler()
		scheduler.AddJob("attendance-day-sync", 24*time.Hour, jobs.SyncToday)
		scheduler.AddJob("attendance-reconcile", 7*24*time.Hour, jobs.ReconcileOrphans)
		scheduler.Start()
		defer scheduler.Stop()
	}

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	router := appHTTP.NewRouter(
		tokenAuth,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
